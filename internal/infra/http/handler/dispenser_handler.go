package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/infra/http/middleware"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/usecase"
	"github.com/google/uuid"
)

type DispenserHandler struct {
	dispenserUC *usecase.DispenserUseCase
	stockRowUC  *usecase.StockDispenserRowUseCase
}

func NewDispenserHandler(dispenserUC *usecase.DispenserUseCase, stockRowUC *usecase.StockDispenserRowUseCase) *DispenserHandler {
	return &DispenserHandler{dispenserUC: dispenserUC, stockRowUC: stockRowUC}
}

type GPSRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (g *GPSRequest) coordinates() *domain.GPSCoordinates {
	if g == nil {
		return nil
	}
	return &domain.GPSCoordinates{Lat: *g.Lat, Lng: *g.Lng}
}

func (h *DispenserHandler) List(w http.ResponseWriter, r *http.Request) {
	dispensers, err := h.dispenserUC.List(r.Context())
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	resp := make([]dispenserResponse, 0, len(dispensers))
	for _, d := range dispensers {
		resp = append(resp, toDispenserResponse(d))
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *DispenserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Dispenser not found")
		return
	}
	dispenser, err := h.dispenserUC.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toDispenserResponse(*dispenser))
}

type CreateDispenserRequest struct {
	BLEBeaconID    string      `json:"ble_beacon_id" validate:"required,max=100"`
	LocationName   string      `json:"location_name" validate:"required,max=255"`
	GPSCoordinates *GPSRequest `json:"gps_coordinates" validate:"required"`
}

// Create also creates the four empty rows of the dispenser.
func (h *DispenserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDispenserRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	dispenser, err := h.dispenserUC.Create(r.Context(), usecase.CreateDispenserInput{
		BLEBeaconID:    req.BLEBeaconID,
		LocationName:   req.LocationName,
		GPSCoordinates: *req.GPSCoordinates.coordinates(),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toDispenserResponse(*dispenser))
}

type UpdateDispenserRequest struct {
	BLEBeaconID    *string     `json:"ble_beacon_id" validate:"omitempty,min=1,max=100"`
	LocationName   *string     `json:"location_name" validate:"omitempty,min=1,max=255"`
	GPSCoordinates *GPSRequest `json:"gps_coordinates" validate:"omitempty"`
}

func (h *DispenserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Dispenser not found")
		return
	}

	var req UpdateDispenserRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	dispenser, err := h.dispenserUC.Update(r.Context(), id, usecase.UpdateDispenserInput{
		BLEBeaconID:    req.BLEBeaconID,
		LocationName:   req.LocationName,
		GPSCoordinates: req.GPSCoordinates.coordinates(),
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toDispenserResponse(*dispenser))
}

func (h *DispenserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Dispenser not found")
		return
	}
	if err := h.dispenserUC.Delete(r.Context(), id); err != nil {
		respondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Nearby orders by distance when both lat and lng parse; otherwise it
// returns every dispenser in listing order.
func (h *DispenserHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var origin *domain.GPSCoordinates
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr == nil && lngErr == nil {
		origin = &domain.GPSCoordinates{Lat: lat, Lng: lng}
	}

	nearby, err := h.dispenserUC.Nearby(r.Context(), origin)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	resp := make([]dispenserResponse, 0, len(nearby))
	for _, n := range nearby {
		d := toDispenserResponse(n.Dispenser)
		d.DistanceKm = n.DistanceKm
		resp = append(resp, d)
	}
	respondJSON(w, http.StatusOK, resp)
}

type AddProductRequest struct {
	RowNumber        int        `json:"row_number"`
	ProductID        *uuid.UUID `json:"product_id"`
	MaxCapacity      int        `json:"max_capacity" validate:"gte=0,lte=2147483647"`
	CurrentInventory *int       `json:"current_inventory" validate:"omitempty,gte=0,lte=2147483647"`
}

// AddProduct stocks one row. It answers 201 when the row was created and
// 200 when an existing row was updated.
func (h *DispenserHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Dispenser not found")
		return
	}

	var req AddProductRequest
	if fields, err := decode(r, &req); err != nil {
		respondInvalid(w, fields, err)
		return
	}

	output, err := h.stockRowUC.Execute(r.Context(), usecase.StockDispenserRowInput{
		Actor:            middleware.UserFromContext(r.Context()),
		DispenserID:      id,
		RowNumber:        req.RowNumber,
		ProductID:        req.ProductID,
		MaxCapacity:      req.MaxCapacity,
		CurrentInventory: req.CurrentInventory,
		Meta:             requestMeta(r),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDispenserNotFound),
			errors.Is(err, domain.ErrProductInactive),
			errors.Is(err, domain.ErrInvalidRowNumber),
			errors.Is(err, domain.ErrInvalidInventory):
			respondDomainError(w, r, err)
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	status, message := http.StatusOK, "Product updated successfully"
	if output.Created {
		status, message = http.StatusCreated, "Product added successfully"
	}
	respondJSON(w, status, map[string]any{
		"message":           message,
		"dispenser_product": toRowResponse(output.Row),
	})
}
