package memory

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/Faisal-Javaid/napkin-dispenser/internal/gateway"
	"github.com/google/uuid"
)

type DispenserRepository struct {
	store *Store
}

func NewDispenserRepository(store *Store) *DispenserRepository {
	return &DispenserRepository{store: store}
}

func (r *DispenserRepository) Create(_ context.Context, dispenser *domain.Dispenser) error {
	return r.store.write(func(d *state) error {
		if beaconTaken(d, dispenser) {
			return domain.ErrConflict
		}
		dispenser.ID = uuid.New()
		stamp(&dispenser.CreatedAt, &dispenser.UpdatedAt)
		if dispenser.InstallDate.IsZero() {
			dispenser.InstallDate = dispenser.CreatedAt
		}
		stored := *dispenser
		stored.Rows = nil
		d.dispensers[dispenser.ID] = stored
		return nil
	})
}

func beaconTaken(d *state, dispenser *domain.Dispenser) bool {
	for _, other := range d.dispensers {
		if other.ID != dispenser.ID && other.BLEBeaconID == dispenser.BLEBeaconID {
			return true
		}
	}
	return false
}

func (r *DispenserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Dispenser, error) {
	var (
		dispenser domain.Dispenser
		ok        bool
	)
	r.store.read(func(d *state) {
		dispenser, ok = d.dispensers[id]
		if ok {
			dispenser.Rows = d.dispenserRows(id)
		}
	})
	if !ok {
		return nil, domain.ErrDispenserNotFound
	}
	return &dispenser, nil
}

func (r *DispenserRepository) List(_ context.Context) ([]domain.Dispenser, error) {
	dispensers := []domain.Dispenser{}
	r.store.read(func(d *state) {
		for id, dispenser := range d.dispensers {
			dispenser.Rows = d.dispenserRows(id)
			dispensers = append(dispensers, dispenser)
		}
	})
	slices.SortFunc(dispensers, func(a, b domain.Dispenser) int { return strings.Compare(a.LocationName, b.LocationName) })
	return dispensers, nil
}

func (r *DispenserRepository) Update(_ context.Context, dispenser *domain.Dispenser) error {
	return r.store.write(func(d *state) error {
		current, ok := d.dispensers[dispenser.ID]
		if !ok {
			return domain.ErrDispenserNotFound
		}
		if beaconTaken(d, dispenser) {
			return domain.ErrConflict
		}
		current.BLEBeaconID = dispenser.BLEBeaconID
		current.LocationName = dispenser.LocationName
		current.GPSCoordinates = dispenser.GPSCoordinates
		current.UpdatedAt = time.Now().UTC()
		dispenser.UpdatedAt = current.UpdatedAt
		d.dispensers[dispenser.ID] = current
		return nil
	})
}

// Delete cascades to the rows and the transactions of the dispenser.
func (r *DispenserRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.write(func(d *state) error {
		if _, ok := d.dispensers[id]; !ok {
			return domain.ErrDispenserNotFound
		}
		delete(d.dispensers, id)
		for rid, rw := range d.rows {
			if rw.DispenserID == id {
				delete(d.rows, rid)
			}
		}
		d.transactions = slices.DeleteFunc(d.transactions, func(t domain.Transaction) bool { return t.DispenserID == id })
		return nil
	})
}

func (r *DispenserRepository) CreateRow(_ context.Context, dp *domain.DispenserProduct) error {
	return r.store.write(func(d *state) error {
		if _, ok := d.dispensers[dp.DispenserID]; !ok {
			return domain.ErrDispenserNotFound
		}
		if _, taken := d.findRow(dp.DispenserID, dp.RowNumber); taken {
			return domain.ErrConflict
		}
		dp.ID = uuid.New()
		stamp(&dp.CreatedAt, &dp.UpdatedAt)
		d.rows[dp.ID] = toRow(*dp)
		return nil
	})
}

func (r *DispenserRepository) UpsertRow(_ context.Context, dp *domain.DispenserProduct) (bool, error) {
	var created bool
	err := r.store.write(func(d *state) error {
		if _, ok := d.dispensers[dp.DispenserID]; !ok {
			return domain.ErrDispenserNotFound
		}
		existing, found := d.findRow(dp.DispenserID, dp.RowNumber)
		if found {
			dp.ID = existing.ID
			dp.CreatedAt = existing.CreatedAt
			dp.UpdatedAt = time.Now().UTC()
		} else {
			created = true
			dp.ID = uuid.New()
			stamp(&dp.CreatedAt, &dp.UpdatedAt)
		}
		d.rows[dp.ID] = toRow(*dp)
		return nil
	})
	return created, err
}

func (r *DispenserRepository) GetRowForUpdate(_ context.Context, dispenserID uuid.UUID, rowNumber int, productID uuid.UUID) (*domain.DispenserProduct, error) {
	var found *domain.DispenserProduct
	r.store.read(func(d *state) {
		rw, ok := d.findRow(dispenserID, rowNumber)
		if !ok || rw.ProductID == nil || *rw.ProductID != productID {
			return
		}
		resolved := d.resolveRow(rw)
		found = &resolved
	})
	if found == nil {
		return nil, domain.ErrRowNotFound
	}
	return found, nil
}

func (r *DispenserRepository) DecrementInventory(_ context.Context, rowID uuid.UUID) (int, error) {
	var remaining int
	err := r.store.write(func(d *state) error {
		rw, ok := d.rows[rowID]
		if !ok {
			return domain.ErrRowNotFound
		}
		if rw.CurrentInventory <= 0 {
			return domain.ErrOutOfStock
		}
		rw.CurrentInventory--
		rw.UpdatedAt = time.Now().UTC()
		d.rows[rowID] = rw
		remaining = rw.CurrentInventory
		return nil
	})
	return remaining, err
}

func (r *DispenserRepository) WithTx(gateway.TransactionObject) gateway.DispenserRepository {
	return r
}

func toRow(dp domain.DispenserProduct) row {
	stored := row{DispenserProduct: dp}
	if dp.Product != nil {
		id := dp.Product.ID
		stored.ProductID = &id
	}
	stored.Product = nil
	return stored
}
