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

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) Create(_ context.Context, product *domain.Product) error {
	return r.store.write(func(d *state) error {
		product.ID = uuid.New()
		stamp(&product.CreatedAt, &product.UpdatedAt)
		d.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	var (
		p  domain.Product
		ok bool
	)
	r.store.read(func(d *state) { p, ok = d.products[id] })
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *ProductRepository) GetActiveForUpdate(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (r *ProductRepository) List(_ context.Context, activeOnly bool) ([]domain.Product, error) {
	products := []domain.Product{}
	r.store.read(func(d *state) {
		for _, p := range d.products {
			if activeOnly && !p.IsActive {
				continue
			}
			products = append(products, p)
		}
	})
	slices.SortFunc(products, func(a, b domain.Product) int { return strings.Compare(a.ProductName, b.ProductName) })
	return products, nil
}

func (r *ProductRepository) Update(_ context.Context, product *domain.Product) error {
	return r.store.write(func(d *state) error {
		if _, ok := d.products[product.ID]; !ok {
			return domain.ErrProductNotFound
		}
		product.UpdatedAt = time.Now().UTC()
		d.products[product.ID] = *product
		return nil
	})
}

// Delete empties the rows holding the product and drops its transactions.
func (r *ProductRepository) Delete(_ context.Context, id uuid.UUID) error {
	return r.store.write(func(d *state) error {
		if _, ok := d.products[id]; !ok {
			return domain.ErrProductNotFound
		}
		delete(d.products, id)
		for rid, rw := range d.rows {
			if rw.ProductID != nil && *rw.ProductID == id {
				rw.ProductID = nil
				d.rows[rid] = rw
			}
		}
		d.transactions = slices.DeleteFunc(d.transactions, func(t domain.Transaction) bool { return t.ProductID == id })
		return nil
	})
}

func (r *ProductRepository) WithTx(gateway.TransactionObject) gateway.ProductRepository {
	return r
}
