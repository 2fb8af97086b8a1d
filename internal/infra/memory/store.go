// Package memory implements every gateway port on top of process memory.
// It backs local development (STORAGE_DRIVER=memory) and the test suites.
package memory

import (
	"maps"
	"slices"
	"sync"

	"github.com/Faisal-Javaid/napkin-dispenser/internal/domain"
	"github.com/google/uuid"
)

// row is a dispenser row as stored: the product is kept by reference.
type row struct {
	domain.DispenserProduct
	ProductID *uuid.UUID
}

type state struct {
	users        map[uuid.UUID]domain.User
	wallets      map[uuid.UUID]domain.Wallet
	products     map[uuid.UUID]domain.Product
	dispensers   map[uuid.UUID]domain.Dispenser
	rows         map[uuid.UUID]row
	transactions []domain.Transaction
	logs         []domain.LogEntry
}

func newState() state {
	return state{
		users:      make(map[uuid.UUID]domain.User),
		wallets:    make(map[uuid.UUID]domain.Wallet),
		products:   make(map[uuid.UUID]domain.Product),
		dispensers: make(map[uuid.UUID]domain.Dispenser),
		rows:       make(map[uuid.UUID]row),
	}
}

func (s state) clone() state {
	return state{
		users:        maps.Clone(s.users),
		wallets:      maps.Clone(s.wallets),
		products:     maps.Clone(s.products),
		dispensers:   maps.Clone(s.dispensers),
		rows:         maps.Clone(s.rows),
		transactions: slices.Clone(s.transactions),
		logs:         slices.Clone(s.logs),
	}
}

// Store is the shared state behind the memory repositories.
type Store struct {
	mu   sync.RWMutex
	data state

	// txMu serializes units of work; it plays the role of row locks.
	txMu sync.Mutex
}

func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(d *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func (s *Store) write(fn func(d *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

// dispenserRows returns the rows of a dispenser ordered by row number with
// their products resolved. Callers hold the read lock.
func (d *state) dispenserRows(dispenserID uuid.UUID) []domain.DispenserProduct {
	rows := make([]domain.DispenserProduct, 0, domain.RowsPerDispenser)
	for _, r := range d.rows {
		if r.DispenserID == dispenserID {
			rows = append(rows, d.resolveRow(r))
		}
	}
	slices.SortFunc(rows, func(a, b domain.DispenserProduct) int { return a.RowNumber - b.RowNumber })
	return rows
}

func (d *state) resolveRow(r row) domain.DispenserProduct {
	out := r.DispenserProduct
	out.Product = nil
	if r.ProductID != nil {
		if p, ok := d.products[*r.ProductID]; ok {
			out.Product = &p
		}
	}
	return out
}

func (d *state) findRow(dispenserID uuid.UUID, rowNumber int) (row, bool) {
	for _, r := range d.rows {
		if r.DispenserID == dispenserID && r.RowNumber == rowNumber {
			return r, true
		}
	}
	return row{}, false
}

// window applies a page to a slice already in display order.
func window[T any](items []T, page domain.Page) []T {
	offset := max(page.Offset, 0)
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.Limit < end-offset {
		end = offset + page.Limit
	}
	return items[offset:end]
}
