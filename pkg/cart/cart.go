// Package cart holds the medicine catalog and the shopping cart. The
// catalog is fetched once and filtered in memory; the cart keeps at
// most one line per medicine, merging quantity on repeated adds, and
// persists to the session store on every mutation so a restarted
// client resumes with the same cart.
package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/healthconnect/healthconnect/pkg/client"
	"github.com/healthconnect/healthconnect/pkg/session"
)

// ErrOutOfStock rejects adding a medicine whose stock is zero.
var ErrOutOfStock = errors.New("cart: medicine out of stock")

// CategoryAll matches every category in Filter.
const CategoryAll = "All"

// Line is one cart entry: a medicine reference with a denormalized
// name/price snapshot. Quantity is always positive; a line at zero is
// removed, never kept.
type Line struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
}

// Catalog is the backend surface the manager loads medicines from.
type Catalog interface {
	Medicines(ctx context.Context) ([]client.Medicine, error)
}

// Manager owns the loaded catalog and the cart for one client session.
// Not safe for concurrent use; the client drives it from a single
// event loop.
type Manager struct {
	store   *session.Store
	catalog []client.Medicine
	lines   []Line
}

// NewManager restores any persisted cart from the store. A nil store
// keeps the cart in memory only.
func NewManager(store *session.Store) *Manager {
	m := &Manager{store: store}
	if store != nil {
		store.LoadCart(&m.lines)
	}
	return m
}

// LoadCatalog fetches the full medicine list. Demo-scale: no paging,
// no incremental refresh.
func (m *Manager) LoadCatalog(ctx context.Context, src Catalog) error {
	meds, err := src.Medicines(ctx)
	if err != nil {
		return err
	}
	m.catalog = meds
	return nil
}

func (m *Manager) Catalog() []client.Medicine { return m.catalog }

// Filter is a pure view over the loaded catalog. Category "" or "All"
// matches everything, otherwise the match is case-insensitive exact;
// the query is a case-insensitive substring match over name and
// description.
func (m *Manager) Filter(query, category string) []client.Medicine {
	q := strings.ToLower(strings.TrimSpace(query))
	matchAll := category == "" || strings.EqualFold(category, CategoryAll)

	var out []client.Medicine
	for _, med := range m.catalog {
		if !matchAll && !strings.EqualFold(med.Category, category) {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(med.Name), q) &&
			!strings.Contains(strings.ToLower(med.Description), q) {
			continue
		}
		out = append(out, med)
	}
	return out
}

// Add puts one unit of the medicine in the cart, merging into an
// existing line. Out-of-stock medicines are rejected here, not just at
// the UI layer.
func (m *Manager) Add(med client.Medicine) error {
	if med.Stock <= 0 {
		return ErrOutOfStock
	}
	for i := range m.lines {
		if m.lines[i].MedicineID == med.ID {
			m.lines[i].Quantity++
			return m.persist()
		}
	}
	m.lines = append(m.lines, Line{
		MedicineID: med.ID,
		Name:       med.Name,
		Price:      med.Price,
		Quantity:   1,
	})
	return m.persist()
}

// SetQuantity sets a line's quantity; qty <= 0 removes the line.
// Unknown medicine ids are ignored.
func (m *Manager) SetQuantity(medicineID uuid.UUID, qty int) error {
	for i := range m.lines {
		if m.lines[i].MedicineID != medicineID {
			continue
		}
		if qty <= 0 {
			m.lines = append(m.lines[:i], m.lines[i+1:]...)
		} else {
			m.lines[i].Quantity = qty
		}
		return m.persist()
	}
	return nil
}

// Lines returns a copy of the current cart.
func (m *Manager) Lines() []Line {
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out
}

// Items converts the cart to order line items.
func (m *Manager) Items() []client.OrderItem {
	items := make([]client.OrderItem, 0, len(m.lines))
	for _, l := range m.lines {
		items = append(items, client.OrderItem{
			MedicineID:   l.MedicineID,
			MedicineName: l.Name,
			Quantity:     l.Quantity,
			Price:        l.Price,
		})
	}
	return items
}

// Totals recomputes the aggregate on every call; there is no cached
// sum to drift.
func (m *Manager) Totals() (itemCount int, amount float64) {
	for _, l := range m.lines {
		itemCount += l.Quantity
		amount += l.Price * float64(l.Quantity)
	}
	return itemCount, amount
}

// Clear empties the cart, locally and in the store.
func (m *Manager) Clear() error {
	m.lines = nil
	if m.store == nil {
		return nil
	}
	return m.store.ClearCart()
}

func (m *Manager) persist() error {
	if m.store == nil {
		return nil
	}
	return m.store.SaveCart(m.lines)
}
