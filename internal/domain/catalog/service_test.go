package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	byID map[uuid.UUID]*Medicine
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: map[uuid.UUID]*Medicine{}}
}

func (m *mockRepo) Create(_ context.Context, med *Medicine) error {
	med.ID = uuid.New()
	m.byID[med.ID] = med
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Medicine, error) {
	med, ok := m.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return med, nil
}

func (m *mockRepo) Update(_ context.Context, med *Medicine) error {
	m.byID[med.ID] = med
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Medicine, int, error) {
	var out []*Medicine
	for _, med := range m.byID {
		out = append(out, med)
	}
	return out, len(out), nil
}

func (m *mockRepo) Search(_ context.Context, query string) ([]*Medicine, error) {
	q := strings.ToLower(query)
	var out []*Medicine
	for _, med := range m.byID {
		if strings.Contains(strings.ToLower(med.Name), q) ||
			strings.Contains(strings.ToLower(med.Description), q) {
			out = append(out, med)
		}
	}
	return out, nil
}

func (m *mockRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	med, ok := m.byID[id]
	if !ok {
		return errors.New("no rows")
	}
	if med.Stock+delta < 0 {
		return errors.New("insufficient stock")
	}
	med.Stock += delta
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []struct {
		name string
		med  Medicine
	}{
		{"missing name", Medicine{Price: 10, Stock: 5}},
		{"negative price", Medicine{Name: "Paracetamol", Price: -1}},
		{"negative stock", Medicine{Name: "Paracetamol", Price: 10, Stock: -1}},
		{"unknown category", Medicine{Name: "Paracetamol", Price: 10, Category: "Ointments"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			med := tc.med
			if err := svc.Create(context.Background(), &med); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	ok := Medicine{Name: "Paracetamol 500mg", Description: "Fever relief", Price: 30, Category: "Tablets", Stock: 100}
	if err := svc.Create(context.Background(), &ok); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ok.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestSearch(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	for _, med := range []*Medicine{
		{Name: "Paracetamol 500mg", Description: "Fever relief", Category: "Tablets"},
		{Name: "Cough Syrup", Description: "Contains paracetamol", Category: "Syrup"},
		{Name: "Amoxicillin", Description: "Antibiotic", Category: "Capsules"},
	} {
		if err := repo.Create(context.Background(), med); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.Search(context.Background(), "para")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("search %q matched %d medicines, want 2", "para", len(got))
	}

	// blank query returns the catalog
	got, err = svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search blank: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("blank search returned %d, want 3", len(got))
	}
}
