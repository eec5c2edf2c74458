package order

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/healthconnect/healthconnect/internal/platform/auth"
)

type mockRepo struct {
	byID map[uuid.UUID]*Order
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: map[uuid.UUID]*Order{}}
}

func (m *mockRepo) Create(_ context.Context, o *Order) error {
	o.ID = uuid.New()
	m.byID[o.ID] = o
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return o, nil
}

func (m *mockRepo) Update(_ context.Context, o *Order) error {
	m.byID[o.ID] = o
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Order, int, error) {
	var out []*Order
	for _, o := range m.byID {
		out = append(out, o)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Order, error) {
	var out []*Order
	for _, o := range m.byID {
		if o.PatientID == patientID {
			out = append(out, o)
		}
	}
	return out, nil
}

type mockStock struct {
	levels map[uuid.UUID]int
}

func (m *mockStock) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	if m.levels[id]+delta < 0 {
		return errors.New("insufficient stock")
	}
	m.levels[id] += delta
	return nil
}

func newTestService() (*Service, *mockRepo, *mockStock) {
	repo := newMockRepo()
	stock := &mockStock{levels: map[uuid.UUID]int{}}
	return NewService(repo, stock, nil), repo, stock
}

func TestCreateChecksTotal(t *testing.T) {
	svc, _, stock := newTestService()
	medID := uuid.New()
	stock.levels[medID] = 10

	req := CreateRequest{
		PatientID:   uuid.New(),
		Items:       []Item{{MedicineID: medID, Quantity: 3, Price: 30}},
		TotalAmount: 95, // line total is 90
	}
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Error("mismatched total accepted")
	}

	req.TotalAmount = 90
	o, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if o.Status != StatusPending {
		t.Errorf("status = %q, want %q", o.Status, StatusPending)
	}
	if stock.levels[medID] != 7 {
		t.Errorf("stock = %d after order, want 7", stock.levels[medID])
	}
}

func TestCreateRejectsEmptyAndBadLines(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Create(context.Background(), CreateRequest{PatientID: uuid.New()}); err == nil {
		t.Error("empty order accepted")
	}
	req := CreateRequest{
		PatientID: uuid.New(),
		Items:     []Item{{MedicineID: uuid.New(), Quantity: 0, Price: 10}},
	}
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Error("zero quantity accepted")
	}
}

func TestCreateInsufficientStock(t *testing.T) {
	svc, repo, stock := newTestService()
	medID := uuid.New()
	stock.levels[medID] = 1

	req := CreateRequest{
		PatientID:   uuid.New(),
		Items:       []Item{{MedicineID: medID, Quantity: 2, Price: 10}},
		TotalAmount: 20,
	}
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Error("expected stock error")
	}
	if len(repo.byID) != 0 {
		t.Error("order persisted despite stock failure")
	}
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to, role string
		wantErr        error
	}{
		{StatusPending, StatusProcessing, auth.RoleAdmin, nil},
		{StatusProcessing, StatusShipped, auth.RoleAdmin, nil},
		{StatusShipped, StatusDelivered, auth.RoleDoctor, nil},
		{StatusPending, StatusCancelled, auth.RolePatient, nil},
		{StatusPending, StatusShipped, auth.RoleAdmin, ErrInvalidTransition},
		{StatusProcessing, StatusCancelled, auth.RolePatient, ErrInvalidTransition},
		{StatusDelivered, StatusCancelled, auth.RoleAdmin, ErrInvalidTransition},
		{StatusCancelled, StatusProcessing, auth.RoleAdmin, ErrInvalidTransition},
		{StatusPending, StatusProcessing, auth.RolePatient, ErrForbidden},
	}

	for _, tc := range cases {
		svc, repo, stock := newTestService()
		o := &Order{ID: uuid.New(), Status: tc.from}
		repo.byID[o.ID] = o
		_ = stock

		_, err := svc.UpdateStatus(context.Background(), o.ID, tc.to, tc.role)
		if tc.wantErr == nil && err != nil {
			t.Errorf("%s -> %s as %s: unexpected error %v", tc.from, tc.to, tc.role, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("%s -> %s as %s: got %v, want %v", tc.from, tc.to, tc.role, err, tc.wantErr)
		}
	}
}

func TestCancelRestoresStock(t *testing.T) {
	svc, repo, stock := newTestService()
	medID := uuid.New()
	stock.levels[medID] = 5

	o := &Order{
		ID:     uuid.New(),
		Status: StatusPending,
		Items:  []Item{{MedicineID: medID, Quantity: 2, Price: 10}},
	}
	repo.byID[o.ID] = o

	if _, err := svc.UpdateStatus(context.Background(), o.ID, StatusCancelled, auth.RolePatient); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if stock.levels[medID] != 7 {
		t.Errorf("stock = %d after cancel, want 7", stock.levels[medID])
	}
}

func TestDeliveredSetsDeliveryDate(t *testing.T) {
	svc, repo, _ := newTestService()
	o := &Order{ID: uuid.New(), Status: StatusShipped}
	repo.byID[o.ID] = o

	got, err := svc.UpdateStatus(context.Background(), o.ID, StatusDelivered, auth.RoleAdmin)
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if got.DeliveryDate == nil {
		t.Error("delivery date not set")
	}
}
