package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/healthconnect/healthconnect/internal/platform/auth"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("role may not perform this transition")
)

var transitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func canTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StockAdjuster decrements catalog stock when an order is placed and
// restores it on cancellation.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, medicineID uuid.UUID, delta int) error
}

// TxRunner wraps a function in a database transaction. Pass-through in tests.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo  Repository
	stock StockAdjuster
	runTx TxRunner
}

func NewService(repo Repository, stock StockAdjuster, runTx TxRunner) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, stock: stock, runTx: runTx}
}

func validateCreate(req CreateRequest) error {
	if req.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("order has no items")
	}
	var sum float64
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
		if item.Price < 0 {
			return fmt.Errorf("item %d: price must not be negative", i)
		}
		sum += item.Price * float64(item.Quantity)
	}
	if math.Abs(sum-req.TotalAmount) > 0.01 {
		return fmt.Errorf("total_amount %.2f does not match line total %.2f", req.TotalAmount, sum)
	}
	return nil
}

// Create places an order and decrements stock for each line inside one
// transaction, so a stock shortage rolls back the whole order.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}
	o := &Order{
		PatientID:      req.PatientID,
		PatientName:    req.PatientName,
		PatientAddress: req.PatientAddress,
		PatientPhone:   req.PatientPhone,
		Items:          req.Items,
		TotalAmount:    req.TotalAmount,
		Status:         StatusPending,
		OrderDate:      time.Now().UTC(),
	}
	err := s.runTx(ctx, func(ctx context.Context) error {
		for _, item := range o.Items {
			if err := s.stock.AdjustStock(ctx, item.MedicineID, -item.Quantity); err != nil {
				return fmt.Errorf("reserve stock: %w", err)
			}
		}
		return s.repo.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Order, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Order, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// UpdateStatus enforces the transition graph and the role rules: a
// patient may only cancel; forward moves are staff-only. Cancelling a
// pending order restores the reserved stock.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status, role string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !canTransition(o.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}
	if role == auth.RolePatient && status != StatusCancelled {
		return nil, ErrForbidden
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		if status == StatusCancelled {
			for _, item := range o.Items {
				if err := s.stock.AdjustStock(ctx, item.MedicineID, item.Quantity); err != nil {
					return fmt.Errorf("restore stock: %w", err)
				}
			}
		}
		o.Status = status
		if status == StatusDelivered {
			now := time.Now().UTC()
			o.DeliveryDate = &now
		}
		return s.repo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
