package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthconnect/healthconnect/internal/domain/order"
	"github.com/healthconnect/healthconnect/internal/domain/wallet"
	"github.com/healthconnect/healthconnect/internal/platform/gateway"
)

var (
	ErrNotFound         = errors.New("payment not found")
	ErrBadSignature     = errors.New("signature verification failed")
	ErrNotVerified      = errors.New("payment is not verified")
	ErrOrderMismatch    = errors.New("gateway order does not match payment")
	ErrMissingIdemKey   = errors.New("idempotency_key is required")
	ErrUnknownType      = errors.New("type must be CONSULTATION or MEDICINE")
	ErrUnknownMethod    = errors.New("unknown payment method")
	ErrMissingDoctor    = errors.New("doctor_id is required for consultation payments")
	ErrMissingItems     = errors.New("items are required for medicine payments")
	ErrAlreadyFinalized = errors.New("payment already finalized")
)

// Crediter is the wallet side of revenue distribution.
type Crediter interface {
	Credit(ctx context.Context, ownerType, ownerID string, amount float64, description, reference string) error
}

// OrderPlacer creates the medicine order once payment is confirmed.
type OrderPlacer interface {
	Create(ctx context.Context, req order.CreateRequest) (*order.Order, error)
}

// TxRunner wraps a function in a database transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo    Repository
	gateway *gateway.Gateway
	wallets Crediter
	orders  OrderPlacer
	runTx   TxRunner
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(repo Repository, gw *gateway.Gateway, wallets Crediter, orders OrderPlacer, runTx TxRunner, log zerolog.Logger) *Service {
	if runTx == nil {
		runTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{repo: repo, gateway: gw, wallets: wallets, orders: orders, runTx: runTx, log: log, now: time.Now}
}

func validateCreate(req CreateOrderRequest) error {
	if req.IdempotencyKey == "" {
		return ErrMissingIdemKey
	}
	if req.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if req.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if !validMethod(req.Method) {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
	switch req.Type {
	case TypeConsultation:
		if req.DoctorID == nil || *req.DoctorID == uuid.Nil {
			return ErrMissingDoctor
		}
	case TypeMedicine:
		if len(req.Items) == 0 {
			return ErrMissingItems
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, req.Type)
	}
	return nil
}

// CreateOrder persists a PENDING payment and mints a gateway order for
// it. Replaying the same idempotency key returns the original gateway
// order without creating a second payment.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByIdempotencyKey(ctx, req.IdempotencyKey); err == nil {
		s.log.Info().Str("payment_id", existing.ID.String()).
			Msg("create-order replay, returning existing gateway order")
		return &CreateOrderResponse{
			PaymentID:      existing.ID,
			GatewayOrderID: existing.GatewayOrderID,
			AmountPaise:    int64(existing.Amount * 100),
			Currency:       existing.Currency,
			KeyID:          s.gateway.KeyID(),
		}, nil
	}

	p := &Payment{
		IdempotencyKey: req.IdempotencyKey,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		AppointmentID:  req.AppointmentID,
		Type:           req.Type,
		Method:         req.Method,
		Amount:         req.Amount,
		Currency:       "INR",
		Status:         StatusPending,
		Items:          req.Items,
		PatientName:    req.PatientName,
		PatientAddress: req.PatientAddress,
		PatientPhone:   req.PatientPhone,
	}
	gwOrder := s.gateway.CreateOrder(req.Amount, p.Currency, req.IdempotencyKey)
	p.GatewayOrderID = gwOrder.ID

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	s.log.Info().Str("payment_id", p.ID.String()).Str("gateway_order_id", gwOrder.ID).
		Str("type", p.Type).Float64("amount", p.Amount).Msg("payment order created")

	return &CreateOrderResponse{
		PaymentID:      p.ID,
		GatewayOrderID: gwOrder.ID,
		AmountPaise:    gwOrder.Amount,
		Currency:       gwOrder.Currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

// Verify checks the gateway signature and, on first success, finalizes
// the payment: records the invoice number, splits revenue into wallets
// and places the medicine order when line items were attached. A replay
// against an already successful payment returns the stored record.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, req.PaymentID)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Status == StatusSuccess {
		return p, nil
	}
	if p.Status == StatusFailed {
		return nil, ErrAlreadyFinalized
	}
	if p.GatewayOrderID != req.GatewayOrderID {
		return nil, ErrOrderMismatch
	}
	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		p.Status = StatusFailed
		p.GatewayPaymentID = req.GatewayPaymentID
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, fmt.Errorf("mark payment failed: %w", err)
		}
		s.log.Warn().Str("payment_id", p.ID.String()).Msg("payment signature rejected")
		return nil, ErrBadSignature
	}

	err = s.runTx(ctx, func(ctx context.Context) error {
		p.Status = StatusSuccess
		p.GatewayPaymentID = req.GatewayPaymentID
		p.InvoiceNumber = fmt.Sprintf("INV-%d", s.now().UnixMilli())

		switch p.Type {
		case TypeConsultation:
			p.ProviderShare = p.Amount * ConsultationProviderShare
			p.PlatformShare = p.Amount - p.ProviderShare
			if err := s.wallets.Credit(ctx, wallet.OwnerDoctor, p.DoctorID.String(),
				p.ProviderShare, "consultation share", p.ID.String()); err != nil {
				return fmt.Errorf("credit doctor wallet: %w", err)
			}
		case TypeMedicine:
			p.ProviderShare = p.Amount * MedicineProviderShare
			p.PlatformShare = p.Amount - p.ProviderShare
			if err := s.wallets.Credit(ctx, wallet.OwnerPharmacy, DefaultPharmacyID,
				p.ProviderShare, "medicine share", p.ID.String()); err != nil {
				return fmt.Errorf("credit pharmacy wallet: %w", err)
			}
			o, err := s.orders.Create(ctx, order.CreateRequest{
				PatientID:      p.PatientID,
				PatientName:    p.PatientName,
				PatientAddress: p.PatientAddress,
				PatientPhone:   p.PatientPhone,
				Items:          p.Items,
				TotalAmount:    p.Amount,
			})
			if err != nil {
				return fmt.Errorf("place medicine order: %w", err)
			}
			p.OrderID = &o.ID
		}
		return s.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("payment_id", p.ID.String()).Str("invoice", p.InvoiceNumber).
		Msg("payment verified")
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Payment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

// Invoice renders the stored invoice for a successful payment.
func (s *Service) Invoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Status != StatusSuccess {
		return nil, ErrNotVerified
	}
	return &Invoice{
		InvoiceNumber: p.InvoiceNumber,
		PaymentID:     p.ID,
		PatientID:     p.PatientID,
		Type:          p.Type,
		Method:        p.Method,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Items:         p.Items,
		IssuedAt:      p.UpdatedAt,
	}, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
