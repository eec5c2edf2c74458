package payment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthconnect/healthconnect/internal/domain/order"
	"github.com/healthconnect/healthconnect/internal/domain/wallet"
	"github.com/healthconnect/healthconnect/internal/platform/gateway"
)

type mockRepo struct {
	byID  map[uuid.UUID]*Payment
	byKey map[string]*Payment
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: map[uuid.UUID]*Payment{}, byKey: map[string]*Payment{}}
}

func (m *mockRepo) Create(_ context.Context, p *Payment) error {
	p.ID = uuid.New()
	m.byID[p.ID] = p
	m.byKey[p.IdempotencyKey] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Payment, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (m *mockRepo) GetByIdempotencyKey(_ context.Context, key string) (*Payment, error) {
	p, ok := m.byKey[key]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Payment) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Payment, error) {
	var out []*Payment
	for _, p := range m.byID {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) Stats(_ context.Context) (*Stats, error) {
	return &Stats{TotalPayments: len(m.byID)}, nil
}

type creditCall struct {
	ownerType, ownerID string
	amount             float64
}

type mockWallets struct {
	credits []creditCall
}

func (m *mockWallets) Credit(_ context.Context, ownerType, ownerID string, amount float64, _, _ string) error {
	m.credits = append(m.credits, creditCall{ownerType, ownerID, amount})
	return nil
}

type mockOrders struct {
	placed []order.CreateRequest
}

func (m *mockOrders) Create(_ context.Context, req order.CreateRequest) (*order.Order, error) {
	m.placed = append(m.placed, req)
	return &order.Order{ID: uuid.New(), Status: order.StatusPending}, nil
}

func newTestService() (*Service, *mockRepo, *mockWallets, *mockOrders, *gateway.Gateway) {
	repo := newMockRepo()
	wallets := &mockWallets{}
	orders := &mockOrders{}
	gw := gateway.New("rzp_test_key", "test_secret")
	svc := NewService(repo, gw, wallets, orders, nil, zerolog.Nop())
	return svc, repo, wallets, orders, gw
}

func consultationRequest() CreateOrderRequest {
	docID := uuid.New()
	return CreateOrderRequest{
		IdempotencyKey: uuid.NewString(),
		PatientID:      uuid.New(),
		DoctorID:       &docID,
		Type:           TypeConsultation,
		Method:         "UPI",
		Amount:         500,
	}
}

func TestCreateOrder(t *testing.T) {
	svc, repo, _, _, _ := newTestService()

	resp, err := svc.CreateOrder(context.Background(), consultationRequest())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.AmountPaise != 50000 {
		t.Errorf("amount_paise = %d, want 50000", resp.AmountPaise)
	}
	if !strings.HasPrefix(resp.GatewayOrderID, "order_") {
		t.Errorf("gateway order id = %q", resp.GatewayOrderID)
	}
	if repo.byID[resp.PaymentID].Status != StatusPending {
		t.Error("payment not persisted as PENDING")
	}
}

func TestCreateOrderIdempotent(t *testing.T) {
	svc, repo, _, _, _ := newTestService()
	req := consultationRequest()

	first, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.PaymentID != second.PaymentID || first.GatewayOrderID != second.GatewayOrderID {
		t.Error("replayed key minted a second payment")
	}
	if len(repo.byID) != 1 {
		t.Errorf("%d payments persisted, want 1", len(repo.byID))
	}
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"missing key", func(r *CreateOrderRequest) { r.IdempotencyKey = "" }},
		{"zero amount", func(r *CreateOrderRequest) { r.Amount = 0 }},
		{"bad method", func(r *CreateOrderRequest) { r.Method = "CHEQUE" }},
		{"bad type", func(r *CreateOrderRequest) { r.Type = "DONATION" }},
		{"consultation without doctor", func(r *CreateOrderRequest) { r.DoctorID = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := consultationRequest()
			tc.mutate(&req)
			if _, err := svc.CreateOrder(context.Background(), req); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	medReq := CreateOrderRequest{
		IdempotencyKey: uuid.NewString(),
		PatientID:      uuid.New(),
		Type:           TypeMedicine,
		Method:         "CARD",
		Amount:         90,
	}
	if _, err := svc.CreateOrder(context.Background(), medReq); !errors.Is(err, ErrMissingItems) {
		t.Errorf("medicine without items: got %v, want ErrMissingItems", err)
	}
}

func verify(t *testing.T, svc *Service, gw *gateway.Gateway, resp *CreateOrderResponse) (*Payment, error) {
	t.Helper()
	gwPaymentID := "pay_" + uuid.NewString()
	return svc.Verify(context.Background(), VerifyRequest{
		PaymentID:        resp.PaymentID,
		GatewayOrderID:   resp.GatewayOrderID,
		GatewayPaymentID: gwPaymentID,
		Signature:        gw.Sign(resp.GatewayOrderID, gwPaymentID),
	})
}

func TestVerifyConsultationSplits(t *testing.T) {
	svc, _, wallets, orders, gw := newTestService()
	req := consultationRequest()
	resp, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	p, err := verify(t, svc, gw, resp)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.Status != StatusSuccess {
		t.Errorf("status = %q", p.Status)
	}
	if !strings.HasPrefix(p.InvoiceNumber, "INV-") {
		t.Errorf("invoice = %q", p.InvoiceNumber)
	}
	if p.ProviderShare != 400 || p.PlatformShare != 100 {
		t.Errorf("split = %.2f/%.2f, want 400/100", p.ProviderShare, p.PlatformShare)
	}
	if len(wallets.credits) != 1 {
		t.Fatalf("%d wallet credits, want 1", len(wallets.credits))
	}
	c := wallets.credits[0]
	if c.ownerType != wallet.OwnerDoctor || c.ownerID != req.DoctorID.String() || c.amount != 400 {
		t.Errorf("credit = %+v", c)
	}
	if len(orders.placed) != 0 {
		t.Error("consultation placed a medicine order")
	}
}

func TestVerifyMedicineSplitsAndPlacesOrder(t *testing.T) {
	svc, _, wallets, orders, gw := newTestService()
	req := CreateOrderRequest{
		IdempotencyKey: uuid.NewString(),
		PatientID:      uuid.New(),
		Type:           TypeMedicine,
		Method:         "CARD",
		Amount:         200,
		Items:          []order.Item{{MedicineID: uuid.New(), MedicineName: "Paracetamol", Quantity: 2, Price: 100}},
		PatientAddress: "12 MG Road",
	}
	resp, err := svc.CreateOrder(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	p, err := verify(t, svc, gw, resp)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.ProviderShare != 180 || p.PlatformShare != 20 {
		t.Errorf("split = %.2f/%.2f, want 180/20", p.ProviderShare, p.PlatformShare)
	}
	c := wallets.credits[0]
	if c.ownerType != wallet.OwnerPharmacy || c.ownerID != DefaultPharmacyID {
		t.Errorf("credit went to %s/%s", c.ownerType, c.ownerID)
	}
	if len(orders.placed) != 1 {
		t.Fatal("medicine order not placed")
	}
	if orders.placed[0].PatientAddress != "12 MG Road" {
		t.Error("delivery address not carried to the order")
	}
	if p.OrderID == nil {
		t.Error("payment not linked to the placed order")
	}
}

func TestVerifyIdempotent(t *testing.T) {
	svc, _, wallets, orders, gw := newTestService()
	resp, err := svc.CreateOrder(context.Background(), consultationRequest())
	if err != nil {
		t.Fatal(err)
	}

	first, err := verify(t, svc, gw, resp)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Verify(context.Background(), VerifyRequest{
		PaymentID:        resp.PaymentID,
		GatewayOrderID:   resp.GatewayOrderID,
		GatewayPaymentID: "pay_replay",
		Signature:        "irrelevant-on-replay",
	})
	if err != nil {
		t.Fatalf("replay verify: %v", err)
	}
	if second.InvoiceNumber != first.InvoiceNumber {
		t.Error("replay changed the stored payment")
	}
	if len(wallets.credits) != 1 {
		t.Errorf("replay credited wallets again: %d credits", len(wallets.credits))
	}
	if len(orders.placed) != 0 {
		t.Error("replay placed an order")
	}
}

func TestVerifyBadSignature(t *testing.T) {
	svc, repo, wallets, _, _ := newTestService()
	resp, err := svc.CreateOrder(context.Background(), consultationRequest())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Verify(context.Background(), VerifyRequest{
		PaymentID:        resp.PaymentID,
		GatewayOrderID:   resp.GatewayOrderID,
		GatewayPaymentID: "pay_x",
		Signature:        "forged",
	})
	if !errors.Is(err, ErrBadSignature) {
		t.Fatalf("got %v, want ErrBadSignature", err)
	}
	if repo.byID[resp.PaymentID].Status != StatusFailed {
		t.Error("payment not marked FAILED")
	}
	if len(wallets.credits) != 0 {
		t.Error("failed payment credited a wallet")
	}
}

func TestVerifyOrderMismatch(t *testing.T) {
	svc, _, _, _, gw := newTestService()
	resp, err := svc.CreateOrder(context.Background(), consultationRequest())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Verify(context.Background(), VerifyRequest{
		PaymentID:        resp.PaymentID,
		GatewayOrderID:   "order_other",
		GatewayPaymentID: "pay_x",
		Signature:        gw.Sign("order_other", "pay_x"),
	})
	if !errors.Is(err, ErrOrderMismatch) {
		t.Errorf("got %v, want ErrOrderMismatch", err)
	}
}

func TestInvoiceRequiresSuccess(t *testing.T) {
	svc, _, _, _, gw := newTestService()
	resp, err := svc.CreateOrder(context.Background(), consultationRequest())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Invoice(context.Background(), resp.PaymentID); !errors.Is(err, ErrNotVerified) {
		t.Errorf("pending invoice: got %v, want ErrNotVerified", err)
	}

	if _, err := verify(t, svc, gw, resp); err != nil {
		t.Fatal(err)
	}
	inv, err := svc.Invoice(context.Background(), resp.PaymentID)
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Errorf("invoice number = %q", inv.InvoiceNumber)
	}
}
