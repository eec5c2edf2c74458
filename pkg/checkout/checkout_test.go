package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/healthconnect/healthconnect/pkg/cart"
	"github.com/healthconnect/healthconnect/pkg/client"
)

type mockAPI struct {
	createErr  error
	verifyErr  error
	status     string
	createKeys []string
	verifyReqs []client.VerifyPaymentRequest
}

func (m *mockAPI) CreatePaymentOrder(ctx context.Context, req client.CreatePaymentOrderRequest) (*client.PaymentOrder, error) {
	m.createKeys = append(m.createKeys, req.IdempotencyKey)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &client.PaymentOrder{
		PaymentID:      uuid.New(),
		GatewayOrderID: "order_1",
		AmountPaise:    int64(req.Amount * 100),
		Currency:       "INR",
		KeyID:          "key_test",
	}, nil
}

func (m *mockAPI) VerifyPayment(ctx context.Context, req client.VerifyPaymentRequest) (*client.Payment, error) {
	m.verifyReqs = append(m.verifyReqs, req)
	if m.verifyErr != nil {
		return nil, m.verifyErr
	}
	status := m.status
	if status == "" {
		status = "SUCCESS"
	}
	return &client.Payment{ID: req.PaymentID, Status: status}, nil
}

type mockCollector struct {
	err error
}

func (m *mockCollector) Collect(ctx context.Context, order *client.PaymentOrder, _ Method) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return "pay_1", "sig_1", nil
}

func filledCart(t *testing.T) *cart.Manager {
	t.Helper()
	m := cart.NewManager(nil)
	adds := []client.Medicine{
		{ID: uuid.New(), Name: "Paracetamol", Price: 20, Stock: 50},
		{ID: uuid.New(), Name: "Paracetamol", Price: 20, Stock: 50},
		{ID: uuid.New(), Name: "Vitamin C", Price: 50, Stock: 30},
	}
	// Two units of the first medicine, one of the second.
	adds[1].ID = adds[0].ID
	for _, a := range adds {
		if err := m.Add(a); err != nil {
			t.Fatal(err)
		}
	}
	return m
}

func TestSuccessfulMedicineCheckout(t *testing.T) {
	c := filledCart(t)
	count, amount := c.Totals()
	if count != 3 || amount != 90 {
		t.Fatalf("precondition: Totals() = (%d, %v)", count, amount)
	}

	api := &mockAPI{}
	o := New(api, &mockCollector{}, c)

	if err := o.SelectMethod(MethodUPI); err != nil {
		t.Fatal(err)
	}
	if o.State() != StateMethodSelected {
		t.Fatalf("state = %v", o.State())
	}

	intent := MedicineIntent(c, uuid.New(), "Asha", "12 MG Road", "9999999999")
	if intent.Amount != 90 || len(intent.Items) != 2 {
		t.Fatalf("intent = %+v", intent)
	}

	p, err := o.Pay(context.Background(), intent)
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if o.State() != StateSucceeded || p.Status != "SUCCESS" {
		t.Fatalf("state=%v status=%s", o.State(), p.Status)
	}
	if len(c.Lines()) != 0 {
		t.Fatal("cart not cleared after success")
	}
	if got := api.verifyReqs[0]; got.GatewayOrderID != "order_1" || got.GatewayPaymentID != "pay_1" || got.Signature != "sig_1" {
		t.Fatalf("verify request = %+v", got)
	}
}

func TestFailureLeavesCartAndAllowsRetry(t *testing.T) {
	c := filledCart(t)
	api := &mockAPI{createErr: errors.New("gateway down")}
	o := New(api, &mockCollector{}, c)

	if err := o.SelectMethod(MethodUPI); err != nil {
		t.Fatal(err)
	}
	if _, err := o.Pay(context.Background(), MedicineIntent(c, uuid.New(), "", "", "")); err == nil {
		t.Fatal("expected failure")
	}
	if o.State() != StateFailed {
		t.Fatalf("state = %v", o.State())
	}
	if len(c.Lines()) != 2 {
		t.Fatal("failed attempt touched the cart")
	}

	// Pay is rejected until a method is re-selected.
	if _, err := o.Pay(context.Background(), MedicineIntent(c, uuid.New(), "", "", "")); !errors.Is(err, ErrBadState) {
		t.Fatalf("err = %v, want ErrBadState", err)
	}

	api.createErr = nil
	if err := o.SelectMethod(MethodNetBanking); err != nil {
		t.Fatalf("retry SelectMethod: %v", err)
	}
	if _, err := o.Pay(context.Background(), MedicineIntent(c, uuid.New(), "", "", "")); err != nil {
		t.Fatalf("retry Pay: %v", err)
	}

	if len(api.createKeys) != 2 {
		t.Fatalf("create called %d times", len(api.createKeys))
	}
	if api.createKeys[0] == api.createKeys[1] {
		t.Fatal("retry reused the idempotency key; each attempt needs a fresh one")
	}
}

func TestVerifyFailureMarksFailed(t *testing.T) {
	for _, tc := range []struct {
		name string
		api  *mockAPI
	}{
		{"verify error", &mockAPI{verifyErr: errors.New("bad signature")}},
		{"non-success status", &mockAPI{status: "FAILED"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := filledCart(t)
			o := New(tc.api, &mockCollector{}, c)
			if err := o.SelectMethod(MethodUPI); err != nil {
				t.Fatal(err)
			}
			if _, err := o.Pay(context.Background(), MedicineIntent(c, uuid.New(), "", "", "")); err == nil {
				t.Fatal("expected failure")
			}
			if o.State() != StateFailed {
				t.Fatalf("state = %v", o.State())
			}
			if len(c.Lines()) != 2 {
				t.Fatal("cart cleared on failed verification")
			}
		})
	}
}

func TestCardFormRequiresAllFields(t *testing.T) {
	o := New(&mockAPI{}, &mockCollector{}, nil)

	if err := o.SelectMethod(MethodCard); err != nil {
		t.Fatal(err)
	}
	if o.State() != StateCardForm {
		t.Fatalf("state = %v", o.State())
	}

	incomplete := []Card{
		{},
		{Number: "4111", Expiry: "12/27", CVV: "123"},
		{Number: "4111", Expiry: "12/27", Holder: "Asha"},
		{Number: " ", Expiry: "12/27", CVV: "123", Holder: "Asha"},
	}
	for _, card := range incomplete {
		if err := o.EnterCard(card); !errors.Is(err, ErrCardIncomplete) {
			t.Fatalf("EnterCard(%+v) = %v, want ErrCardIncomplete", card, err)
		}
	}
	if o.State() != StateCardForm {
		t.Fatalf("state moved to %v on incomplete card", o.State())
	}

	if err := o.EnterCard(Card{Number: "4111", Expiry: "12/27", CVV: "123", Holder: "Asha"}); err != nil {
		t.Fatal(err)
	}
	if o.State() != StateMethodSelected {
		t.Fatalf("state = %v", o.State())
	}
}

func TestSelectMethodValidation(t *testing.T) {
	o := New(&mockAPI{}, &mockCollector{}, nil)

	if err := o.SelectMethod("BITCOIN"); !errors.Is(err, ErrInvalidMethod) {
		t.Fatalf("err = %v, want ErrInvalidMethod", err)
	}
	// Switching methods while choosing is fine.
	if err := o.SelectMethod(MethodCard); err != nil {
		t.Fatal(err)
	}
	if err := o.SelectMethod(MethodWallet); err != nil {
		t.Fatal(err)
	}
	if o.State() != StateMethodSelected {
		t.Fatalf("state = %v", o.State())
	}

	// EnterCard outside the card form is rejected.
	if err := o.EnterCard(Card{Number: "4111", Expiry: "12/27", CVV: "123", Holder: "A"}); !errors.Is(err, ErrBadState) {
		t.Fatalf("err = %v, want ErrBadState", err)
	}
}

func TestConsultationCheckoutSkipsCart(t *testing.T) {
	api := &mockAPI{}
	o := New(api, &mockCollector{}, nil)

	if err := o.SelectMethod(MethodUPI); err != nil {
		t.Fatal(err)
	}
	intent := ConsultationIntent(uuid.New(), uuid.New(), uuid.New(), 500)
	p, err := o.Pay(context.Background(), intent)
	if err != nil {
		t.Fatalf("Pay: %v", err)
	}
	if p.Status != "SUCCESS" || o.State() != StateSucceeded {
		t.Fatalf("state=%v status=%s", o.State(), p.Status)
	}
}
