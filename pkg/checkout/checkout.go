// Package checkout drives one payment attempt end to end: pick a
// method, open a gateway order, collect the provider's payment id and
// signature, verify server-side, and on success clear the cart. Each
// attempt gets a fresh idempotency key; a failed attempt leaves the
// cart untouched and restarts from method selection.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/healthconnect/healthconnect/pkg/cart"
	"github.com/healthconnect/healthconnect/pkg/client"
)

// State of the current attempt.
type State int

const (
	StateIdle State = iota
	StateCardForm
	StateMethodSelected
	StateSubmitting
	StateVerifying
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateCardForm:
		return "CARD_FORM"
	case StateMethodSelected:
		return "METHOD_SELECTED"
	case StateSubmitting:
		return "SUBMITTING"
	case StateVerifying:
		return "VERIFYING"
	case StateSucceeded:
		return "SUCCEEDED"
	case StateFailed:
		return "FAILED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Payment methods.
type Method string

const (
	MethodUPI        Method = "UPI"
	MethodCard       Method = "CARD"
	MethodNetBanking Method = "NETBANKING"
	MethodWallet     Method = "WALLET"
)

func validMethod(m Method) bool {
	switch m {
	case MethodUPI, MethodCard, MethodNetBanking, MethodWallet:
		return true
	}
	return false
}

// Card carries the card sub-form. All four fields must be non-empty;
// no Luhn or expiry validation beyond that.
type Card struct {
	Number string
	Expiry string
	CVV    string
	Holder string
}

func (c Card) complete() bool {
	return strings.TrimSpace(c.Number) != "" &&
		strings.TrimSpace(c.Expiry) != "" &&
		strings.TrimSpace(c.CVV) != "" &&
		strings.TrimSpace(c.Holder) != ""
}

var (
	ErrBadState       = errors.New("checkout: operation not valid in current state")
	ErrInvalidMethod  = errors.New("checkout: unknown payment method")
	ErrCardIncomplete = errors.New("checkout: all card fields are required")
)

// Intent is what a single attempt pays for. Built fresh per attempt
// and never persisted locally.
type Intent struct {
	PatientID      uuid.UUID
	DoctorID       *uuid.UUID
	AppointmentID  *uuid.UUID
	Type           string
	Amount         float64
	Description    string
	Items          []client.OrderItem
	PatientName    string
	PatientAddress string
	PatientPhone   string
}

// ConsultationIntent pays a doctor's fee for an appointment.
func ConsultationIntent(patientID, doctorID, appointmentID uuid.UUID, fee float64) Intent {
	return Intent{
		PatientID:     patientID,
		DoctorID:      &doctorID,
		AppointmentID: &appointmentID,
		Type:          "CONSULTATION",
		Amount:        fee,
	}
}

// MedicineIntent snapshots the cart into a medicine purchase. The
// amount is the cart total at snapshot time.
func MedicineIntent(c *cart.Manager, patientID uuid.UUID, name, address, phone string) Intent {
	_, amount := c.Totals()
	return Intent{
		PatientID:      patientID,
		Type:           "MEDICINE",
		Amount:         amount,
		Items:          c.Items(),
		PatientName:    name,
		PatientAddress: address,
		PatientPhone:   phone,
	}
}

// API is the payment surface of the backend client.
type API interface {
	CreatePaymentOrder(ctx context.Context, req client.CreatePaymentOrderRequest) (*client.PaymentOrder, error)
	VerifyPayment(ctx context.Context, req client.VerifyPaymentRequest) (*client.Payment, error)
}

// Collector stands in for the payment provider SDK: handed the minted
// gateway order, it returns the provider's payment id and checkout
// signature.
type Collector interface {
	Collect(ctx context.Context, order *client.PaymentOrder, method Method) (paymentID, signature string, err error)
}

// Orchestrator runs checkout attempts. Not safe for concurrent use.
type Orchestrator struct {
	api  API
	gw   Collector
	cart *cart.Manager // nil for consultation payments

	state  State
	method Method
	card   Card
	result *client.Payment
	err    error
}

// New builds an orchestrator. cart may be nil when the flow pays a
// consultation fee rather than a medicine order.
func New(api API, gw Collector, c *cart.Manager) *Orchestrator {
	return &Orchestrator{api: api, gw: gw, cart: c, state: StateIdle}
}

func (o *Orchestrator) State() State            { return o.state }
func (o *Orchestrator) Result() *client.Payment { return o.result }
func (o *Orchestrator) Err() error              { return o.err }

// SelectMethod picks the payment method. Card opens the card sub-form;
// every other method goes straight to ready. Allowed from idle, from a
// failed attempt (retry), and while still choosing.
func (o *Orchestrator) SelectMethod(m Method) error {
	switch o.state {
	case StateIdle, StateFailed, StateMethodSelected, StateCardForm:
	default:
		return ErrBadState
	}
	if !validMethod(m) {
		return ErrInvalidMethod
	}
	o.method = m
	if m == MethodCard {
		o.state = StateCardForm
	} else {
		o.state = StateMethodSelected
	}
	return nil
}

// EnterCard completes the card sub-form.
func (o *Orchestrator) EnterCard(c Card) error {
	if o.state != StateCardForm {
		return ErrBadState
	}
	if !c.complete() {
		return ErrCardIncomplete
	}
	o.card = c
	o.state = StateMethodSelected
	return nil
}

// Pay runs one attempt: create the gateway order, collect, verify.
// A fresh idempotency key is minted per attempt so a retried create
// after a transient failure cannot double-charge. The cart is cleared
// only after verification succeeds; any failure leaves it untouched.
func (o *Orchestrator) Pay(ctx context.Context, intent Intent) (*client.Payment, error) {
	if o.state != StateMethodSelected {
		return nil, ErrBadState
	}

	o.state = StateSubmitting
	req := client.CreatePaymentOrderRequest{
		IdempotencyKey: uuid.NewString(),
		PatientID:      intent.PatientID,
		DoctorID:       intent.DoctorID,
		AppointmentID:  intent.AppointmentID,
		Type:           intent.Type,
		Method:         string(o.method),
		Amount:         intent.Amount,
		Items:          intent.Items,
		PatientName:    intent.PatientName,
		PatientAddress: intent.PatientAddress,
		PatientPhone:   intent.PatientPhone,
	}
	order, err := o.api.CreatePaymentOrder(ctx, req)
	if err != nil {
		return nil, o.fail(fmt.Errorf("create payment order: %w", err))
	}

	paymentID, signature, err := o.gw.Collect(ctx, order, o.method)
	if err != nil {
		return nil, o.fail(fmt.Errorf("collect payment: %w", err))
	}

	o.state = StateVerifying
	p, err := o.api.VerifyPayment(ctx, client.VerifyPaymentRequest{
		PaymentID:        order.PaymentID,
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: paymentID,
		Signature:        signature,
	})
	if err != nil {
		return nil, o.fail(fmt.Errorf("verify payment: %w", err))
	}
	if p.Status != "SUCCESS" {
		return nil, o.fail(fmt.Errorf("payment finished %s", p.Status))
	}

	if o.cart != nil && intent.Type == "MEDICINE" {
		if err := o.cart.Clear(); err != nil {
			return nil, o.fail(fmt.Errorf("clear cart: %w", err))
		}
	}
	o.state = StateSucceeded
	o.result = p
	o.err = nil
	return p, nil
}

func (o *Orchestrator) fail(err error) error {
	o.state = StateFailed
	o.err = err
	return err
}
