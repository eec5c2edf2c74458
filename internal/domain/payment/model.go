package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/healthconnect/healthconnect/internal/domain/order"
)

// Payment statuses.
const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Payment types.
const (
	TypeConsultation = "CONSULTATION"
	TypeMedicine     = "MEDICINE"
)

// Accepted payment methods.
var Methods = []string{"UPI", "CARD", "NETBANKING", "WALLET"}

// Revenue split percentages. Consultations pay the doctor, medicine
// orders pay the pharmacy; the remainder is the platform fee.
const (
	ConsultationProviderShare = 0.80
	MedicineProviderShare     = 0.90
)

// DefaultPharmacyID receives the provider share of medicine payments.
const DefaultPharmacyID = "pharmacy_001"

type Payment struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	IdempotencyKey   string       `db:"idempotency_key" json:"-"`
	PatientID        uuid.UUID    `db:"patient_id" json:"patient_id"`
	DoctorID         *uuid.UUID   `db:"doctor_id" json:"doctor_id,omitempty"`
	AppointmentID    *uuid.UUID   `db:"appointment_id" json:"appointment_id,omitempty"`
	Type             string       `db:"type" json:"type"`
	Method           string       `db:"method" json:"method"`
	Amount           float64      `db:"amount" json:"amount"`
	Currency         string       `db:"currency" json:"currency"`
	GatewayOrderID   string       `db:"gateway_order_id" json:"gateway_order_id"`
	GatewayPaymentID string       `db:"gateway_payment_id" json:"gateway_payment_id,omitempty"`
	Status           string       `db:"status" json:"status"`
	ProviderShare    float64      `db:"provider_share" json:"provider_share"`
	PlatformShare    float64      `db:"platform_share" json:"platform_share"`
	InvoiceNumber    string       `db:"invoice_number" json:"invoice_number,omitempty"`
	OrderID          *uuid.UUID   `db:"order_id" json:"order_id,omitempty"`
	PatientName      string       `db:"patient_name" json:"patient_name,omitempty"`
	PatientAddress   string       `db:"patient_address" json:"patient_address,omitempty"`
	PatientPhone     string       `db:"patient_phone" json:"patient_phone,omitempty"`
	Items            []order.Item `json:"items,omitempty"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`
}

// CreateOrderRequest opens a payment attempt. The idempotency key makes
// retried submissions return the already-minted gateway order instead of
// a second charge.
type CreateOrderRequest struct {
	IdempotencyKey string       `json:"idempotency_key"`
	PatientID      uuid.UUID    `json:"patient_id"`
	DoctorID       *uuid.UUID   `json:"doctor_id,omitempty"`
	AppointmentID  *uuid.UUID   `json:"appointment_id,omitempty"`
	Type           string       `json:"type"`
	Method         string       `json:"method"`
	Amount         float64      `json:"amount"`
	Items          []order.Item `json:"items,omitempty"`
	PatientName    string       `json:"patient_name,omitempty"`
	PatientAddress string       `json:"patient_address,omitempty"`
	PatientPhone   string       `json:"patient_phone,omitempty"`
}

type CreateOrderResponse struct {
	PaymentID      uuid.UUID `json:"payment_id"`
	GatewayOrderID string    `json:"gateway_order_id"`
	AmountPaise    int64     `json:"amount_paise"`
	Currency       string    `json:"currency"`
	KeyID          string    `json:"key_id"`
}

type VerifyRequest struct {
	PaymentID        uuid.UUID `json:"payment_id"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	Signature        string    `json:"signature"`
}

// Invoice is the printable record of a successful payment.
type Invoice struct {
	InvoiceNumber string       `json:"invoice_number"`
	PaymentID     uuid.UUID    `json:"payment_id"`
	PatientID     uuid.UUID    `json:"patient_id"`
	Type          string       `json:"type"`
	Method        string       `json:"method"`
	Amount        float64      `json:"amount"`
	Currency      string       `json:"currency"`
	Items         []order.Item `json:"items,omitempty"`
	IssuedAt      time.Time    `json:"issued_at"`
}

// Stats aggregates payments for the admin dashboard.
type Stats struct {
	TotalPayments     int     `json:"total_payments"`
	SuccessCount      int     `json:"success_count"`
	FailedCount       int     `json:"failed_count"`
	PendingCount      int     `json:"pending_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	ConsultationTotal float64 `json:"consultation_total"`
	MedicineTotal     float64 `json:"medicine_total"`
	PlatformEarnings  float64 `json:"platform_earnings"`
}

func validMethod(method string) bool {
	for _, m := range Methods {
		if m == method {
			return true
		}
	}
	return false
}
