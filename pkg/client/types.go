package client

import (
	"time"

	"github.com/google/uuid"
)

// Typed records mirroring the backend's wire shapes, one per entity.

type Doctor struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Specialization  string    `json:"specialization"`
	Phone           string    `json:"phone"`
	Experience      string    `json:"experience,omitempty"`
	Qualification   string    `json:"qualification,omitempty"`
	ConsultationFee float64   `json:"consultation_fee"`
}

type Patient struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Age            string    `json:"age,omitempty"`
	Address        string    `json:"address,omitempty"`
	MedicalHistory string    `json:"medical_history,omitempty"`
}

type Medicine struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
}

type Appointment struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Symptoms    string    `json:"symptoms,omitempty"`
}

type BookAppointmentRequest struct {
	PatientID   uuid.UUID `json:"patient_id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientName string    `json:"patient_name"`
	DoctorName  string    `json:"doctor_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Symptoms    string    `json:"symptoms"`
}

type OrderItem struct {
	MedicineID   uuid.UUID `json:"medicine_id"`
	MedicineName string    `json:"medicine_name"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
}

type Order struct {
	ID             uuid.UUID   `json:"id"`
	PatientID      uuid.UUID   `json:"patient_id"`
	PatientName    string      `json:"patient_name"`
	PatientAddress string      `json:"patient_address"`
	PatientPhone   string      `json:"patient_phone"`
	Items          []OrderItem `json:"items"`
	TotalAmount    float64     `json:"total_amount"`
	Status         string      `json:"status"`
	OrderDate      time.Time   `json:"order_date"`
	DeliveryDate   *time.Time  `json:"delivery_date,omitempty"`
}

type CreateOrderRequest struct {
	PatientID      uuid.UUID   `json:"patient_id"`
	PatientName    string      `json:"patient_name"`
	PatientAddress string      `json:"patient_address"`
	PatientPhone   string      `json:"patient_phone"`
	Items          []OrderItem `json:"items"`
	TotalAmount    float64     `json:"total_amount"`
}

type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	SenderName string    `json:"sender_name"`
	SenderType string    `json:"sender_type"`
	Body       string    `json:"body"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	SenderName string    `json:"sender_name"`
	SenderType string    `json:"sender_type"`
	Body       string    `json:"body"`
}

type Prescription struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	DoctorName    string    `json:"doctor_name"`
	PatientName   string    `json:"patient_name"`
	Diagnosis     string    `json:"diagnosis"`
	Medicines     string    `json:"medicines"`
	Instructions  string    `json:"instructions,omitempty"`
	IssuedAt      time.Time `json:"issued_at"`
}

type CreatePaymentOrderRequest struct {
	IdempotencyKey string      `json:"idempotency_key"`
	PatientID      uuid.UUID   `json:"patient_id"`
	DoctorID       *uuid.UUID  `json:"doctor_id,omitempty"`
	AppointmentID  *uuid.UUID  `json:"appointment_id,omitempty"`
	Type           string      `json:"type"`
	Method         string      `json:"method"`
	Amount         float64     `json:"amount"`
	Items          []OrderItem `json:"items,omitempty"`
	PatientName    string      `json:"patient_name,omitempty"`
	PatientAddress string      `json:"patient_address,omitempty"`
	PatientPhone   string      `json:"patient_phone,omitempty"`
}

// PaymentOrder is the gateway order minted for one payment attempt.
type PaymentOrder struct {
	PaymentID      uuid.UUID `json:"payment_id"`
	GatewayOrderID string    `json:"gateway_order_id"`
	AmountPaise    int64     `json:"amount_paise"`
	Currency       string    `json:"currency"`
	KeyID          string    `json:"key_id"`
}

type VerifyPaymentRequest struct {
	PaymentID        uuid.UUID `json:"payment_id"`
	GatewayOrderID   string    `json:"gateway_order_id"`
	GatewayPaymentID string    `json:"gateway_payment_id"`
	Signature        string    `json:"signature"`
}

type Payment struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	DoctorID       *uuid.UUID `json:"doctor_id,omitempty"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	Type           string     `json:"type"`
	Method         string     `json:"method"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	GatewayOrderID string     `json:"gateway_order_id"`
	Status         string     `json:"status"`
	InvoiceNumber  string     `json:"invoice_number,omitempty"`
	OrderID        *uuid.UUID `json:"order_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Invoice struct {
	InvoiceNumber string      `json:"invoice_number"`
	PaymentID     uuid.UUID   `json:"payment_id"`
	PatientID     uuid.UUID   `json:"patient_id"`
	Type          string      `json:"type"`
	Method        string      `json:"method"`
	Amount        float64     `json:"amount"`
	Currency      string      `json:"currency"`
	Items         []OrderItem `json:"items,omitempty"`
	IssuedAt      time.Time   `json:"issued_at"`
}

type Wallet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	OwnerType string    `json:"owner_type"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
}

type WalletTransaction struct {
	ID          uuid.UUID `json:"id"`
	WalletID    uuid.UUID `json:"wallet_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Reference   string    `json:"reference,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type WalletView struct {
	Wallet
	Transactions []WalletTransaction `json:"transactions"`
}

type Earnings struct {
	OwnerID        string  `json:"owner_id"`
	OwnerType      string  `json:"owner_type"`
	TotalEarnings  float64 `json:"total_earnings"`
	TotalWithdrawn float64 `json:"total_withdrawn"`
	Balance        float64 `json:"balance"`
}

type ChatReply struct {
	Reply          string `json:"reply"`
	Specialization string `json:"specialization,omitempty"`
	SuggestedName  string `json:"suggested_doctor,omitempty"`
	Source         string `json:"source"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterDoctorRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Specialization  string  `json:"specialization"`
	Phone           string  `json:"phone"`
	Experience      string  `json:"experience"`
	Qualification   string  `json:"qualification"`
	ConsultationFee float64 `json:"consultation_fee"`
}

type RegisterPatientRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Age            string `json:"age"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

// DoctorAuth and PatientAuth are the login/register responses: the
// profile plus the bearer token for subsequent calls.
type DoctorAuth struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  Doctor `json:"user"`
}

type PatientAuth struct {
	Token string  `json:"token"`
	Role  string  `json:"role"`
	User  Patient `json:"user"`
}
