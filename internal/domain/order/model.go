package order

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Forward flow PENDING -> PROCESSING -> SHIPPED -> DELIVERED;
// CANCELLED only from PENDING.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

type Item struct {
	MedicineID   uuid.UUID `db:"medicine_id" json:"medicine_id"`
	MedicineName string    `db:"medicine_name" json:"medicine_name"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Price        float64   `db:"price" json:"price"`
}

type Order struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	PatientID      uuid.UUID  `db:"patient_id" json:"patient_id"`
	PatientName    string     `db:"patient_name" json:"patient_name"`
	PatientAddress string     `db:"patient_address" json:"patient_address"`
	PatientPhone   string     `db:"patient_phone" json:"patient_phone"`
	Items          []Item     `json:"items"`
	TotalAmount    float64    `db:"total_amount" json:"total_amount"`
	Status         string     `db:"status" json:"status"`
	OrderDate      time.Time  `db:"order_date" json:"order_date"`
	DeliveryDate   *time.Time `db:"delivery_date" json:"delivery_date,omitempty"`
}

type CreateRequest struct {
	PatientID      uuid.UUID `json:"patient_id"`
	PatientName    string    `json:"patient_name"`
	PatientAddress string    `json:"patient_address"`
	PatientPhone   string    `json:"patient_phone"`
	Items          []Item    `json:"items"`
	TotalAmount    float64   `json:"total_amount"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}
