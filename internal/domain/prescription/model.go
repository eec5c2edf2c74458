package prescription

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID            uuid.UUID `db:"id" json:"id"`
	AppointmentID uuid.UUID `db:"appointment_id" json:"appointment_id"`
	DoctorID      uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID     uuid.UUID `db:"patient_id" json:"patient_id"`
	DoctorName    string    `db:"doctor_name" json:"doctor_name"`
	PatientName   string    `db:"patient_name" json:"patient_name"`
	Diagnosis     string    `db:"diagnosis" json:"diagnosis"`
	Medicines     string    `db:"medicines" json:"medicines"`
	Instructions  string    `db:"instructions" json:"instructions,omitempty"`
	IssuedAt      time.Time `db:"issued_at" json:"issued_at"`
}
