package identity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a registered practitioner offering consultations.
type Doctor struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Email           string    `db:"email" json:"email"`
	PasswordHash    string    `db:"password_hash" json:"-"`
	Specialization  string    `db:"specialization" json:"specialization"`
	Phone           string    `db:"phone" json:"phone"`
	Experience      string    `db:"experience" json:"experience,omitempty"`
	Qualification   string    `db:"qualification" json:"qualification,omitempty"`
	ConsultationFee float64   `db:"consultation_fee" json:"consultation_fee"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Patient is a registered care seeker.
type Patient struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	Phone          string    `db:"phone" json:"phone"`
	Age            string    `db:"age" json:"age,omitempty"`
	Address        string    `db:"address" json:"address,omitempty"`
	MedicalHistory string    `db:"medical_history" json:"medical_history,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Admin is a back-office operator.
type Admin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Credentials is a login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterDoctorRequest carries the fields a doctor signs up with.
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

// RegisterPatientRequest carries the fields a patient signs up with.
type RegisterPatientRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Age            string `json:"age"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

// AuthResponse is returned by every login endpoint: the profile plus a
// bearer token for subsequent calls.
type AuthResponse struct {
	Token string      `json:"token"`
	Role  string      `json:"role"`
	User  interface{} `json:"user"`
}
