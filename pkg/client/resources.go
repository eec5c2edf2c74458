package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Paginated list endpoints wrap their payload in a data envelope. The
// catalog is demo-scale, so list call sites ask for the server's
// maximum page instead of walking pages.
type page struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

const maxPage = "?limit=100"

// Identity.

func (c *Client) LoginDoctor(ctx context.Context, creds Credentials) (*DoctorAuth, error) {
	var out DoctorAuth
	if err := c.do(ctx, http.MethodPost, "/api/doctors/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*Doctor, error) {
	var out Doctor
	if err := c.do(ctx, http.MethodPost, "/api/doctors/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Doctors(ctx context.Context) ([]Doctor, error) {
	var out struct {
		page
		Data []Doctor `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/doctors"+maxPage, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Doctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	var out Doctor
	if err := c.do(ctx, http.MethodGet, "/api/doctors/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LoginPatient(ctx context.Context, creds Credentials) (*PatientAuth, error) {
	var out PatientAuth
	if err := c.do(ctx, http.MethodPost, "/api/patients/login", nil, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodPost, "/api/patients/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Patient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	var out Patient
	if err := c.do(ctx, http.MethodGet, "/api/patients/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Scheduling.

func (c *Client) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AppointmentsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Appointment, error) {
	var out []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/doctor/"+doctorID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AppointmentsByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	var out []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/patient/"+patientID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CancelAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPut, "/api/appointments/"+id.String()+"/cancel", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Catalog.

func (c *Client) Medicines(ctx context.Context) ([]Medicine, error) {
	var out struct {
		page
		Data []Medicine `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/medicines"+maxPage, nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) SearchMedicines(ctx context.Context, query string) ([]Medicine, error) {
	var out []Medicine
	path := "/api/medicines/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders.

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Order(ctx context.Context, id uuid.UUID) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) OrdersByPatient(ctx context.Context, patientID uuid.UUID) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/patient/"+patientID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}
	var out Order
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+id.String()+"/status", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Messages.

func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Conversation(ctx context.Context, a, b uuid.UUID) ([]Message, error) {
	var out []Message
	path := "/api/messages/conversation/" + a.String() + "/" + b.String()
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/api/messages/"+id.String()+"/read", nil, nil, nil)
}

// Prescriptions.

func (c *Client) PrescriptionsByPatient(ctx context.Context, patientID uuid.UUID) ([]Prescription, error) {
	var out []Prescription
	if err := c.do(ctx, http.MethodGet, "/api/prescriptions/patient/"+patientID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PrescriptionsByDoctor(ctx context.Context, doctorID uuid.UUID) ([]Prescription, error) {
	var out []Prescription
	if err := c.do(ctx, http.MethodGet, "/api/prescriptions/doctor/"+doctorID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Payments. The idempotency key travels both in the body and the
// Idempotency-Key header; the server honors either.

func (c *Client) CreatePaymentOrder(ctx context.Context, req CreatePaymentOrderRequest) (*PaymentOrder, error) {
	headers := map[string]string{"Idempotency-Key": req.IdempotencyKey}
	var out PaymentOrder
	if err := c.do(ctx, http.MethodPost, "/api/payments/create-order", headers, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*Payment, error) {
	var out Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments/verify", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PaymentsByPatient(ctx context.Context, patientID uuid.UUID) ([]Payment, error) {
	var out []Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments/patient/"+patientID.String(), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PaymentInvoice(ctx context.Context, paymentID uuid.UUID) (*Invoice, error) {
	var out Invoice
	if err := c.do(ctx, http.MethodGet, "/api/payments/"+paymentID.String()+"/invoice", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Wallets.

func (c *Client) Wallet(ctx context.Context, ownerType, ownerID string) (*WalletView, error) {
	var out WalletView
	path := "/api/wallets/" + url.PathEscape(ownerType) + "/" + url.PathEscape(ownerID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Earnings(ctx context.Context, ownerType, ownerID string) (*Earnings, error) {
	var out Earnings
	path := "/api/wallets/" + url.PathEscape(ownerType) + "/" + url.PathEscape(ownerID) + "/earnings"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Withdraw(ctx context.Context, ownerType, ownerID string, amount float64) (*Wallet, error) {
	body := struct {
		Amount float64 `json:"amount"`
	}{Amount: amount}
	var out Wallet
	path := "/api/wallets/" + url.PathEscape(ownerType) + "/" + url.PathEscape(ownerID) + "/withdraw"
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chatbot.

func (c *Client) ChatbotQuery(ctx context.Context, message string) (*ChatReply, error) {
	body := struct {
		Message string `json:"message"`
	}{Message: message}
	var out ChatReply
	if err := c.do(ctx, http.MethodPost, "/api/chatbot/query", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
