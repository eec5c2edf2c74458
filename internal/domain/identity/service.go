package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthconnect/healthconnect/internal/platform/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountDisabled    = errors.New("account is disabled")
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// TokenIssuer abstracts auth.Issuer for tests.
type TokenIssuer interface {
	Issue(subject, role string) (string, error)
}

type Service struct {
	doctors  DoctorRepository
	patients PatientRepository
	admins   AdminRepository
	tokens   TokenIssuer
}

func NewService(doctors DoctorRepository, patients PatientRepository, admins AdminRepository, tokens TokenIssuer) *Service {
	return &Service{doctors: doctors, patients: patients, admins: admins, tokens: tokens}
}

func validateSignup(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// -- Doctors --

func (s *Service) RegisterDoctor(ctx context.Context, req RegisterDoctorRequest) (*Doctor, error) {
	if err := validateSignup(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}
	if req.ConsultationFee < 0 {
		return nil, fmt.Errorf("consultation fee must not be negative")
	}
	if existing, err := s.doctors.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	d := &Doctor{
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:    hash,
		Specialization:  req.Specialization,
		Phone:           req.Phone,
		Experience:      req.Experience,
		Qualification:   req.Qualification,
		ConsultationFee: req.ConsultationFee,
	}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create doctor: %w", err)
	}
	return d, nil
}

func (s *Service) LoginDoctor(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	d, err := s.doctors.GetByEmail(ctx, creds.Email)
	if err != nil || !checkPassword(d.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(d.ID.String(), auth.RoleDoctor)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, Role: auth.RoleDoctor, User: d}, nil
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.ConsultationFee < 0 {
		return fmt.Errorf("consultation fee must not be negative")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

// -- Patients --

func (s *Service) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*Patient, error) {
	if err := validateSignup(req.Name, req.Email, req.Password); err != nil {
		return nil, err
	}
	if existing, err := s.patients.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	p := &Patient{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   hash,
		Phone:          req.Phone,
		Age:            req.Age,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

func (s *Service) LoginPatient(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	p, err := s.patients.GetByEmail(ctx, creds.Email)
	if err != nil || !checkPassword(p.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(p.ID.String(), auth.RolePatient)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, Role: auth.RolePatient, User: p}, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	return s.patients.Update(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

// -- Admins --

func (s *Service) LoginAdmin(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	a, err := s.admins.GetByEmail(ctx, creds.Email)
	if err != nil || !checkPassword(a.PasswordHash, creds.Password) {
		return nil, ErrInvalidCredentials
	}
	if !a.Active {
		return nil, ErrAccountDisabled
	}
	token, err := s.tokens.Issue(a.ID.String(), auth.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResponse{Token: token, Role: auth.RoleAdmin, User: a}, nil
}
