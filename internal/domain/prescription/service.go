package prescription

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("prescription not found")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Prescription) error {
	if p.DoctorID == uuid.Nil || p.PatientID == uuid.Nil {
		return fmt.Errorf("doctor_id and patient_id are required")
	}
	if strings.TrimSpace(p.Diagnosis) == "" {
		return fmt.Errorf("diagnosis is required")
	}
	if strings.TrimSpace(p.Medicines) == "" {
		return fmt.Errorf("medicines are required")
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("create prescription: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, p *Prescription) error {
	if _, err := s.repo.GetByID(ctx, p.ID); err != nil {
		return ErrNotFound
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]*Prescription, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}
