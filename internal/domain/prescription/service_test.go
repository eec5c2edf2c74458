package prescription

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	byID map[uuid.UUID]*Prescription
}

func newMockRepo() *mockRepo {
	return &mockRepo{byID: map[uuid.UUID]*Prescription{}}
}

func (m *mockRepo) Create(_ context.Context, p *Prescription) error {
	p.ID = uuid.New()
	m.byID[p.ID] = p
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Prescription, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return p, nil
}

func (m *mockRepo) Update(_ context.Context, p *Prescription) error {
	m.byID[p.ID] = p
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.byID, id)
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	var out []*Prescription
	for _, p := range m.byID {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID) ([]*Prescription, error) {
	var out []*Prescription
	for _, p := range m.byID {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []struct {
		name string
		p    Prescription
	}{
		{"missing doctor", Prescription{PatientID: uuid.New(), Diagnosis: "flu", Medicines: "rest"}},
		{"missing diagnosis", Prescription{DoctorID: uuid.New(), PatientID: uuid.New(), Medicines: "rest"}},
		{"missing medicines", Prescription{DoctorID: uuid.New(), PatientID: uuid.New(), Diagnosis: "flu"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.p
			if err := svc.Create(context.Background(), &p); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	ok := Prescription{
		DoctorID:  uuid.New(),
		PatientID: uuid.New(),
		Diagnosis: "viral fever",
		Medicines: "Paracetamol 500mg twice daily",
	}
	if err := svc.Create(context.Background(), &ok); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if ok.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestUpdateMissing(t *testing.T) {
	svc := NewService(newMockRepo())
	p := Prescription{ID: uuid.New(), Diagnosis: "x", Medicines: "y"}
	if err := svc.Update(context.Background(), &p); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
