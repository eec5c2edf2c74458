package session

import (
	"os"
	"path/filepath"
	"testing"
)

type profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSaveLoadClear(t *testing.T) {
	s := newStore(t)

	if _, _, ok := s.Load(); ok {
		t.Fatal("expected no session before save")
	}

	p := profile{Name: "Asha", Email: "asha@example.com"}
	if err := s.Save(p, "patient", "tok-123"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got profile
	ok, err := s.LoadUser(&got)
	if err != nil || !ok {
		t.Fatalf("LoadUser: ok=%v err=%v", ok, err)
	}
	if got != p {
		t.Fatalf("loaded %+v, want %+v", got, p)
	}
	if _, role, _ := s.Load(); role != "patient" {
		t.Fatalf("role = %q, want patient", role)
	}
	if s.Token() != "tok-123" {
		t.Fatalf("token = %q", s.Token())
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, _, ok := s.Load(); ok {
		t.Fatal("session survived Clear")
	}
	if s.Token() != "" {
		t.Fatal("token survived Clear")
	}
}

func TestCorruptFileIsNoSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)

	if _, _, ok := s.Load(); ok {
		t.Fatal("corrupt file should read as logged out")
	}

	// A save over the corrupt file must succeed and round-trip.
	if err := s.Save(profile{Name: "x"}, "doctor", "t"); err != nil {
		t.Fatalf("Save over corrupt file: %v", err)
	}
	if _, role, ok := s.Load(); !ok || role != "doctor" {
		t.Fatalf("after resave: ok=%v role=%q", ok, role)
	}
}

func TestCartBlobSurvivesSessionSave(t *testing.T) {
	s := newStore(t)

	cart := []map[string]interface{}{{"name": "Paracetamol", "quantity": float64(2)}}
	if err := s.SaveCart(cart); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}
	if err := s.Save(profile{Name: "Asha"}, "patient", "tok"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var got []map[string]interface{}
	if ok := s.LoadCart(&got); !ok {
		t.Fatal("cart lost after session save")
	}
	if len(got) != 1 || got[0]["name"] != "Paracetamol" {
		t.Fatalf("cart = %v", got)
	}

	if err := s.ClearCart(); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	if ok := s.LoadCart(&got); ok {
		t.Fatal("cart survived ClearCart")
	}
	// Identity stays after clearing only the cart.
	if _, _, ok := s.Load(); !ok {
		t.Fatal("session lost with the cart")
	}
}
