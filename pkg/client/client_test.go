package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestBearerInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"total":0,"limit":100,"offset":0}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, Token: func() string { return "tok-1" }})
	if _, err := c.Doctors(context.Background()); err != nil {
		t.Fatalf("Doctors: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q", gotAuth)
	}

	c = New(Config{BaseURL: srv.URL, Token: func() string { return "" }})
	if _, err := c.Doctors(context.Background()); err != nil {
		t.Fatalf("Doctors: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("unauthenticated request carried Authorization %q", gotAuth)
	}
}

func TestUnauthorizedHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	fired := 0
	c.OnUnauthorized = func() { fired++ }

	_, err := c.Patient(context.Background(), uuid.New())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "token expired" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if fired != 1 {
		t.Fatalf("OnUnauthorized fired %d times", fired)
	}
}

func TestDecodeErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 12`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Order(context.Background(), uuid.New())
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("err = %v, want *DecodeError", err)
	}
}

func TestCreatePaymentOrderSendsIdempotencyKey(t *testing.T) {
	var gotHeader, gotBodyKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Idempotency-Key")
		var req CreatePaymentOrderRequest
		if err := jsonDecode(r, &req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotBodyKey = req.IdempotencyKey
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payment_id":"` + uuid.NewString() + `","gateway_order_id":"order_1","amount_paise":9000,"currency":"INR","key_id":"key"}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	req := CreatePaymentOrderRequest{
		IdempotencyKey: "attempt-1",
		PatientID:      uuid.New(),
		Type:           "MEDICINE",
		Method:         "UPI",
		Amount:         90,
	}
	out, err := c.CreatePaymentOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("CreatePaymentOrder: %v", err)
	}
	if gotHeader != "attempt-1" || gotBodyKey != "attempt-1" {
		t.Fatalf("idempotency key: header=%q body=%q", gotHeader, gotBodyKey)
	}
	if out.AmountPaise != 9000 || out.GatewayOrderID != "order_1" {
		t.Fatalf("order = %+v", out)
	}
}

func TestNoRetryOnServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if _, err := c.Medicines(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("server hit %d times, want 1", calls)
	}
}

func jsonDecode(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
