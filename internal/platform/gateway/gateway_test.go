package gateway

import (
	"strings"
	"testing"
)

func TestCreateOrder(t *testing.T) {
	g := New("key_id", "key_secret")
	order := g.CreateOrder(90, "INR", "receipt_abc")

	if !strings.HasPrefix(order.ID, "order_") {
		t.Errorf("expected order_ prefix, got %s", order.ID)
	}
	if order.Amount != 9000 {
		t.Errorf("expected 9000 paise for 90 INR, got %d", order.Amount)
	}
	if order.Status != "created" {
		t.Errorf("expected status created, got %s", order.Status)
	}
}

func TestVerifySignature(t *testing.T) {
	g := New("key_id", "key_secret")
	sig := g.Sign("order_1", "pay_1")

	if !g.VerifySignature("order_1", "pay_1", sig) {
		t.Error("expected signature to verify")
	}
	if g.VerifySignature("order_1", "pay_2", sig) {
		t.Error("expected signature for different payment to fail")
	}
	if g.VerifySignature("order_1", "pay_1", sig+"00") {
		t.Error("expected tampered signature to fail")
	}
}

func TestVerifySignature_DifferentSecrets(t *testing.T) {
	sig := New("k", "secret-a").Sign("order_1", "pay_1")
	if New("k", "secret-b").VerifySignature("order_1", "pay_1", sig) {
		t.Error("signature from another secret must not verify")
	}
}
