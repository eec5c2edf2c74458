package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/healthconnect/healthconnect/pkg/client"
)

func TestSimulatorSignsOrder(t *testing.T) {
	s := NewSimulator("secret_test", 0)
	order := &client.PaymentOrder{GatewayOrderID: "order_42"}

	paymentID, signature, err := s.Collect(context.Background(), order, MethodUPI)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(paymentID, "pay_") {
		t.Fatalf("paymentID = %q", paymentID)
	}

	mac := hmac.New(sha256.New, []byte("secret_test"))
	mac.Write([]byte("order_42|" + paymentID))
	if want := hex.EncodeToString(mac.Sum(nil)); signature != want {
		t.Fatalf("signature = %q, want %q", signature, want)
	}
}

func TestSimulatorHonorsCancellation(t *testing.T) {
	s := NewSimulator("secret", time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := s.Collect(ctx, &client.PaymentOrder{}, MethodUPI); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
