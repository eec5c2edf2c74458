package checkout

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/healthconnect/healthconnect/pkg/client"
)

// Simulator is the demo-grade Collector: no real provider is
// integrated, so it waits a fixed delay, mints a payment id and signs
// the order itself with the shared key secret, exactly as the sandbox
// gateway expects.
type Simulator struct {
	KeySecret string
	Delay     time.Duration

	now func() time.Time
}

func NewSimulator(keySecret string, delay time.Duration) *Simulator {
	return &Simulator{KeySecret: keySecret, Delay: delay, now: time.Now}
}

func (s *Simulator) Collect(ctx context.Context, order *client.PaymentOrder, _ Method) (string, string, error) {
	if s.Delay > 0 {
		select {
		case <-time.After(s.Delay):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	clock := s.now
	if clock == nil {
		clock = time.Now
	}
	paymentID := fmt.Sprintf("pay_%d", clock().UnixMilli())

	mac := hmac.New(sha256.New, []byte(s.KeySecret))
	mac.Write([]byte(order.GatewayOrderID + "|" + paymentID))
	return paymentID, hex.EncodeToString(mac.Sum(nil)), nil
}
