package orders

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

const (
	PaymentMethodCOD    = "cod"
	PaymentMethodOnline = "online"
)

// PaymentGateway creates payment orders with the provider and checks the
// signatures it sends back. A nil gateway means cash-on-delivery only.
type PaymentGateway interface {
	CreatePaymentOrder(amount float64, receipt string) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

type razorpayGateway struct {
	client *razorpay.Client
	secret string
}

func NewRazorpayGateway(keyID, keySecret string) PaymentGateway {
	return &razorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

func (g *razorpayGateway) CreatePaymentOrder(amount float64, receipt string) (string, error) {
	// Razorpay wants the smallest currency unit.
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": "INR",
		"receipt":  receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create payment order: %w", err)
	}

	id, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("payment order response missing id")
	}
	return id, nil
}

func (g *razorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	h := hmac.New(sha256.New, []byte(g.secret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
