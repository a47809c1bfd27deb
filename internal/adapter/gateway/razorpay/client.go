// Package razorpay opens payment orders with Razorpay.
package razorpay

import (
	"context"
	"errors"
	"fmt"

	razorpaysdk "github.com/razorpay/razorpay-go"

	"github.com/iho/gosplit/internal/usecase"
)

// ErrMissingOrderID is returned when the gateway answers without an id.
var ErrMissingOrderID = errors.New("razorpay: order response has no id")

// orderCreator is the part of the SDK order resource used here.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client implements usecase.PaymentGateway.
type Client struct {
	orders orderCreator
}

// New creates a Client authenticated with a key id and secret.
func New(keyID, keySecret string) (*Client, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay: key id and secret are required")
	}

	sdk := razorpaysdk.NewClient(keyID, keySecret)

	return &Client{orders: sdk.Order}, nil
}

type createResult struct {
	body map[string]interface{}
	err  error
}

// CreateOrder opens an order and returns its id. The SDK call is not
// context-aware, so it runs in its own goroutine and is abandoned when ctx
// expires.
func (c *Client) CreateOrder(ctx context.Context, order usecase.PaymentOrder) (string, error) {
	data := map[string]interface{}{
		"amount":          order.AmountMinor,
		"currency":        order.Currency,
		"receipt":         order.Receipt,
		"payment_capture": captureFlag(order.Capture),
	}
	if len(order.Notes) > 0 {
		notes := make(map[string]interface{}, len(order.Notes))
		for k, v := range order.Notes {
			notes[k] = v
		}
		data["notes"] = notes
	}

	done := make(chan createResult, 1)
	go func() {
		body, err := c.orders.Create(data, nil)
		done <- createResult{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("razorpay: create order: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return "", fmt.Errorf("razorpay: create order: %w", res.err)
		}
		id, _ := res.body["id"].(string)
		if id == "" {
			return "", ErrMissingOrderID
		}
		return id, nil
	}
}

func captureFlag(capture bool) int {
	if capture {
		return 1
	}
	return 0
}
