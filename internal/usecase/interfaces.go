package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gosplit/internal/domain"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// GroupStore holds the groups of one session.
// Returned groups are snapshots; changing them does not change the store.
type GroupStore interface {
	Create(ctx context.Context, group *domain.Group) error
	Get(ctx context.Context, name string) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	// Update applies fn to a working copy of the named group and commits
	// it only when fn returns nil.
	Update(ctx context.Context, name string, fn func(*domain.Group) error) error
}

// PersonalStore holds the personal expense log of one session.
type PersonalStore interface {
	Add(ctx context.Context, expense domain.PersonalExpense) error
	List(ctx context.Context) ([]domain.PersonalExpense, error)
}

// SessionRepository keeps the live sessions of the process.
type SessionRepository interface {
	Create(ctx context.Context, id string) (*Session, error)
	// Get returns the session and marks it as recently used.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenManager signs and verifies session tokens.
type TokenManager interface {
	Issue(sessionID string) (string, error)
	SessionID(token string) (string, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Summarizer turns a prompt into generated text.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// PaymentOrder is a request to open a payment order.
type PaymentOrder struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Capture     bool
	Notes       map[string]string
}

// PaymentGateway opens payment orders and returns the gateway's order id.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, order PaymentOrder) (string, error)
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// Recorder receives domain counters.
type Recorder interface {
	GroupCreated()
	ExpenseAdded(amount decimal.Decimal)
	SummaryGenerated(cached bool)
	PaymentOrderCreated()
	ExternalCallFailed(service string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) GroupCreated() {}
func (NopRecorder) ExpenseAdded(decimal.Decimal) {}
func (NopRecorder) SummaryGenerated(bool) {}
func (NopRecorder) PaymentOrderCreated() {}
func (NopRecorder) ExternalCallFailed(string) {}
