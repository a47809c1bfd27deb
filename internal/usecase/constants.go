package usecase

import "time"

const (
	// DefaultSummaryTimeout bounds a single text-generation call.
	DefaultSummaryTimeout = 30 * time.Second

	// DefaultPaymentTimeout bounds a single order creation call.
	DefaultPaymentTimeout = 15 * time.Second

	// DefaultPaymentCurrency is used when no currency is configured.
	DefaultPaymentCurrency = "INR"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending marks a claimed key whose response is not stored yet.
	IdempotencyPending = "processing"

	// summaryPrompt precedes the JSON expense snapshot sent for summarization.
	summaryPrompt = "Analyze this expense data and generate a well-explained summary in Indian rupees:\n"

	summaryCachePrefix = "summary:"
)
