package usecase

import "time"

const (
	// MaxBatchSize is the maximum number of transactions accepted by a single batch intake.
	MaxBatchSize = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending marks a claimed key whose request has not finished.
	IdempotencyPending = "processing"
)
