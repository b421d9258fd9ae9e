package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

// GenerateItemID returns a time-ordered id for cart line items. It falls back
// to a random v4 id if the v7 generator fails.
func GenerateItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// ==================== ORDER NUMBER ====================

// GenerateOrderNumber formats an order number as ART + the last six digits
// of the millisecond clock.
func GenerateOrderNumber(now time.Time) string {
	ms := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("ART%06d", ms)
}
