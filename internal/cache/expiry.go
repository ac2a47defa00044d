package cache

import "time"

const (
	ExpiryDefaultInMemory = 5 * time.Minute
	ExpiryCleanupInterval = 10 * time.Minute
)
