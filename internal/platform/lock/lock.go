// Package lock serializes work on a single resource key, such as one accounting period.
package lock

import "context"

// Unlock releases a held lock. Calling it more than once is a no-op.
type Unlock func()

// Locker hands out exclusive locks per key.
type Locker interface {
	// Lock blocks until key is held or ctx is done.
	Lock(ctx context.Context, key string) (Unlock, error)
}

// PeriodKey is the lock key guarding writes to one period.
func PeriodKey(periodID string) string {
	return "period:" + periodID
}
