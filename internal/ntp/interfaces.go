package ntp

import (
	"context"
	"errors"

	"github.com/ton-connect/ntpclock/internal/calendar"
)

var (
	// ErrTimeUnavailable is returned by GetCurrentTime when the clock cannot
	// produce a valid reading yet.
	ErrTimeUnavailable = errors.New("time unavailable")
	// ErrNotSynchronized is reported by HealthCheck until the first
	// successful synchronization.
	ErrNotSynchronized = errors.New("clock not synchronized")
)

// TimeProvider configures time synchronization once and serves calendar
// time on demand.
// This interface allows using either local time or NTP-synchronized time.
type TimeProvider interface {
	// Initialize stores the offsets and starts synchronizing against the
	// given servers. It returns immediately.
	Initialize(ctx context.Context, utcOffsetSec, dstOffsetSec int, servers ...string)
	// GetCurrentTime returns the current civil time and writes a report to
	// the provider's sink. On failure it returns the last good value (zero
	// if there is none) together with ErrTimeUnavailable.
	GetCurrentTime() (calendar.Time, error)
	IsSynchronized() bool
	NowUnixMilli() int64
	HealthCheck() error
}
