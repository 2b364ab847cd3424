package ntp

import (
	"context"
	"io"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal/calendar"
)

// LocalTimeProvider trusts the local system clock and never talks to an
// NTP server. It counts as synchronized from the start.
type LocalTimeProvider struct {
	clock    clockwork.Clock
	reporter *reporter

	mu   sync.Mutex
	zone calendar.Zone
}

var _ TimeProvider = (*LocalTimeProvider)(nil)

// NewLocalTimeProvider creates a new local time provider writing reports to
// sink (stdout when nil).
func NewLocalTimeProvider(sink io.Writer) *LocalTimeProvider {
	return &LocalTimeProvider{
		clock:    clockwork.NewRealClock(),
		reporter: newReporter(sink),
	}
}

// Initialize only records the offsets; servers are ignored.
func (l *LocalTimeProvider) Initialize(_ context.Context, utcOffsetSec, dstOffsetSec int, servers ...string) {
	zone := calendar.NewZone(utcOffsetSec, dstOffsetSec)
	l.mu.Lock()
	l.zone = zone
	l.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"zone":    zone.Name(),
		"servers": servers,
	}).Info("Using local system clock, NTP servers ignored")
}

func (l *LocalTimeProvider) GetCurrentTime() (calendar.Time, error) {
	l.mu.Lock()
	zone := l.zone
	l.mu.Unlock()
	return l.reporter.read(l.clock.Now(), zone)
}

func (l *LocalTimeProvider) IsSynchronized() bool {
	return true
}

// NowUnixMilli returns the current local system time in Unix milliseconds.
func (l *LocalTimeProvider) NowUnixMilli() int64 {
	return l.clock.Now().UnixMilli()
}

func (l *LocalTimeProvider) HealthCheck() error {
	return nil
}
