package ntp

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal/calendar"
)

// minValidYear mirrors the embedded SDK check: a clock reading before 2016
// has never been set.
const minValidYear = 2016

// reporter writes console reports and remembers the last good reading.
type reporter struct {
	mu   sync.Mutex
	sink io.Writer
	last calendar.Time
}

func newReporter(sink io.Writer) *reporter {
	if sink == nil {
		sink = os.Stdout
	}
	return &reporter{sink: sink}
}

// read converts now under zone, reports it and returns it. A reading before
// minValidYear is reported as a failure.
func (r *reporter) read(now time.Time, zone calendar.Zone) (calendar.Time, error) {
	ct := calendar.FromInstant(now, zone)
	if ct.Year < minValidYear {
		logrus.WithField("year", ct.Year).Debug("clock reading predates the valid range")
		return r.fail()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = ct
	if err := calendar.WriteReport(r.sink, ct); err != nil {
		logrus.WithError(err).Debug("failed to write time report")
	}
	return ct, nil
}

func (r *reporter) fail() (calendar.Time, error) {
	readFailuresMetric.Inc()
	logrus.Warn(calendar.FailureMessage)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := calendar.WriteFailure(r.sink); err != nil {
		logrus.WithError(err).Debug("failed to write time report")
	}
	return r.last, ErrTimeUnavailable
}
