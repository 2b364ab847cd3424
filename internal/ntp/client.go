package ntp

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal/calendar"
	"github.com/ton-connect/ntpclock/internal/utils"
)

// DefaultServers is used when neither Options nor Initialize name a server.
var DefaultServers = []string{
	"pool.ntp.org",
	"time.google.com",
	"time.cloudflare.com",
}

const (
	defaultSyncInterval = time.Hour
	defaultQueryTimeout = 5 * time.Second
	defaultReadTimeout  = 5 * time.Second
	defaultRetryBase    = time.Second
	defaultMaxRetries   = 5
)

var errAllServersFailed = errors.New("no NTP server answered")

// QueryFunc performs a single NTP exchange.
type QueryFunc func(server string, opts ntp.QueryOptions) (*ntp.Response, error)

// Sample describes the last successful exchange.
type Sample struct {
	Server  string        `json:"server"`
	Offset  time.Duration `json:"offset"`
	RTT     time.Duration `json:"rtt"`
	Stratum uint8         `json:"stratum"`
	At      time.Time     `json:"at"`
}

type Options struct {
	Servers      []string
	SyncInterval time.Duration
	QueryTimeout time.Duration
	// ReadTimeout bounds how long GetCurrentTime waits for the first sync.
	// Negative disables waiting.
	ReadTimeout time.Duration
	RetryBase   time.Duration
	MaxRetries  uint64

	Sink  io.Writer
	Clock clockwork.Clock
	Query QueryFunc
}

type Client struct {
	servers      []string
	syncInterval time.Duration
	queryTimeout time.Duration
	readTimeout  time.Duration
	retryBase    time.Duration
	maxRetries   uint64

	clock    clockwork.Clock
	query    QueryFunc
	reporter *reporter

	mu     sync.Mutex // guards zone and cancel
	zone   calendar.Zone
	cancel context.CancelFunc

	offset     atomic.Int64 // stored as nanoseconds (time.Duration)
	lastSync   atomic.Pointer[Sample]
	synced     chan struct{}
	syncedOnce sync.Once
}

var _ TimeProvider = (*Client)(nil)

func NewClient(opts Options) *Client {
	if len(opts.Servers) == 0 {
		opts.Servers = DefaultServers
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = defaultSyncInterval
	}
	if opts.QueryTimeout <= 0 {
		opts.QueryTimeout = defaultQueryTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = defaultReadTimeout
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = defaultRetryBase
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Query == nil {
		opts.Query = ntp.QueryWithOptions
	}

	return &Client{
		servers:      opts.Servers,
		syncInterval: opts.SyncInterval,
		queryTimeout: opts.QueryTimeout,
		readTimeout:  opts.ReadTimeout,
		retryBase:    opts.RetryBase,
		maxRetries:   opts.MaxRetries,
		clock:        opts.Clock,
		query:        opts.Query,
		reporter:     newReporter(opts.Sink),
		synced:       make(chan struct{}),
	}
}

// Initialize configures the zone and starts the background sync loop. A
// second call replaces the running loop; an established sync stays valid.
func (c *Client) Initialize(ctx context.Context, utcOffsetSec, dstOffsetSec int, servers ...string) {
	if len(servers) == 0 {
		servers = c.servers
	}
	zone := calendar.NewZone(utcOffsetSec, dstOffsetSec)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.zone = zone
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"servers":       servers,
		"zone":          zone.Name(),
		"sync_interval": c.syncInterval,
	}).Info("Starting NTP client")

	utils.RunWithRecovery("ntp-sync", func() {
		c.syncLoop(loopCtx, servers)
	})
}

// Stop ends the sync loop. The last offset keeps being applied.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	logrus.Info("NTP client stopped")
}

func (c *Client) syncLoop(ctx context.Context, servers []string) {
	c.syncRound(ctx, servers)

	ticker := c.clock.NewTicker(c.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.syncRound(ctx, servers)
		}
	}
}

// syncRound tries every server in order and backs off exponentially while
// none of them answers.
func (c *Client) syncRound(ctx context.Context, servers []string) {
	backoff := retry.NewExponential(c.retryBase)
	backoff = retry.WithCappedDuration(c.syncInterval, backoff)
	backoff = retry.WithMaxRetries(c.maxRetries, backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		for _, server := range servers {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if c.trySyncWithServer(server) {
				return nil
			}
		}
		syncRoundFailuresMetric.Inc()
		return retry.RetryableError(errAllServersFailed)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Warn("Failed to synchronize with any NTP server")
	}
}

func (c *Client) trySyncWithServer(server string) bool {
	response, err := c.query(server, ntp.QueryOptions{Timeout: c.queryTimeout})
	if err != nil {
		queryFailuresMetric.WithLabelValues(server).Inc()
		logrus.WithFields(logrus.Fields{
			"server": server,
			"error":  err,
		}).Debug("Failed to query NTP server")
		return false
	}

	if err := response.Validate(); err != nil {
		queryFailuresMetric.WithLabelValues(server).Inc()
		logrus.WithFields(logrus.Fields{
			"server": server,
			"error":  err,
		}).Debug("Invalid response from NTP server")
		return false
	}

	sample := Sample{
		Server:  server,
		Offset:  response.ClockOffset,
		RTT:     response.RTT,
		Stratum: response.Stratum,
		At:      c.clock.Now(),
	}
	c.offset.Store(int64(response.ClockOffset))
	c.lastSync.Store(&sample)
	c.syncedOnce.Do(func() {
		close(c.synced)
		synchronizedMetric.Set(1)
	})
	clockOffsetMetric.Set(response.ClockOffset.Seconds())
	lastSyncMetric.Set(float64(sample.At.Unix()))

	logrus.WithFields(logrus.Fields{
		"server":    server,
		"offset":    response.ClockOffset,
		"precision": response.RTT / 2,
		"rtt":       response.RTT,
		"stratum":   response.Stratum,
	}).Info("Successfully synchronized with NTP server")
	return true
}

// GetCurrentTime waits up to the read timeout for the first sync, then
// returns the corrected civil time and writes the report to the sink.
func (c *Client) GetCurrentTime() (calendar.Time, error) {
	if !c.waitSynchronized() {
		return c.reporter.fail()
	}
	return c.reporter.read(c.Now(), c.Zone())
}

func (c *Client) waitSynchronized() bool {
	if c.IsSynchronized() {
		return true
	}
	if c.readTimeout < 0 {
		return false
	}

	timer := c.clock.NewTimer(c.readTimeout)
	defer timer.Stop()

	select {
	case <-c.synced:
		return true
	case <-timer.Chan():
		return false
	}
}

func (c *Client) IsSynchronized() bool {
	select {
	case <-c.synced:
		return true
	default:
		return false
	}
}

// Synchronized is closed once the first sync succeeds.
func (c *Client) Synchronized() <-chan struct{} {
	return c.synced
}

// LastSync returns the last successful exchange, if any.
func (c *Client) LastSync() (Sample, bool) {
	s := c.lastSync.Load()
	if s == nil {
		return Sample{}, false
	}
	return *s, true
}

func (c *Client) ClockOffset() time.Duration {
	return time.Duration(c.offset.Load())
}

func (c *Client) Zone() calendar.Zone {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zone
}

// Now returns the offset-corrected instant.
func (c *Client) Now() time.Time {
	return c.clock.Now().Add(c.ClockOffset())
}

func (c *Client) NowUnixMilli() int64 {
	return c.Now().UnixMilli()
}

func (c *Client) HealthCheck() error {
	if !c.IsSynchronized() {
		return ErrNotSynchronized
	}
	return nil
}
