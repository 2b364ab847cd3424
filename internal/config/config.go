package config

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/sirupsen/logrus"
	"github.com/ton-connect/ntpclock/internal/ntp"
)

var Config = struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Port        int    `env:"PORT" envDefault:"8081"` // 0 disables the API
	MetricsPort int    `env:"METRICS_PORT" envDefault:"9103"`

	// Time settings
	NTPEnabled      bool     `env:"NTP_ENABLED" envDefault:"true"`
	NTPServers      []string `env:"NTP_SERVERS" envDefault:"pool.ntp.org"`
	UTCOffset       int      `env:"UTC_OFFSET" envDefault:"0"`    // seconds
	DSTOffset       int      `env:"DST_OFFSET" envDefault:"3600"` // seconds, applied all year
	NTPSyncInterval int      `env:"NTP_SYNC_INTERVAL" envDefault:"3600"`
	NTPQueryTimeout int      `env:"NTP_QUERY_TIMEOUT" envDefault:"5"`
	ReadTimeoutMs   int      `env:"READ_TIMEOUT_MS" envDefault:"5000"`
	ReportInterval  int      `env:"REPORT_INTERVAL" envDefault:"10"` // 0 prints a single report

	// Other settings
	RPSLimit           int      `env:"RPS_LIMIT" envDefault:"5"`
	TrustedProxyRanges []string `env:"TRUSTED_PROXY_RANGES" envDefault:"0.0.0.0/0"`
	PprofEnabled       bool     `env:"PPROF_ENABLED" envDefault:"false"`
}{}

func LoadConfig() {
	if err := env.Parse(&Config); err != nil {
		log.Fatalf("config parsing failed: %v\n", err)
	}

	level, err := logrus.ParseLevel(strings.ToLower(Config.LogLevel))
	if err != nil {
		log.Printf("Invalid LOG_LEVEL '%s', using default 'info'. Valid levels: panic, fatal, error, warn, info, debug, trace", Config.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// NTPOptions translates the loaded settings into client options.
func NTPOptions(sink io.Writer) ntp.Options {
	readTimeout := time.Duration(Config.ReadTimeoutMs) * time.Millisecond
	if Config.ReadTimeoutMs <= 0 {
		readTimeout = -1
	}
	return ntp.Options{
		Servers:      Config.NTPServers,
		SyncInterval: time.Duration(Config.NTPSyncInterval) * time.Second,
		QueryTimeout: time.Duration(Config.NTPQueryTimeout) * time.Second,
		ReadTimeout:  readTimeout,
		Sink:         sink,
	}
}
