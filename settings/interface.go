package settings

import (
	"time"
)

type P2PSettings struct {
	DNSSeedsEnabled   bool
	FixedSeedsEnabled bool
	DNSTimeout        time.Duration
	DNSRetries        int
	DNSRetryBackoff   time.Duration
}

type Settings struct {
	ClientName string
	DataFolder string
	LogLevel   string
	LoggerType string
	// Network is the configured network name, resolved with NetworkKind.
	Network string
	P2P     P2PSettings
}
