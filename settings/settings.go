package settings

import (
	"time"

	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
)

func NewSettings() *Settings {
	return &Settings{
		ClientName: getString("clientName", "examd"),
		DataFolder: getString("dataFolder", "data"),
		LogLevel:   getString("logLevel", "INFO"),
		LoggerType: getString("logger", "zerolog"),
		Network:    getString("network", chaincfg.Main.String()),
		P2P: P2PSettings{
			DNSSeedsEnabled:   getBool("p2p_dns_seeds_enabled", true),
			FixedSeedsEnabled: getBool("p2p_fixed_seeds_enabled", true),
			DNSTimeout:        getDuration("p2p_dns_timeout", 5*time.Second),
			DNSRetries:        getInt("p2p_dns_retries", 3),
			DNSRetryBackoff:   getDuration("p2p_dns_retry_backoff", 500*time.Millisecond),
		},
	}
}

// NetworkKind resolves the configured network name.
func (s *Settings) NetworkKind() (chaincfg.NetworkKind, error) {
	kind, err := chaincfg.ParseNetworkKind(s.Network)
	if err != nil {
		return 0, errors.NewConfigurationError("invalid network setting %q", s.Network, err)
	}

	return kind, nil
}

// NetworkFromFlags applies the command line network switches on top of
// fallback. Asking for testnet and regtest at the same time is an error.
func NetworkFromFlags(testnet, regtest bool, fallback chaincfg.NetworkKind) (chaincfg.NetworkKind, error) {
	switch {
	case testnet && regtest:
		return 0, errors.NewInvalidArgumentError("invalid combination of -regtest and -testnet")
	case regtest:
		return chaincfg.Regtest, nil
	case testnet:
		return chaincfg.Testnet, nil
	default:
		return fallback, nil
	}
}
