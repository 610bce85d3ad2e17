package settings

import (
	"testing"
	"time"

	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// check settings object is initialised
func TestInitialiseSettings(t *testing.T) {
	tSettings := NewSettings()
	require.NotNil(t, tSettings)

	assert.NotEmpty(t, tSettings.ClientName)
	assert.NotEmpty(t, tSettings.Network)
	assert.Greater(t, tSettings.P2P.DNSTimeout, time.Duration(0))
}

func TestNetworkSetting(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected chaincfg.NetworkKind
	}{
		{"main", "main", chaincfg.Main},
		{"mainnet alias", "mainnet", chaincfg.Main},
		{"testnet", "test", chaincfg.Testnet},
		{"testnet3 alias", "testnet3", chaincfg.Testnet},
		{"regtest", "regtest", chaincfg.Regtest},
		{"unittest", "unittest", chaincfg.UnitTest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("network", tt.envValue)

			tSettings := NewSettings()
			kind, err := tSettings.NetworkKind()
			require.NoError(t, err)
			require.Equal(t, tt.expected, kind)
		})
	}
}

func TestInvalidNetworkSetting(t *testing.T) {
	t.Setenv("network", "simnet")

	_, err := NewSettings().NetworkKind()
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrConfiguration))
	require.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestDNSTimeoutSetting(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"duration string", "750ms", 750 * time.Millisecond},
		{"milliseconds", "1500", 1500 * time.Millisecond},
		{"seconds", "2s", 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("p2p_dns_timeout", tt.envValue)
			require.Equal(t, tt.expected, NewSettings().P2P.DNSTimeout)
		})
	}
}

func TestSeedSwitches(t *testing.T) {
	t.Setenv("p2p_dns_seeds_enabled", "false")
	t.Setenv("p2p_fixed_seeds_enabled", "true")

	tSettings := NewSettings()
	assert.False(t, tSettings.P2P.DNSSeedsEnabled)
	assert.True(t, tSettings.P2P.FixedSeedsEnabled)
}

func TestNetworkFromFlags(t *testing.T) {
	tests := []struct {
		name     string
		testnet  bool
		regtest  bool
		fallback chaincfg.NetworkKind
		expected chaincfg.NetworkKind
		wantErr  bool
	}{
		{"no flags keeps fallback", false, false, chaincfg.Main, chaincfg.Main, false},
		{"no flags keeps unittest fallback", false, false, chaincfg.UnitTest, chaincfg.UnitTest, false},
		{"testnet", true, false, chaincfg.Main, chaincfg.Testnet, false},
		{"regtest", false, true, chaincfg.Main, chaincfg.Regtest, false},
		{"both is an error", true, true, chaincfg.Main, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := NetworkFromFlags(tt.testnet, tt.regtest, tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, errors.ErrInvalidArgument))

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, kind)
		})
	}
}

func TestDNSRetrySettings(t *testing.T) {
	t.Setenv("p2p_dns_retries", "5")
	t.Setenv("p2p_dns_retry_backoff", "250ms")

	tSettings := NewSettings()
	assert.Equal(t, 5, tSettings.P2P.DNSRetries)
	assert.Equal(t, 250*time.Millisecond, tSettings.P2P.DNSRetryBackoff)
}
