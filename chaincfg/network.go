package chaincfg

import (
	"strings"

	"github.com/examcoin/examd/errors"
)

// NetworkKind identifies one of the networks the node can join.
type NetworkKind uint8

const (
	// Main is the production network.
	Main NetworkKind = iota

	// Testnet is the public test network.
	Testnet

	// Regtest is the private regression test network. Blocks are mined on
	// demand and the proof-of-work limit is trivial.
	Regtest

	// UnitTest is a copy of Main whose consensus thresholds and a few flags
	// can be changed by tests through Registry.Overrides.
	UnitTest
)

var networkNames = [...]string{
	Main:     "main",
	Testnet:  "test",
	Regtest:  "regtest",
	UnitTest: "unittest",
}

// AllNetworks returns every network kind in declaration order.
func AllNetworks() []NetworkKind {
	return []NetworkKind{Main, Testnet, Regtest, UnitTest}
}

// String returns the network id ("main", "test", "regtest", "unittest").
func (k NetworkKind) String() string {
	if !k.IsValid() {
		return "unknown"
	}

	return networkNames[k]
}

// IsValid reports whether k is one of the four known networks.
func (k NetworkKind) IsValid() bool {
	return k <= UnitTest
}

// ParseNetworkKind maps a network id, or one of the aliases "mainnet",
// "testnet" and "testnet3", to its kind.
func ParseNetworkKind(name string) (NetworkKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "main", "mainnet":
		return Main, nil
	case "test", "testnet", "testnet3":
		return Testnet, nil
	case "regtest":
		return Regtest, nil
	case "unittest":
		return UnitTest, nil
	default:
		return 0, errors.NewInvalidArgumentError("unknown network %q", name)
	}
}
