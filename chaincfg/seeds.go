package chaincfg

import (
	"net"
	"time"

	"github.com/bsv-blockchain/go-wire"
	"github.com/examcoin/examd/errors"
)

const oneWeek = 7 * 24 * time.Hour

// SeedSpec is a hard-coded peer address: an IPv6 address (IPv4 addresses are
// IPv4-mapped) and a port.
type SeedSpec struct {
	Addr [16]byte
	Port uint16
}

// NewSeedSpec builds a SeedSpec from an IPv4 or IPv6 address.
func NewSeedSpec(ip net.IP, port uint16) (SeedSpec, error) {
	ip16 := ip.To16()
	if ip16 == nil {
		return SeedSpec{}, errors.NewInvalidIPError("invalid seed address %q", ip.String())
	}

	var s SeedSpec

	copy(s.Addr[:], ip16)
	s.Port = port

	return s, nil
}

// IP returns the address of the seed.
func (s SeedSpec) IP() net.IP {
	ip := make(net.IP, net.IPv6len)
	copy(ip, s.Addr[:])

	return ip
}

// RandSource is the randomness used to spread seed timestamps. *rand.Rand
// satisfies it.
type RandSource interface {
	Int63n(n int64) int64
}

// ConvertSeeds turns hard-coded seeds into peer addresses advertising
// wire.SFNodeNetwork. Seeds are never reported as fresh: each gets a last-seen
// time uniformly spread so that now-2w <= lastSeen < now-1w, in whole seconds.
// The output keeps the input order.
func ConvertSeeds(seeds []SeedSpec, now time.Time, rng RandSource) []*wire.NetAddress {
	addrs := make([]*wire.NetAddress, 0, len(seeds))
	weekSeconds := int64(oneWeek / time.Second)

	// round up so whole-second timestamps stay inside the window
	if base := now.Truncate(time.Second); !base.Equal(now) {
		now = base.Add(time.Second)
	}

	for _, s := range seeds {
		na := wire.NewNetAddressIPPort(s.IP(), s.Port, wire.SFNodeNetwork)

		age := time.Duration(rng.Int63n(weekSeconds)+1) * time.Second
		na.Timestamp = now.Add(-age - oneWeek)

		addrs = append(addrs, na)
	}

	return addrs
}
