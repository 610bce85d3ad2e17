// Package bootstrap gathers the first peer addresses a node dials: the fixed
// seeds of the active network and the addresses its DNS seeds resolve to.
package bootstrap

import (
	"context"
	"net"
	"strconv"
	"syscall"
	"time"

	"github.com/bsv-blockchain/go-wire"
	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
	"github.com/examcoin/examd/settings"
	"github.com/examcoin/examd/ulogger"
	"github.com/examcoin/examd/util/retry"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLookupTimeout = 30 * time.Second
	defaultConcurrency   = 4
	defaultRetryBackoff  = 500 * time.Millisecond
)

// Resolver resolves a DNS seed host. net.DefaultResolver satisfies it.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

type options struct {
	dnsSeeds      bool
	fixedSeeds    bool
	lookupTimeout time.Duration
	concurrency   int
	lookupRetries int
	retryBackoff  time.Duration
}

type Option func(*options)

// WithDNSSeeds enables or disables querying DNS seeds. Enabled by default.
func WithDNSSeeds(enabled bool) Option {
	return func(o *options) {
		o.dnsSeeds = enabled
	}
}

// WithFixedSeeds enables or disables the hard-coded seeds. Enabled by default.
func WithFixedSeeds(enabled bool) Option {
	return func(o *options) {
		o.fixedSeeds = enabled
	}
}

// WithLookupTimeout bounds each DNS seed lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.lookupTimeout = d
		}
	}
}

// WithConcurrency limits how many DNS seeds are queried at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLookupRetries makes each DNS seed lookup up to attempts times, waiting
// backoff, then twice as long, between attempts. A seed that does not exist is
// not retried.
func WithLookupRetries(attempts int, backoff time.Duration) Option {
	return func(o *options) {
		if attempts > 0 {
			o.lookupRetries = attempts
		}

		if backoff > 0 {
			o.retryBackoff = backoff
		}
	}
}

// OptionsFromSettings maps the p2p settings onto options.
func OptionsFromSettings(s settings.P2PSettings) []Option {
	return []Option{
		WithDNSSeeds(s.DNSSeedsEnabled),
		WithFixedSeeds(s.FixedSeedsEnabled),
		WithLookupTimeout(s.DNSTimeout),
		WithLookupRetries(s.DNSRetries, s.DNSRetryBackoff),
	}
}

// Candidates returns the bootstrap addresses of params: fixed seeds first, then
// the results of every DNS seed in seed order, without duplicates. DNS results
// use the default port of the network and get the same one to two week old
// last-seen time as fixed seeds. A seed that fails to resolve is logged and
// skipped; only cancellation of ctx is an error. rng is only used from the
// calling goroutine.
func Candidates(ctx context.Context, logger ulogger.Logger, params *chaincfg.Params, resolver Resolver,
	now time.Time, rng chaincfg.RandSource, opts ...Option) ([]*wire.NetAddress, error) {
	initPrometheusMetrics()

	o := &options{
		dnsSeeds:      true,
		fixedSeeds:    true,
		lookupTimeout: defaultLookupTimeout,
		concurrency:   defaultConcurrency,
		lookupRetries: 1,
		retryBackoff:  defaultRetryBackoff,
	}

	for _, opt := range opts {
		opt(o)
	}

	if resolver == nil {
		resolver = net.DefaultResolver
	}

	var candidates []*wire.NetAddress

	seen := make(map[string]struct{})

	add := func(addrs []*wire.NetAddress) {
		for _, na := range addrs {
			key := net.JoinHostPort(na.IP.String(), strconv.Itoa(int(na.Port)))
			if _, ok := seen[key]; ok {
				continue
			}

			seen[key] = struct{}{}
			candidates = append(candidates, na)
		}
	}

	if o.fixedSeeds {
		add(params.FixedSeeds())
	}

	if o.dnsSeeds {
		resolved, err := lookupSeeds(ctx, logger, params.DNSSeeds(), resolver, o)
		if err != nil {
			return nil, err
		}

		for _, ips := range resolved {
			specs := make([]chaincfg.SeedSpec, 0, len(ips))

			for _, ip := range ips {
				spec, err := chaincfg.NewSeedSpec(ip.IP, params.DefaultPort())
				if err != nil {
					logger.Warnf("[Bootstrap] skipping resolved address %s: %v", ip.IP, err)
					continue
				}

				specs = append(specs, spec)
			}

			add(chaincfg.ConvertSeeds(specs, now, rng))
		}
	}

	prometheusBootstrapCandidates.WithLabelValues(params.Name()).Set(float64(len(candidates)))

	logger.Infof("[Bootstrap] %d candidate peers for %s", len(candidates), params.Name())

	return candidates, nil
}

// lookupSeeds resolves every seed concurrently. The result is indexed like
// seeds; a failed seed has no addresses.
func lookupSeeds(ctx context.Context, logger ulogger.Logger, seeds []chaincfg.DNSSeed, resolver Resolver, o *options) ([][]net.IPAddr, error) {
	resolved := make([][]net.IPAddr, len(seeds))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	for i, seed := range seeds {
		g.Go(func() error {
			attempt := 0

			ips, err := retry.Retry(gCtx, logger, func() ([]net.IPAddr, error) {
				attempt++
				if attempt > 1 {
					prometheusDNSLookupRetries.Inc()
				}

				lookupCtx, cancel := context.WithTimeout(gCtx, o.lookupTimeout)
				defer cancel()

				start := time.Now()
				ips, err := resolver.LookupIPAddr(lookupCtx, seed.Host)

				prometheusDNSLookupDuration.Observe(time.Since(start).Seconds())

				if err != nil {
					return nil, lookupError(gCtx, lookupCtx, seed.Host, err)
				}

				return ips, nil
			},
				retry.WithRetryCount(o.lookupRetries),
				retry.WithExponentialBackoff(),
				retry.WithBackoffDurationType(o.retryBackoff),
				retry.WithMaxBackoff(o.lookupTimeout),
				retry.WithMessage("[Bootstrap] DNS seed "+seed.Host+" failed"),
				retry.WithShouldRetry(errors.IsRetryableError),
			)
			if err != nil {
				if gCtx.Err() != nil {
					return errors.NewContextCanceledError("[Bootstrap] lookup of %s canceled", seed.Host, gCtx.Err())
				}

				result := "failed"
				if errors.Is(err, errors.ErrNotFound) {
					result = "not_found"
				}

				prometheusDNSLookups.WithLabelValues(result).Inc()
				logger.Warnf("[Bootstrap] DNS seed %s failed: %v", seed.Host, err)

				return nil
			}

			prometheusDNSLookups.WithLabelValues("ok").Inc()
			logger.Debugf("[Bootstrap] DNS seed %s returned %d addresses", seed.Host, len(ips))
			resolved[i] = ips

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.NewContextCanceledError("[Bootstrap] bootstrap canceled", err)
	}

	return resolved, nil
}

// lookupError gives a failed lookup an error code. Unknown hosts are
// ERR_NOT_FOUND and are not retried. Timeouts, refused connections and other
// resolver failures carry network codes and are. Cancellation of ctx is passed
// through unchanged.
func lookupError(ctx, lookupCtx context.Context, host string, err error) error {
	if ctx.Err() != nil {
		return err
	}

	var dnsErr *net.DNSError

	isDNSErr := errors.As(err, &dnsErr)

	switch {
	case isDNSErr && dnsErr.IsNotFound:
		return errors.NewNotFoundError("[Bootstrap] DNS seed %s has no records", host, err)
	case lookupCtx.Err() != nil, isDNSErr && dnsErr.IsTimeout:
		// the deadline is not wrapped or quoted, or the error would read as a context error
		return errors.NewNetworkTimeoutError("[Bootstrap] DNS seed %s timed out", host)
	case errors.Is(err, syscall.ECONNREFUSED):
		return errors.NewNetworkConnectionRefusedError("[Bootstrap] DNS seed %s refused", host, err)
	default:
		return errors.NewNetworkError("[Bootstrap] DNS seed %s lookup failed", host, err)
	}
}
