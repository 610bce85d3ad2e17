package chaincfg

import (
	"io/fs"
	"math/rand"
	"sync"
	"time"

	"github.com/examcoin/examd/errors"
	"github.com/examcoin/examd/ulogger"
	"go.uber.org/atomic"
)

const noActiveNetwork = -1

// SelectHook is called after every Select with the newly active profile.
type SelectHook func(params *Params)

type registryOptions struct {
	assets fs.FS
	hooks  []SelectHook
	now    time.Time
	rng    RandSource
}

type RegistryOption func(*registryOptions)

// WithSelectHook registers a callback run after each Select, in registration
// order. Components that derive state from the active network (message
// framing, address codecs) use it to reconfigure themselves.
func WithSelectHook(hook SelectHook) RegistryOption {
	return func(o *registryOptions) {
		o.hooks = append(o.hooks, hook)
	}
}

// WithAssets replaces the embedded checkpoint and seed data. fsys must use the
// same layout: <network>/checkpoints.json and <network>/seeds.json.
func WithAssets(fsys fs.FS) RegistryOption {
	return func(o *registryOptions) {
		o.assets = fsys
	}
}

// WithSeedClock fixes the time and randomness fixed seeds are aged with.
func WithSeedClock(now time.Time, rng RandSource) RegistryOption {
	return func(o *registryOptions) {
		o.now = now
		o.rng = rng
	}
}

// Registry owns the four network profiles and tracks which one is active.
// Profiles are built once, in NewRegistry, and are never replaced.
type Registry struct {
	logger   ulogger.Logger
	profiles map[NetworkKind]*Params
	active   *atomic.Int32
	hooks    []SelectHook
	selectMu sync.Mutex
}

// NewRegistry builds every profile and checks their invariants. Broken
// compiled-in data is a programming error, so NewRegistry panics with an
// ERR_CONFIGURATION error rather than returning it. A nil logger discards
// registry logs.
func NewRegistry(logger ulogger.Logger, opts ...RegistryOption) *Registry {
	if logger == nil {
		logger = ulogger.TestLogger{}
	}

	initPrometheusMetrics()

	options := &registryOptions{}
	for _, o := range opts {
		o(options)
	}

	if options.assets == nil {
		options.assets = defaultAssets()
	}

	if options.now.IsZero() {
		options.now = time.Now()
	}

	if options.rng == nil {
		options.rng = rand.New(rand.NewSource(options.now.UnixNano())) //nolint:gosec // seed ageing needs no crypto randomness
	}

	bc := buildContext{assets: options.assets, now: options.now, rng: options.rng}

	mainParams, err := newMainParams(bc)
	if err != nil {
		panic(errors.NewConfigurationError("failed to build %s parameters", Main, err))
	}

	testnet, err := newTestnetParams(mainParams, bc)
	if err != nil {
		panic(errors.NewConfigurationError("failed to build %s parameters", Testnet, err))
	}

	regtest, err := newRegtestParams(testnet, bc)
	if err != nil {
		panic(errors.NewConfigurationError("failed to build %s parameters", Regtest, err))
	}

	r := &Registry{
		logger: logger,
		profiles: map[NetworkKind]*Params{
			Main:     mainParams,
			Testnet:  testnet,
			Regtest:  regtest,
			UnitTest: newUnitTestParams(mainParams),
		},
		active: atomic.NewInt32(noActiveNetwork),
		hooks:  options.hooks,
	}

	if err = r.checkUniqueMagic(); err != nil {
		panic(err)
	}

	logger.Debugf("[Registry] built %d network profiles, genesis %s", len(r.profiles), mainParams.GenesisHash())

	return r
}

func (r *Registry) checkUniqueMagic() error {
	seen := make(map[[4]byte]NetworkKind, len(r.profiles))

	for _, kind := range AllNetworks() {
		magic := r.profiles[kind].MessageStart()
		if other, ok := seen[magic]; ok {
			return errors.NewConfigurationError("networks %s and %s share message start %x", other, kind, magic)
		}

		seen[magic] = kind
	}

	return nil
}

// ProfileFor returns the profile of kind. It panics on an unknown kind.
func (r *Registry) ProfileFor(kind NetworkKind) *Params {
	p, ok := r.profiles[kind]
	if !ok {
		panic(errors.NewInvalidArgumentError("unknown network kind %d", kind))
	}

	return p
}

// Profiles returns all profiles in declaration order.
func (r *Registry) Profiles() []*Params {
	profiles := make([]*Params, 0, len(r.profiles))
	for _, kind := range AllNetworks() {
		profiles = append(profiles, r.profiles[kind])
	}

	return profiles
}

// Select makes kind the active network and runs the select hooks. Selecting
// the active network again is allowed and runs the hooks again. It panics on an
// unknown kind.
func (r *Registry) Select(kind NetworkKind) {
	params := r.ProfileFor(kind)

	r.selectMu.Lock()
	defer r.selectMu.Unlock()

	r.active.Store(int32(kind))
	prometheusRegistrySelect.WithLabelValues(kind.String()).Inc()

	r.logger.Infof("[Registry] selected network %s (magic %x, port %d)", kind, params.MessageStart(), params.DefaultPort())

	for _, hook := range r.hooks {
		hook(params)
	}
}

// SelectByName parses name with ParseNetworkKind and selects it.
func (r *Registry) SelectByName(name string) error {
	kind, err := ParseNetworkKind(name)
	if err != nil {
		return err
	}

	r.Select(kind)

	return nil
}

// Active returns the active network, if one has been selected.
func (r *Registry) Active() (NetworkKind, bool) {
	v := r.active.Load()
	if v == noActiveNetwork {
		return 0, false
	}

	return NetworkKind(v), true
}

// Current returns the active profile. It panics when no network has been
// selected yet.
func (r *Registry) Current() *Params {
	kind, ok := r.Active()
	if !ok {
		panic(errors.NewStateInitializationError("no network selected"))
	}

	return r.profiles[kind]
}

// Overrides returns the override handle of the UnitTest profile. It panics
// unless UnitTest is the active network.
func (r *Registry) Overrides() *UnitTestOverrides {
	current := r.Current()
	if current.overrides == nil {
		panic(errors.NewInvalidStateError("parameter overrides are only available on %s, active network is %s", UnitTest, current.Kind()))
	}

	return current.overrides
}
