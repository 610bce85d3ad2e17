package chaincfg

import (
	"io/fs"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/examcoin/examd/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentBeforeSelectPanics(t *testing.T) {
	r := newTestRegistry(t)

	_, ok := r.Active()
	assert.False(t, ok)

	requirePanicsWithCode(t, errors.ERR_STATE_INITIALIZATION, func() { r.Current() })
	requirePanicsWithCode(t, errors.ERR_STATE_INITIALIZATION, func() { r.Overrides() })
}

func TestNewRegistryWithoutLogger(t *testing.T) {
	var r *Registry

	require.NotPanics(t, func() { r = NewRegistry(nil, WithSeedClock(testNow, fixedRand{})) })

	r.Select(Regtest)
	assert.Equal(t, Regtest, r.Current().Kind())
}

func TestSelect(t *testing.T) {
	r := newTestRegistry(t)

	r.Select(Main)
	assert.Equal(t, uint16(36003), r.Current().DefaultPort())
	assert.Equal(t, [4]byte{0xc1, 0xf4, 0xa7, 0xd6}, r.Current().MessageStart())

	// current is stable between calls
	assert.Same(t, r.Current(), r.Current())

	r.Select(Testnet)
	assert.Equal(t, uint16(36005), r.Current().DefaultPort())
	assert.False(t, r.Current().Flags().RequireStandard)

	kind, ok := r.Active()
	require.True(t, ok)
	assert.Equal(t, Testnet, kind)

	// selecting again is allowed and returns the same profile
	before := r.Current()
	r.Select(Testnet)
	assert.Same(t, before, r.Current())
}

func TestSelectUnknownKindPanics(t *testing.T) {
	r := newTestRegistry(t)

	requirePanicsWithCode(t, errors.ERR_INVALID_ARGUMENT, func() { r.Select(NetworkKind(9)) })
	requirePanicsWithCode(t, errors.ERR_INVALID_ARGUMENT, func() { r.ProfileFor(NetworkKind(9)) })

	_, ok := r.Active()
	assert.False(t, ok, "a failed select leaves nothing active")
}

func TestSelectByName(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.SelectByName("testnet3"))
	assert.Equal(t, Testnet, r.Current().Kind())

	require.NoError(t, r.SelectByName("regtest"))
	assert.Equal(t, Regtest, r.Current().Kind())

	err := r.SelectByName("signet")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
	assert.Equal(t, Regtest, r.Current().Kind(), "a bad name keeps the previous selection")
}

func TestSelectMetrics(t *testing.T) {
	r := newTestRegistry(t)

	mainBefore := testutil.ToFloat64(prometheusRegistrySelect.WithLabelValues(Main.String()))
	regtestBefore := testutil.ToFloat64(prometheusRegistrySelect.WithLabelValues(Regtest.String()))

	r.Select(Main)
	r.Select(Main)
	r.Select(Regtest)

	assert.Equal(t, mainBefore+2, testutil.ToFloat64(prometheusRegistrySelect.WithLabelValues(Main.String())))
	assert.Equal(t, regtestBefore+1, testutil.ToFloat64(prometheusRegistrySelect.WithLabelValues(Regtest.String())))
}

func TestSelectHooks(t *testing.T) {
	var calls []string

	r := newTestRegistry(t,
		WithSelectHook(func(p *Params) { calls = append(calls, "first:"+p.Name()) }),
		WithSelectHook(func(p *Params) { calls = append(calls, "second:"+p.Name()) }),
	)

	r.Select(Main)
	r.Select(Main)
	r.Select(Regtest)

	assert.Equal(t, []string{
		"first:main", "second:main",
		"first:main", "second:main",
		"first:regtest", "second:regtest",
	}, calls)
}

func TestOverrides(t *testing.T) {
	r := newTestRegistry(t)

	for _, kind := range []NetworkKind{Main, Testnet, Regtest} {
		r.Select(kind)
		requirePanicsWithCode(t, errors.ERR_INVALID_STATE, func() { r.Overrides() })
	}

	r.Select(UnitTest)
	require.True(t, r.Current().IsMutable())

	o := r.Overrides()
	o.SetEnforceBlockUpgradeMajority(2)
	o.SetRejectBlockOutdatedMajority(3)
	o.SetToCheckBlockUpgradeMajority(4)
	o.SetDefaultConsistencyChecks(false)
	o.SetAllowMinDifficultyBlocks(true)
	o.SetSkipProofOfWorkCheck(true)

	c := r.Current().Consensus()
	assert.Equal(t, int32(2), c.EnforceBlockUpgradeMajority)
	assert.Equal(t, int32(3), c.RejectBlockOutdatedMajority)
	assert.Equal(t, int32(4), c.ToCheckBlockUpgradeMajority)

	f := r.Current().Flags()
	assert.False(t, f.DefaultConsistencyChecks)
	assert.True(t, f.AllowMinDifficultyBlocks)
	assert.True(t, f.SkipProofOfWorkCheck)

	// the change survives a reselect and never leaks into main
	r.Select(Main)
	r.Select(UnitTest)
	assert.Equal(t, int32(2), r.Current().Consensus().EnforceBlockUpgradeMajority)
	assert.Equal(t, int32(750), r.ProfileFor(Main).Consensus().EnforceBlockUpgradeMajority)
	assert.False(t, r.ProfileFor(Main).Flags().SkipProofOfWorkCheck)
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := newTestRegistry(t)
	b := newTestRegistry(t)

	a.Select(UnitTest)
	a.Overrides().SetToCheckBlockUpgradeMajority(7)

	assert.Equal(t, int32(1000), b.ProfileFor(UnitTest).Consensus().ToCheckBlockUpgradeMajority)

	_, ok := b.Active()
	assert.False(t, ok)
}

func TestProfilesHaveUniqueMagic(t *testing.T) {
	r := newTestRegistry(t)

	profiles := r.Profiles()
	require.Len(t, profiles, len(AllNetworks()))

	seen := map[[4]byte]bool{}
	ports := map[uint16]bool{}

	for i, p := range profiles {
		assert.Equal(t, AllNetworks()[i], p.Kind())
		assert.False(t, seen[p.MessageStart()], "duplicate magic on %s", p.Name())
		assert.False(t, ports[p.DefaultPort()], "duplicate port on %s", p.Name())

		seen[p.MessageStart()] = true
		ports[p.DefaultPort()] = true
	}

	r.profiles[UnitTest].messageStart = r.profiles[Main].messageStart
	require.Error(t, r.checkUniqueMagic())
}

func TestConcurrentSelectAndCurrent(t *testing.T) {
	r := newTestRegistry(t)
	r.Select(Main)

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(2)

		go func(i int) {
			defer wg.Done()
			r.Select(AllNetworks()[i%3])
		}(i)

		go func() {
			defer wg.Done()
			assert.True(t, r.Current().Kind().IsValid())
		}()
	}

	wg.Wait()
}

func embeddedMapFS(t *testing.T) fstest.MapFS {
	t.Helper()

	m := fstest.MapFS{}
	assets := defaultAssets()

	err := fs.WalkDir(assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		b, err := fs.ReadFile(assets, path)
		if err != nil {
			return err
		}

		m[path] = &fstest.MapFile{Data: b}

		return nil
	})
	require.NoError(t, err)

	return m
}

func TestWithAssets(t *testing.T) {
	t.Run("replacement seeds", func(t *testing.T) {
		m := embeddedMapFS(t)
		m["main/seeds.json"] = &fstest.MapFile{Data: []byte(`{"seeds":[{"addr":"00000000000000000000ffff7f000001","port":1234}]}`)}

		r := newTestRegistry(t, WithAssets(m))

		seeds := r.ProfileFor(Main).FixedSeeds()
		require.Len(t, seeds, 1)
		assert.Equal(t, "127.0.0.1", seeds[0].IP.String())
		assert.Equal(t, uint16(1234), seeds[0].Port)
	})

	t.Run("extra checkpoints", func(t *testing.T) {
		m := embeddedMapFS(t)
		m["regtest/checkpoints.json"] = &fstest.MapFile{Data: []byte(`{"checkpoints":[
			{"height":0,"hash":"f820cab6fa2bf7503f0302e7fe2b41c410117f865556de7273d76eaf399d9b48"},
			{"height":10,"hash":"0000000000000000000000000000000000000000000000000000000000000001"}]}`)}

		r := newTestRegistry(t, WithAssets(m))
		assert.Equal(t, int32(10), r.ProfileFor(Regtest).Checkpoints().HighestCheckpointHeight())
	})

	t.Run("empty checkpoint table", func(t *testing.T) {
		m := embeddedMapFS(t)
		m["regtest/checkpoints.json"] = &fstest.MapFile{Data: []byte(`{"checkpoints":[]}`)}

		r := newTestRegistry(t, WithAssets(m))
		table := r.ProfileFor(Regtest).Checkpoints()
		assert.Equal(t, 0, table.Len())
		assert.Equal(t, int32(0), table.HighestCheckpointHeight())
	})

	t.Run("checkpoints without genesis", func(t *testing.T) {
		m := embeddedMapFS(t)
		m["test/checkpoints.json"] = &fstest.MapFile{Data: []byte(`{"checkpoints":[
			{"height":10,"hash":"0000000000000000000000000000000000000000000000000000000000000001"}]}`)}

		r := newTestRegistry(t, WithAssets(m))
		table := r.ProfileFor(Testnet).Checkpoints()
		assert.Equal(t, 1, table.Len())
		assert.Equal(t, int32(10), table.HighestCheckpointHeight())

		_, ok := table.Lookup(0)
		assert.False(t, ok)
	})

	tests := []struct {
		name string
		file string
		data string
	}{
		{"checkpoint 0 is not genesis", "main/checkpoints.json", `{"checkpoints":[{"height":0,"hash":"00"}]}`},
		{"wrong genesis checkpoint", "test/checkpoints.json", `{"checkpoints":[{"height":0,"hash":"0000000000000000000000000000000000000000000000000000000000000001"}]}`},
		{"unordered checkpoints", "regtest/checkpoints.json", `{"checkpoints":[{"height":5,"hash":"01"},{"height":0,"hash":"02"}]}`},
		{"broken json", "main/seeds.json", `{"seeds":[`},
		{"short seed address", "test/seeds.json", `{"seeds":[{"addr":"7f000001","port":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := embeddedMapFS(t)
			m[tt.file] = &fstest.MapFile{Data: []byte(tt.data)}

			requirePanicsWithCode(t, errors.ERR_CONFIGURATION, func() { newTestRegistry(t, WithAssets(m)) })
		})
	}

	t.Run("missing file", func(t *testing.T) {
		m := embeddedMapFS(t)
		delete(m, "main/checkpoints.json")

		requirePanicsWithCode(t, errors.ERR_CONFIGURATION, func() { newTestRegistry(t, WithAssets(m)) })
	})
}
