package chaincfg

import (
	"testing"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/examcoin/examd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mainCheckpoints() []Checkpoint {
	return []Checkpoint{
		{0, newHashFromStr("f820cab6fa2bf7503f0302e7fe2b41c410117f865556de7273d76eaf399d9b48")},
		{1000, newHashFromStr("bb8c23e3fae0baea38080315d85a022ada850139843cf4469ced5f0d36447a6c")},
		{5000, newHashFromStr("8317b1173e86e07b4205ad4ec56fb5e88d4ba0afa0c0476e17b0a42574a35d5a")},
		{6000, newHashFromStr("625191e9fcf36f5a1ec127b4661d18cec9ca2a21e85e6dec1a0a5cd4cc52e3bf")},
	}
}

func TestNewCheckpointTable(t *testing.T) {
	meta := CheckpointMeta{LastCheckpointTime: time.Unix(1523209806, 0), EstimatedTxPerDay: 750}

	table, err := NewCheckpointTable(mainCheckpoints(), meta)
	require.NoError(t, err)

	assert.Equal(t, 4, table.Len())
	assert.Equal(t, int32(6000), table.HighestCheckpointHeight())
	assert.Equal(t, meta, table.Meta())

	hash, ok := table.Lookup(1000)
	require.True(t, ok)
	assert.Equal(t, "bb8c23e3fae0baea38080315d85a022ada850139843cf4469ced5f0d36447a6c", hash.String())

	_, ok = table.Lookup(1001)
	assert.False(t, ok)

	cps := table.Checkpoints()
	require.Len(t, cps, 4)

	for i := 1; i < len(cps); i++ {
		assert.Greater(t, cps[i].Height, cps[i-1].Height)
	}
}

func TestNewCheckpointTableErrors(t *testing.T) {
	h := newHashFromStr("f820cab6fa2bf7503f0302e7fe2b41c410117f865556de7273d76eaf399d9b48")

	tests := []struct {
		name        string
		checkpoints []Checkpoint
	}{
		{"nil hash", []Checkpoint{{Height: 0}}},
		{"negative height", []Checkpoint{{Height: -1, Hash: h}}},
		{"duplicate height", []Checkpoint{{0, h}, {0, h}}},
		{"decreasing height", []Checkpoint{{0, h}, {10, h}, {5, h}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCheckpointTable(tt.checkpoints, CheckpointMeta{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
		})
	}
}

func TestEmptyCheckpointTable(t *testing.T) {
	table, err := NewCheckpointTable(nil, CheckpointMeta{})
	require.NoError(t, err)

	assert.Equal(t, 0, table.Len())
	assert.Equal(t, int32(0), table.HighestCheckpointHeight())
	assert.Empty(t, table.Checkpoints())

	_, ok := table.LatestCheckpoint()
	assert.False(t, ok)

	assert.True(t, table.CheckBlock(0, chainhash.Hash{}))
	assert.NoError(t, table.Validate(*genesisHash))
}

func TestCheckpointTableIsImmutable(t *testing.T) {
	input := mainCheckpoints()

	table, err := NewCheckpointTable(input, CheckpointMeta{})
	require.NoError(t, err)

	input[1].Hash[0] ^= 0xff

	out := table.Checkpoints()
	out[2].Hash[0] ^= 0xff
	out[3].Height = 1

	hash, ok := table.Lookup(1000)
	require.True(t, ok)
	assert.Equal(t, "bb8c23e3fae0baea38080315d85a022ada850139843cf4469ced5f0d36447a6c", hash.String())
	assert.Equal(t, "8317b1173e86e07b4205ad4ec56fb5e88d4ba0afa0c0476e17b0a42574a35d5a", table.Checkpoints()[2].Hash.String())
	assert.Equal(t, int32(6000), table.HighestCheckpointHeight())
}

func TestCheckBlock(t *testing.T) {
	table, err := NewCheckpointTable(mainCheckpoints(), CheckpointMeta{})
	require.NoError(t, err)

	good := *newHashFromStr("8317b1173e86e07b4205ad4ec56fb5e88d4ba0afa0c0476e17b0a42574a35d5a")
	bad := good
	bad[0] ^= 0x01

	assert.True(t, table.CheckBlock(5000, good))
	assert.False(t, table.CheckBlock(5000, bad))
	assert.True(t, table.CheckBlock(5001, bad), "no checkpoint at 5001")
}

func TestLastCheckpointBelow(t *testing.T) {
	table, err := NewCheckpointTable(mainCheckpoints(), CheckpointMeta{})
	require.NoError(t, err)

	tests := []struct {
		height   int32
		expected int32
		ok       bool
	}{
		{-1, 0, false},
		{0, 0, true},
		{999, 0, true},
		{1000, 1000, true},
		{5999, 5000, true},
		{100000, 6000, true},
	}

	for _, tt := range tests {
		cp, ok := table.LastCheckpointBelow(tt.height)
		require.Equal(t, tt.ok, ok, "height %d", tt.height)

		if ok {
			assert.Equal(t, tt.expected, cp.Height, "height %d", tt.height)
		}
	}

	latest, ok := table.LatestCheckpoint()
	require.True(t, ok)
	assert.Equal(t, int32(6000), latest.Height)
}

func TestCheckpointValidate(t *testing.T) {
	table, err := NewCheckpointTable(mainCheckpoints(), CheckpointMeta{})
	require.NoError(t, err)

	require.NoError(t, table.Validate(*genesisHash))

	err = table.Validate(chainhash.Hash{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfiguration))

	noGenesis, err := NewCheckpointTable(mainCheckpoints()[1:], CheckpointMeta{})
	require.NoError(t, err)
	assert.NoError(t, noGenesis.Validate(*genesisHash))
	assert.NoError(t, noGenesis.Validate(chainhash.Hash{}))
}

func TestGuessVerificationProgress(t *testing.T) {
	checkpointTime := time.Unix(1523209806, 0)
	table, err := NewCheckpointTable(mainCheckpoints(), CheckpointMeta{
		LastCheckpointTime:  checkpointTime,
		TxCountAtCheckpoint: 10000,
		EstimatedTxPerDay:   750,
	})
	require.NoError(t, err)

	t.Run("before the last checkpoint", func(t *testing.T) {
		now := checkpointTime.Add(48 * time.Hour)
		progress := table.GuessVerificationProgress(5000, checkpointTime, now)

		// 5000 cheap done, 5000 cheap + 2 days * 750 * 5 expensive left
		assert.InDelta(t, 5000.0/(5000.0+5000.0+7500.0), progress, 1e-9)
	})

	t.Run("after the last checkpoint", func(t *testing.T) {
		tip := checkpointTime.Add(24 * time.Hour)
		now := tip.Add(24 * time.Hour)
		progress := table.GuessVerificationProgress(10750, tip, now)

		before := 10000.0 + 750.0*5
		after := 750.0 * 5
		assert.InDelta(t, before/(before+after), progress, 1e-9)
	})

	t.Run("synced", func(t *testing.T) {
		progress := table.GuessVerificationProgress(10750, checkpointTime, checkpointTime)
		assert.InDelta(t, 1.0, progress, 1e-9)
	})

	t.Run("empty chain", func(t *testing.T) {
		empty, err := NewCheckpointTable(nil, CheckpointMeta{})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, empty.GuessVerificationProgress(0, time.Time{}, time.Time{}), 1e-9)
	})
}
