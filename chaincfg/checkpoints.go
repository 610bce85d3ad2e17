package chaincfg

import (
	"sort"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/examcoin/examd/errors"
)

// sigCheckVerificationFactor is how much more expensive it is to verify a
// transaction after the last checkpoint than before it, where signature
// checks are skipped.
const sigCheckVerificationFactor = 5.0

// Checkpoint identifies a known good point in the block chain. Using
// checkpoints allows a few optimizations for old blocks during initial download
// and also prevents forks from old blocks.
type Checkpoint struct {
	Height int32
	Hash   *chainhash.Hash
}

// CheckpointMeta describes the chain at the last checkpoint. It is used to
// estimate sync progress.
type CheckpointMeta struct {
	// LastCheckpointTime is the timestamp of the last checkpointed block.
	LastCheckpointTime time.Time

	// TxCountAtCheckpoint is the total number of transactions between
	// genesis and the last checkpoint.
	TxCountAtCheckpoint uint64

	// EstimatedTxPerDay is the expected number of transactions per day after
	// the last checkpoint.
	EstimatedTxPerDay float64
}

// CheckpointTable is an ordered, immutable set of checkpoints. It is safe for
// concurrent use and may be shared between profiles.
type CheckpointTable struct {
	checkpoints []Checkpoint
	byHeight    map[int32]chainhash.Hash
	meta        CheckpointMeta
}

// NewCheckpointTable validates and copies checkpoints. Heights must be
// non-negative and strictly increasing, and every checkpoint needs a hash.
func NewCheckpointTable(checkpoints []Checkpoint, meta CheckpointMeta) (*CheckpointTable, error) {
	t := &CheckpointTable{
		checkpoints: make([]Checkpoint, 0, len(checkpoints)),
		byHeight:    make(map[int32]chainhash.Hash, len(checkpoints)),
		meta:        meta,
	}

	for i, cp := range checkpoints {
		if cp.Hash == nil {
			return nil, errors.NewInvalidArgumentError("checkpoint at height %d has no hash", cp.Height)
		}

		if cp.Height < 0 {
			return nil, errors.NewInvalidArgumentError("checkpoint height %d is negative", cp.Height)
		}

		if i > 0 && cp.Height <= checkpoints[i-1].Height {
			return nil, errors.NewInvalidArgumentError("checkpoint heights must be strictly increasing: %d follows %d", cp.Height, checkpoints[i-1].Height)
		}

		hash := *cp.Hash
		t.checkpoints = append(t.checkpoints, Checkpoint{Height: cp.Height, Hash: &hash})
		t.byHeight[cp.Height] = hash
	}

	return t, nil
}

// Len returns the number of checkpoints.
func (t *CheckpointTable) Len() int {
	return len(t.checkpoints)
}

// Lookup returns the checkpointed hash at height.
func (t *CheckpointTable) Lookup(height int32) (chainhash.Hash, bool) {
	hash, ok := t.byHeight[height]
	return hash, ok
}

// HighestCheckpointHeight returns the height of the last checkpoint, or 0 for
// an empty table.
func (t *CheckpointTable) HighestCheckpointHeight() int32 {
	if len(t.checkpoints) == 0 {
		return 0
	}

	return t.checkpoints[len(t.checkpoints)-1].Height
}

// LatestCheckpoint returns the checkpoint with the greatest height.
func (t *CheckpointTable) LatestCheckpoint() (Checkpoint, bool) {
	if len(t.checkpoints) == 0 {
		return Checkpoint{}, false
	}

	last := t.checkpoints[len(t.checkpoints)-1]
	hash := *last.Hash

	return Checkpoint{Height: last.Height, Hash: &hash}, true
}

// LastCheckpointBelow returns the highest checkpoint at or below height.
func (t *CheckpointTable) LastCheckpointBelow(height int32) (Checkpoint, bool) {
	i := sort.Search(len(t.checkpoints), func(i int) bool {
		return t.checkpoints[i].Height > height
	})
	if i == 0 {
		return Checkpoint{}, false
	}

	cp := t.checkpoints[i-1]
	hash := *cp.Hash

	return Checkpoint{Height: cp.Height, Hash: &hash}, true
}

// Checkpoints returns a copy of all checkpoints in ascending height order.
func (t *CheckpointTable) Checkpoints() []Checkpoint {
	out := make([]Checkpoint, 0, len(t.checkpoints))

	for _, cp := range t.checkpoints {
		hash := *cp.Hash
		out = append(out, Checkpoint{Height: cp.Height, Hash: &hash})
	}

	return out
}

// Meta returns the statistics recorded at the last checkpoint.
func (t *CheckpointTable) Meta() CheckpointMeta {
	return t.meta
}

// CheckBlock reports whether a block at height with the given hash is
// consistent with the table. It is false only when a checkpoint exists at
// height and its hash differs.
func (t *CheckpointTable) CheckBlock(height int32, hash chainhash.Hash) bool {
	want, ok := t.byHeight[height]
	if !ok {
		return true
	}

	return want.IsEqual(&hash)
}

// Validate checks that a checkpoint at height 0, if the table has one, is the
// genesis block.
func (t *CheckpointTable) Validate(genesisHash chainhash.Hash) error {
	want, ok := t.byHeight[0]
	if !ok {
		return nil
	}

	if !want.IsEqual(&genesisHash) {
		return errors.NewConfigurationError("checkpoint at height 0 is %s, genesis is %s", want, genesisHash)
	}

	return nil
}

// GuessVerificationProgress estimates how far a node that has processed
// chainTxCount transactions, with its tip at tipTime, is through verifying the
// chain at now. Work before the last checkpoint is counted as cheap, work after
// it as sigCheckVerificationFactor times more expensive. The result is in [0, 1].
func (t *CheckpointTable) GuessVerificationProgress(chainTxCount uint64, tipTime, now time.Time) float64 {
	var (
		cheapBefore, expensiveBefore float64
		cheapAfter, expensiveAfter   float64
	)

	days := func(from time.Time) float64 {
		d := now.Sub(from).Hours() / 24
		if d < 0 {
			return 0
		}

		return d
	}

	lastTx := t.meta.TxCountAtCheckpoint

	if chainTxCount <= lastTx {
		cheapBefore = float64(chainTxCount)
		cheapAfter = float64(lastTx - chainTxCount)
		expensiveAfter = days(t.meta.LastCheckpointTime) * t.meta.EstimatedTxPerDay
	} else {
		cheapBefore = float64(lastTx)
		expensiveBefore = float64(chainTxCount - lastTx)
		expensiveAfter = days(tipTime) * t.meta.EstimatedTxPerDay
	}

	workBefore := cheapBefore + expensiveBefore*sigCheckVerificationFactor
	workAfter := cheapAfter + expensiveAfter*sigCheckVerificationFactor

	if workBefore+workAfter == 0 {
		return 1
	}

	return workBefore / (workBefore + workAfter)
}
