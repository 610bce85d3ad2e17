package chaincfg

import (
	"embed"
	"encoding/hex"
	"io/fs"
	"path"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/examcoin/examd/errors"
	jsoniter "github.com/json-iterator/go"
)

//go:embed data
var embeddedData embed.FS

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	checkpointsFile = "checkpoints.json"
	seedsFile       = "seeds.json"
)

type checkpointsAsset struct {
	Checkpoints []struct {
		Height int32  `json:"height"`
		Hash   string `json:"hash"`
	} `json:"checkpoints"`
	LastCheckpointTime  int64   `json:"lastCheckpointTime"`
	TxCountAtCheckpoint uint64  `json:"txCountAtCheckpoint"`
	EstimatedTxPerDay   float64 `json:"estimatedTxPerDay"`
}

type seedsAsset struct {
	Seeds []struct {
		Addr string `json:"addr"`
		Port uint16 `json:"port"`
	} `json:"seeds"`
}

// defaultAssets returns the data compiled into the binary, rooted so that the
// main network's checkpoints live at main/checkpoints.json.
func defaultAssets() fs.FS {
	sub, err := fs.Sub(embeddedData, "data")
	if err != nil {
		panic(errors.NewConfigurationError("embedded chain data missing", err))
	}

	return sub
}

func loadCheckpoints(fsys fs.FS, dir string) (*CheckpointTable, error) {
	name := path.Join(dir, checkpointsFile)

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to read %s", name, err)
	}

	var asset checkpointsAsset
	if err = json.Unmarshal(b, &asset); err != nil {
		return nil, errors.NewConfigurationError("failed to parse %s", name, err)
	}

	checkpoints := make([]Checkpoint, 0, len(asset.Checkpoints))

	for _, cp := range asset.Checkpoints {
		hash, err := chainhash.NewHashFromStr(cp.Hash)
		if err != nil {
			return nil, errors.NewConfigurationError("%s: bad hash at height %d", name, cp.Height, err)
		}

		checkpoints = append(checkpoints, Checkpoint{Height: cp.Height, Hash: hash})
	}

	meta := CheckpointMeta{
		TxCountAtCheckpoint: asset.TxCountAtCheckpoint,
		EstimatedTxPerDay:   asset.EstimatedTxPerDay,
	}

	if asset.LastCheckpointTime != 0 {
		meta.LastCheckpointTime = time.Unix(asset.LastCheckpointTime, 0)
	}

	table, err := NewCheckpointTable(checkpoints, meta)
	if err != nil {
		return nil, errors.NewConfigurationError("%s: invalid checkpoints", name, err)
	}

	return table, nil
}

func loadSeeds(fsys fs.FS, dir string) ([]SeedSpec, error) {
	name := path.Join(dir, seedsFile)

	b, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.NewConfigurationError("failed to read %s", name, err)
	}

	var asset seedsAsset
	if err = json.Unmarshal(b, &asset); err != nil {
		return nil, errors.NewConfigurationError("failed to parse %s", name, err)
	}

	seeds := make([]SeedSpec, 0, len(asset.Seeds))

	for i, s := range asset.Seeds {
		addr, err := hex.DecodeString(s.Addr)
		if err != nil || len(addr) != 16 {
			return nil, errors.NewConfigurationError("%s: seed %d address %q is not 16 hex encoded bytes", name, i, s.Addr)
		}

		var spec SeedSpec

		copy(spec.Addr[:], addr)
		spec.Port = s.Port
		seeds = append(seeds, spec)
	}

	return seeds, nil
}
