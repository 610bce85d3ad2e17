package chaincfg

import (
	"testing"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/stretchr/testify/assert"
)

func leaf(start byte) chainhash.Hash {
	var h chainhash.Hash
	for i := range h {
		h[i] = start + byte(i)
	}

	return h
}

func TestBuildMerkleRoot(t *testing.T) {
	a, b, c := leaf(0), leaf(32), leaf(64)

	tests := []struct {
		name     string
		leaves   []chainhash.Hash
		expected string
	}{
		{"no leaves", nil, chainhash.Hash{}.String()},
		{"single leaf is its own root", []chainhash.Hash{a}, a.String()},
		{"two leaves", []chainhash.Hash{a, b}, "ef0339214e2c4c9e430157a6f56921fb6c89f2e20f40ebf46a1b0a7864f4c901"},
		{"odd level duplicates the last node", []chainhash.Hash{a, b, c}, "e590e31739b4cbdc586777c4680b715d1ddb387023f43fc4c1cb30885e9b6b0f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := BuildMerkleRoot(tt.leaves)
			assert.Equal(t, tt.expected, root.String())
		})
	}
}

func TestBuildMerkleRootDoesNotModifyInput(t *testing.T) {
	leaves := []chainhash.Hash{leaf(0), leaf(32), leaf(64)}
	before := append([]chainhash.Hash(nil), leaves...)

	_ = BuildMerkleRoot(leaves)

	assert.Equal(t, before, leaves)
}

func TestGenesisMerkleRootIsCoinbaseHash(t *testing.T) {
	block, _, root, err := BuildGenesisBlock(genesisSpec)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, block.Transactions[0].TxHash(), root)
}
