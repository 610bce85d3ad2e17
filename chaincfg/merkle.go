package chaincfg

import (
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
)

// BuildMerkleRoot computes the merkle root of the given leaf hashes. Each level
// pairs adjacent nodes and hashes their concatenation with double SHA-256; a
// level with an odd number of nodes pairs the last node with itself. A single
// leaf is its own root and no leaves give the zero hash.
func BuildMerkleRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.Hash{}
	}

	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	var buf [chainhash.HashSize * 2]byte

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]chainhash.Hash, 0, len(level)/2)

		for i := 0; i < len(level); i += 2 {
			copy(buf[:chainhash.HashSize], level[i][:])
			copy(buf[chainhash.HashSize:], level[i+1][:])
			next = append(next, chainhash.DoubleHashH(buf[:]))
		}

		level = next
	}

	return level[0]
}
