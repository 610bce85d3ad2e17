package chaincfg

import (
	"encoding/hex"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/examcoin/examd/errors"
)

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash. It panics on error since it is only called with
// hard-coded hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(errors.NewConfigurationError("invalid hard-coded hash %q", hexStr, err))
	}

	return hash
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(errors.NewConfigurationError("invalid hard-coded hex %q", s, err))
	}

	return b
}
