package chaincfg

import (
	"bytes"
	"math/big"
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/bscript"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-wire"
	"github.com/examcoin/examd/errors"
)

// GenesisSpec holds the inputs the genesis block is built from.
type GenesisSpec struct {
	// TimestampMessage is embedded in the coinbase signature script.
	TimestampMessage string

	// CoinbaseScriptNum is the number pushed first in the coinbase signature
	// script, followed by the extra nonce 4 and the timestamp message.
	CoinbaseScriptNum int64

	// Reward is the coinbase output value in satoshis.
	Reward uint64

	// PayeeScript is the locking script of the coinbase output.
	PayeeScript []byte

	BlockTime time.Time
	Bits      uint32
	Nonce     uint32
	Version   int32
}

const genesisExtraNonce = 4

var (
	// genesisPubKey is the uncompressed key paid by the genesis coinbase. The
	// same key signs network alerts.
	genesisPubKey = mustDecodeHex("04dad0fe35a7c4eff69a85b35bf29a41771ec306a3feed898209ab4b6c551ff0" +
		"82b3f4485e9f3720287540601659cc2a84af51c51a9a84cf0f309382e9fd1bbabe")

	// genesisSpec is shared by every network.
	genesisSpec = GenesisSpec{
		TimestampMessage:  "Examination 08/04/2018 coin for study",
		CoinbaseScriptNum: 486604799,
		Reward:            120 * 100_000_000,
		PayeeScript:       PayToPubKeyScript(genesisPubKey),
		BlockTime:         time.Unix(1523209806, 0),
		Bits:              0x1e0ffff0,
		Nonce:             5717343,
		Version:           1,
	}

	genesisHash       = newHashFromStr("f820cab6fa2bf7503f0302e7fe2b41c410117f865556de7273d76eaf399d9b48")
	genesisMerkleRoot = newHashFromStr("f618e18ca2ab3601ad49a9824e26a0c52b6b006f7d5dde016ea58abd519599d9")
)

// PayToPubKeyScript returns the script <pubKey> OP_CHECKSIG.
func PayToPubKeyScript(pubKey []byte) []byte {
	s := &bscript.Script{}
	_ = s.AppendPushData(pubKey)
	_ = s.AppendOpcodes(bscript.OpCHECKSIG)

	return *s
}

// BuildGenesisBlock builds the genesis block described by spec. It returns the
// block together with its header hash and merkle root.
//
// The block holds a single coinbase transaction with one input spending the
// null outpoint and one output paying spec.Reward to spec.PayeeScript.
func BuildGenesisBlock(spec GenesisSpec) (*wire.MsgBlock, chainhash.Hash, chainhash.Hash, error) {
	coinbase, err := buildGenesisCoinbase(spec)
	if err != nil {
		return nil, chainhash.Hash{}, chainhash.Hash{}, err
	}

	msgTx := &wire.MsgTx{}
	if err = msgTx.Deserialize(bytes.NewReader(coinbase.Bytes())); err != nil {
		return nil, chainhash.Hash{}, chainhash.Hash{}, errors.NewProcessingError("failed to decode genesis coinbase", err)
	}

	merkleRoot := BuildMerkleRoot([]chainhash.Hash{msgTx.TxHash()})

	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    spec.Version,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: merkleRoot,
			Timestamp:  time.Unix(spec.BlockTime.Unix(), 0),
			Bits:       spec.Bits,
			Nonce:      spec.Nonce,
		},
		Transactions: []*wire.MsgTx{msgTx},
	}

	return block, block.Header.BlockHash(), merkleRoot, nil
}

func buildGenesisCoinbase(spec GenesisSpec) (*bt.Tx, error) {
	if len(spec.PayeeScript) == 0 {
		return nil, errors.NewInvalidArgumentError("genesis payee script is empty")
	}

	sigScript := &bscript.Script{}
	if err := sigScript.AppendPushData(scriptNum(spec.CoinbaseScriptNum)); err != nil {
		return nil, errors.NewProcessingError("failed to push coinbase script number", err)
	}

	if err := sigScript.AppendPushData(scriptNum(genesisExtraNonce)); err != nil {
		return nil, errors.NewProcessingError("failed to push coinbase extra nonce", err)
	}

	if err := sigScript.AppendPushData([]byte(spec.TimestampMessage)); err != nil {
		return nil, errors.NewProcessingError("failed to push coinbase timestamp message", err)
	}

	input := &bt.Input{
		PreviousTxOutIndex: 0xffffffff,
		SequenceNumber:     0xffffffff,
		UnlockingScript:    sigScript,
	}

	if err := input.PreviousTxIDAdd(&chainhash.Hash{}); err != nil {
		return nil, errors.NewProcessingError("failed to set coinbase outpoint", err)
	}

	tx := bt.NewTx()
	tx.Version = 1
	tx.Inputs = append(tx.Inputs, input)

	payee := bscript.Script(append([]byte(nil), spec.PayeeScript...))
	tx.AddOutput(&bt.Output{
		Satoshis:      spec.Reward,
		LockingScript: &payee,
	})

	return tx, nil
}

// scriptNum encodes n the way script numbers are serialized: little-endian,
// minimal length, with the sign in the high bit of the last byte.
func scriptNum(n int64) []byte {
	if n == 0 {
		return []byte{}
	}

	negative := n < 0

	abs := uint64(n)
	if negative {
		abs = uint64(-n)
	}

	var result []byte
	for abs > 0 {
		result = append(result, byte(abs&0xff))
		abs >>= 8
	}

	if result[len(result)-1]&0x80 != 0 {
		extra := byte(0x00)
		if negative {
			extra = 0x80
		}

		result = append(result, extra)
	} else if negative {
		result[len(result)-1] |= 0x80
	}

	return result
}

// mustBuildGenesis builds the genesis block from spec and checks it against
// the hard-coded hash and merkle root. The header hash and merkle root are
// recomputed from the block itself, independently of the builder's result. A
// mismatch means the compiled-in constants are wrong, so it panics.
func mustBuildGenesis(spec GenesisSpec, powLimit *big.Int, wantHash, wantMerkleRoot *chainhash.Hash) (*wire.MsgBlock, chainhash.Hash, chainhash.Hash) {
	block, hash, merkleRoot, err := BuildGenesisBlock(spec)
	if err != nil {
		panic(errors.NewConfigurationError("failed to build genesis block", err))
	}

	if err = VerifyGenesisBlock(block, powLimit, wantHash, wantMerkleRoot); err != nil {
		panic(err)
	}

	return block, hash, merkleRoot
}

// VerifyGenesisBlock checks that block is a well formed genesis block whose
// header hashes to wantHash and whose transactions give wantMerkleRoot. The
// target encoded in the header must not exceed the proof-of-work limit.
func VerifyGenesisBlock(block *wire.MsgBlock, powLimit *big.Int, wantHash, wantMerkleRoot *chainhash.Hash) error {
	if block == nil || len(block.Transactions) != 1 {
		return errors.NewConfigurationError("genesis block must hold exactly one transaction")
	}

	if !block.Header.PrevBlock.IsEqual(&chainhash.Hash{}) {
		return errors.NewConfigurationError("genesis block must not have a parent, got %s", block.Header.PrevBlock)
	}

	var buf bytes.Buffer
	if err := block.Transactions[0].Serialize(&buf); err != nil {
		return errors.NewConfigurationError("failed to serialize genesis coinbase", err)
	}

	merkleRoot := BuildMerkleRoot([]chainhash.Hash{chainhash.DoubleHashH(buf.Bytes())})
	if !merkleRoot.IsEqual(wantMerkleRoot) {
		return errors.NewConfigurationError("genesis merkle root mismatch: computed %s, expected %s", merkleRoot, wantMerkleRoot)
	}

	if !block.Header.MerkleRoot.IsEqual(&merkleRoot) {
		return errors.NewConfigurationError("genesis header merkle root %s does not commit to its coinbase %s", block.Header.MerkleRoot, merkleRoot)
	}

	buf.Reset()

	if err := block.Header.Serialize(&buf); err != nil {
		return errors.NewConfigurationError("failed to serialize genesis header", err)
	}

	hash := chainhash.DoubleHashH(buf.Bytes())
	if !hash.IsEqual(wantHash) {
		return errors.NewConfigurationError("genesis hash mismatch: computed %s, expected %s", hash, wantHash)
	}

	target := CompactToBig(block.Header.Bits)
	if target.Sign() <= 0 || powLimit == nil || target.Cmp(powLimit) > 0 {
		return errors.NewConfigurationError("genesis target %08x is above the proof-of-work limit %08x", block.Header.Bits, BigToCompact(powLimit))
	}

	return nil
}
