package chaincfg

import (
	"encoding/binary"
	"math/big"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-wire"
)

// ConsensusParams holds the proof-of-work and upgrade-voting rules of a
// network.
type ConsensusParams struct {
	// PowLimit is the highest proof-of-work target a block may have.
	PowLimit *big.Int

	// SubsidyHalvingInterval is the number of blocks between block reward
	// halvings.
	SubsidyHalvingInterval int32

	// EnforceBlockUpgradeMajority is the number of blocks, out of the last
	// ToCheckBlockUpgradeMajority, that must signal a new version before it
	// is enforced for blocks of that version.
	EnforceBlockUpgradeMajority int32

	// RejectBlockOutdatedMajority is the number of blocks, out of the last
	// ToCheckBlockUpgradeMajority, that must signal a new version before
	// blocks with an older version are rejected.
	RejectBlockOutdatedMajority int32

	// ToCheckBlockUpgradeMajority is the size of the window the two
	// majorities above are counted in.
	ToCheckBlockUpgradeMajority int32

	TargetTimespan time.Duration
	TargetSpacing  time.Duration

	// MinerThreads is the default number of internal miner threads; 0 means
	// one per core.
	MinerThreads int
}

// Flags are the behavioral switches of a network.
type Flags struct {
	RequireRPCPassword            bool
	MiningRequiresPeers           bool
	AllowMinDifficultyBlocks      bool
	DefaultConsistencyChecks      bool
	RequireStandard               bool
	MineBlocksOnDemand            bool
	SkipProofOfWorkCheck          bool
	TestnetToBeDeprecatedFieldRPC bool
}

// GovernanceParams are the keys and limits used by sporks, masternode
// payments and the mixing pool.
type GovernanceParams struct {
	SporkPubKey              string
	MasternodePaymentsPubKey string
	PoolDummyAddress         string
	StartMasternodePayments  time.Time
	PoolMaxTransactions      int
}

// Base58Type selects one of the version prefixes of a network.
type Base58Type int

const (
	PubKeyAddress Base58Type = iota
	ScriptAddress
	SecretKey
	ExtPublicKey
	ExtSecretKey
)

func (t Base58Type) String() string {
	switch t {
	case PubKeyAddress:
		return "pubkey-address"
	case ScriptAddress:
		return "script-address"
	case SecretKey:
		return "secret-key"
	case ExtPublicKey:
		return "ext-public-key"
	case ExtSecretKey:
		return "ext-secret-key"
	default:
		return "unknown"
	}
}

// Base58Prefixes are the version bytes prepended to base58check payloads.
type Base58Prefixes struct {
	PubKeyAddress []byte
	ScriptAddress []byte
	SecretKey     []byte
	ExtPublicKey  []byte
	ExtSecretKey  []byte
}

func (b Base58Prefixes) clone() Base58Prefixes {
	return Base58Prefixes{
		PubKeyAddress: cloneBytes(b.PubKeyAddress),
		ScriptAddress: cloneBytes(b.ScriptAddress),
		SecretKey:     cloneBytes(b.SecretKey),
		ExtPublicKey:  cloneBytes(b.ExtPublicKey),
		ExtSecretKey:  cloneBytes(b.ExtSecretKey),
	}
}

// DNSSeed is a seed queried for peer addresses during bootstrap.
type DNSSeed struct {
	Name string
	Host string
}

// String returns the host of the seed.
func (d DNSSeed) String() string {
	return d.Host
}

// Params defines a network by its parameters. Every accessor returns a value
// or a copy, so a Params can be shared freely and never changes once built.
// The only exception is the UnitTest profile, which is modified through the
// UnitTestOverrides handle owned by the Registry.
type Params struct {
	kind         NetworkKind
	messageStart [4]byte
	defaultPort  uint16
	alertPubKey  []byte

	consensus ConsensusParams

	genesisBlock      *wire.MsgBlock
	genesisHash       chainhash.Hash
	genesisMerkleRoot chainhash.Hash

	checkpoints *CheckpointTable

	dnsSeeds   []DNSSeed
	fixedSeeds []*wire.NetAddress

	base58Prefixes Base58Prefixes
	flags          Flags
	governance     GovernanceParams

	// overrides is only set on the UnitTest profile.
	overrides *UnitTestOverrides
}

// Kind returns the network kind of the profile.
func (p *Params) Kind() NetworkKind {
	return p.kind
}

// Name returns the network id, e.g. "main".
func (p *Params) Name() string {
	return p.kind.String()
}

// MessageStart returns the four magic bytes that open every P2P message.
func (p *Params) MessageStart() [4]byte {
	return p.messageStart
}

// Net returns the magic as go-wire frames it: the message start bytes read as
// a little-endian uint32.
func (p *Params) Net() wire.BitcoinNet {
	return wire.BitcoinNet(binary.LittleEndian.Uint32(p.messageStart[:]))
}

// DefaultPort returns the default P2P listening port.
func (p *Params) DefaultPort() uint16 {
	return p.defaultPort
}

// AlertPubKey returns the uncompressed public key that signs network alerts.
func (p *Params) AlertPubKey() []byte {
	return cloneBytes(p.alertPubKey)
}

// Consensus returns a copy of the consensus parameters.
func (p *Params) Consensus() ConsensusParams {
	c := p.consensus
	if c.PowLimit != nil {
		c.PowLimit = new(big.Int).Set(c.PowLimit)
	}

	return c
}

// PowLimitBits returns the proof-of-work limit in compact form.
func (p *Params) PowLimitBits() uint32 {
	return BigToCompact(p.consensus.PowLimit)
}

// DifficultyAdjustmentInterval returns the number of blocks between
// difficulty retargets.
func (p *Params) DifficultyAdjustmentInterval() int64 {
	if p.consensus.TargetSpacing <= 0 {
		return 0
	}

	return int64(p.consensus.TargetTimespan / p.consensus.TargetSpacing)
}

// GenesisBlock returns a deep copy of the genesis block.
func (p *Params) GenesisBlock() *wire.MsgBlock {
	return copyBlock(p.genesisBlock)
}

// GenesisHash returns the hash of the genesis block header.
func (p *Params) GenesisHash() chainhash.Hash {
	return p.genesisHash
}

// GenesisMerkleRoot returns the merkle root committed to by the genesis block.
func (p *Params) GenesisMerkleRoot() chainhash.Hash {
	return p.genesisMerkleRoot
}

// Checkpoints returns the checkpoint table of the network. The table is
// read-only and may be shared with other profiles.
func (p *Params) Checkpoints() *CheckpointTable {
	return p.checkpoints
}

// DNSSeeds returns the DNS seeds in the order they should be queried.
func (p *Params) DNSSeeds() []DNSSeed {
	seeds := make([]DNSSeed, len(p.dnsSeeds))
	copy(seeds, p.dnsSeeds)

	return seeds
}

// FixedSeeds returns copies of the hard-coded peer addresses, already given a
// last-seen time one to two weeks in the past.
func (p *Params) FixedSeeds() []*wire.NetAddress {
	seeds := make([]*wire.NetAddress, 0, len(p.fixedSeeds))
	for _, s := range p.fixedSeeds {
		seeds = append(seeds, copyNetAddress(s))
	}

	return seeds
}

// Base58Prefixes returns copies of all five version prefixes.
func (p *Params) Base58Prefixes() Base58Prefixes {
	return p.base58Prefixes.clone()
}

// Base58Prefix returns a copy of the prefix of type t, or nil for an unknown
// type.
func (p *Params) Base58Prefix(t Base58Type) []byte {
	switch t {
	case PubKeyAddress:
		return cloneBytes(p.base58Prefixes.PubKeyAddress)
	case ScriptAddress:
		return cloneBytes(p.base58Prefixes.ScriptAddress)
	case SecretKey:
		return cloneBytes(p.base58Prefixes.SecretKey)
	case ExtPublicKey:
		return cloneBytes(p.base58Prefixes.ExtPublicKey)
	case ExtSecretKey:
		return cloneBytes(p.base58Prefixes.ExtSecretKey)
	default:
		return nil
	}
}

// Flags returns the behavioral switches of the network.
func (p *Params) Flags() Flags {
	return p.flags
}

// Governance returns the spork, masternode and pool parameters.
func (p *Params) Governance() GovernanceParams {
	return p.governance
}

// IsMutable reports whether the profile accepts overrides. Only UnitTest does.
func (p *Params) IsMutable() bool {
	return p.overrides != nil
}

// clone returns an independent copy of p, used to derive one profile from
// another. The checkpoint table is shared since it is immutable.
func (p *Params) clone() *Params {
	c := *p
	c.alertPubKey = cloneBytes(p.alertPubKey)
	c.consensus = p.Consensus()
	c.genesisBlock = copyBlock(p.genesisBlock)
	c.dnsSeeds = p.DNSSeeds()
	c.fixedSeeds = p.FixedSeeds()
	c.base58Prefixes = p.base58Prefixes.clone()
	c.overrides = nil

	return &c
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)

	return c
}

func copyNetAddress(na *wire.NetAddress) *wire.NetAddress {
	if na == nil {
		return nil
	}

	c := *na
	c.IP = cloneBytes(na.IP)

	return &c
}

func copyBlock(b *wire.MsgBlock) *wire.MsgBlock {
	if b == nil {
		return nil
	}

	c := &wire.MsgBlock{
		Header:       b.Header,
		Transactions: make([]*wire.MsgTx, 0, len(b.Transactions)),
	}

	for _, tx := range b.Transactions {
		c.Transactions = append(c.Transactions, tx.Copy())
	}

	return c
}
