package chaincfg

import (
	"math/big"
	"testing"
	"time"

	"github.com/bsv-blockchain/go-wire"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkProfiles(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		kind         NetworkKind
		magic        [4]byte
		net          wire.BitcoinNet
		port         uint16
		powLimitBits uint32
		halving      int32
		majorities   [3]int32
		retarget     int64
		pubKeyPrefix byte
		requireStd   bool
		onDemand     bool
		dnsSeeds     int
		fixedSeeds   int
	}{
		{Main, [4]byte{0xc1, 0xf4, 0xa7, 0xd6}, 0xd6a7f4c1, 36003, 0x1e0fffff, 94_000_000, [3]int32{750, 950, 1000}, 10, 33, true, false, 4, 4},
		{Testnet, [4]byte{0xd4, 0xc3, 0x18, 0x5e}, 0x5e18c3d4, 36005, 0x1e0fffff, 94_000_000, [3]int32{51, 75, 100}, 5, 111, false, false, 0, 0},
		{Regtest, [4]byte{0xad, 0xb7, 0x31, 0xdf}, 0xdf31b7ad, 37106, 0x207fffff, 150, [3]int32{750, 950, 1000}, 10, 111, false, true, 0, 0},
		{UnitTest, unitTestMessageStart, 0x2c9ae1fb, 18445, 0x1e0fffff, 94_000_000, [3]int32{750, 950, 1000}, 10, 33, true, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			p := r.ProfileFor(tt.kind)

			assert.Equal(t, tt.kind, p.Kind())
			assert.Equal(t, tt.kind.String(), p.Name())
			assert.Equal(t, tt.magic, p.MessageStart())
			assert.Equal(t, tt.net, p.Net())
			assert.Equal(t, tt.port, p.DefaultPort())
			assert.Equal(t, tt.powLimitBits, p.PowLimitBits())

			c := p.Consensus()
			assert.Equal(t, tt.halving, c.SubsidyHalvingInterval)
			assert.Equal(t, tt.majorities, [3]int32{c.EnforceBlockUpgradeMajority, c.RejectBlockOutdatedMajority, c.ToCheckBlockUpgradeMajority})
			assert.Equal(t, tt.retarget, p.DifficultyAdjustmentInterval())

			assert.Equal(t, []byte{tt.pubKeyPrefix}, p.Base58Prefix(PubKeyAddress))
			assert.Equal(t, tt.requireStd, p.Flags().RequireStandard)
			assert.Equal(t, tt.onDemand, p.Flags().MineBlocksOnDemand)
			assert.Len(t, p.DNSSeeds(), tt.dnsSeeds)
			assert.Len(t, p.FixedSeeds(), tt.fixedSeeds)

			assert.Equal(t, "f820cab6fa2bf7503f0302e7fe2b41c410117f865556de7273d76eaf399d9b48", p.GenesisHash().String())
			assert.Equal(t, "f618e18ca2ab3601ad49a9824e26a0c52b6b006f7d5dde016ea58abd519599d9", p.GenesisMerkleRoot().String())
			assert.Equal(t, p.GenesisHash(), p.GenesisBlock().BlockHash())

			genesisCheckpoint, ok := p.Checkpoints().Lookup(0)
			require.True(t, ok)
			assert.Equal(t, p.GenesisHash(), genesisCheckpoint)

			require.NoError(t, VerifyGenesisBlock(p.GenesisBlock(), p.Consensus().PowLimit, genesisHash, genesisMerkleRoot))
		})
	}
}

func TestMainProfileDetails(t *testing.T) {
	p := newTestRegistry(t).ProfileFor(Main)

	assert.Equal(t, Base58Prefixes{
		PubKeyAddress: []byte{33},
		ScriptAddress: []byte{118},
		SecretKey:     []byte{117},
		ExtPublicKey:  []byte{0x04, 0x88, 0xB2, 0x1E},
		ExtSecretKey:  []byte{0x04, 0x88, 0xAD, 0xE4},
	}, p.Base58Prefixes())

	assert.Equal(t, 10*time.Minute, p.Consensus().TargetTimespan)
	assert.Equal(t, time.Minute, p.Consensus().TargetSpacing)
	assert.Equal(t, genesisPubKey, p.AlertPubKey())
	assert.Equal(t, 3, p.Governance().PoolMaxTransactions)
	assert.Equal(t, int32(6000), p.Checkpoints().HighestCheckpointHeight())
	assert.Equal(t, "178.57.222.93", p.DNSSeeds()[0].String())

	for _, na := range p.FixedSeeds() {
		assert.Equal(t, uint16(36003), na.Port)
		assert.Equal(t, wire.SFNodeNetwork, na.Services)
		assert.True(t, na.Timestamp.Before(testNow.Add(-oneWeek)))
	}

	assert.Nil(t, p.Base58Prefix(Base58Type(42)))
	assert.False(t, p.IsMutable())
}

func TestTestnetAndRegtestCheckpointsStartAtGenesis(t *testing.T) {
	r := newTestRegistry(t)

	for _, kind := range []NetworkKind{Testnet, Regtest} {
		cps := r.ProfileFor(kind).Checkpoints()
		assert.Equal(t, 1, cps.Len(), kind.String())
		assert.Equal(t, int32(0), cps.HighestCheckpointHeight(), kind.String())
	}

	// unit test shares main's table
	assert.Same(t, r.ProfileFor(Main).Checkpoints(), r.ProfileFor(UnitTest).Checkpoints())
}

func TestParamsAccessorsReturnCopies(t *testing.T) {
	p := newTestRegistry(t).ProfileFor(Main)

	c := p.Consensus()
	c.PowLimit.SetInt64(1)
	c.SubsidyHalvingInterval = 1
	assert.Equal(t, uint32(0x1e0fffff), p.PowLimitBits())
	assert.Equal(t, int32(94_000_000), p.Consensus().SubsidyHalvingInterval)

	prefixes := p.Base58Prefixes()
	prefixes.PubKeyAddress[0] = 0
	assert.Equal(t, []byte{33}, p.Base58Prefix(PubKeyAddress))

	prefix := p.Base58Prefix(ExtPublicKey)
	prefix[0] = 0xff
	assert.Equal(t, byte(0x04), p.Base58Prefix(ExtPublicKey)[0])

	key := p.AlertPubKey()
	key[0] = 0
	assert.Equal(t, byte(0x04), p.AlertPubKey()[0])

	seeds := p.DNSSeeds()
	seeds[0].Host = "evil.example"
	assert.Equal(t, "178.57.222.93", p.DNSSeeds()[0].Host)

	fixed := p.FixedSeeds()
	fixed[0].IP[15] = 0
	fixed[0].Port = 1
	assert.Equal(t, byte(0x5d), p.FixedSeeds()[0].IP[15])
	assert.Equal(t, uint16(36003), p.FixedSeeds()[0].Port)

	block := p.GenesisBlock()
	block.Header.Nonce++
	block.Transactions[0].TxOut[0].Value = 0
	block.Transactions[0].TxIn[0].SignatureScript[0] = 0

	assert.Equal(t, p.GenesisHash(), p.GenesisBlock().BlockHash())
	assert.Equal(t, int64(genesisSpec.Reward), p.GenesisBlock().Transactions[0].TxOut[0].Value)
	assert.Equal(t, byte(0x04), p.GenesisBlock().Transactions[0].TxIn[0].SignatureScript[0])
}

func TestDerivedProfilesDoNotAliasParent(t *testing.T) {
	r := newTestRegistry(t)

	mainParams := r.ProfileFor(Main)
	regtest := r.ProfileFor(Regtest)

	bigComparer := cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })

	diff := cmp.Diff(mainParams.Consensus(), regtest.Consensus(), bigComparer)
	assert.NotEmpty(t, diff, "regtest changes consensus")

	r.Select(UnitTest)
	r.Overrides().SetEnforceBlockUpgradeMajority(1)

	assert.Equal(t, int32(750), mainParams.Consensus().EnforceBlockUpgradeMajority)
	assert.Empty(t, cmp.Diff(mainPowLimit, mainParams.Consensus().PowLimit, bigComparer))
}
