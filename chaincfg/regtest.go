package chaincfg

import (
	"math/big"
	"time"
)

// newRegtestParams derives the regression test network from testnet. It has
// no seeds and a trivial proof-of-work limit.
func newRegtestParams(testnet *Params, bc buildContext) (*Params, error) {
	p := testnet.clone()

	p.kind = Regtest
	p.messageStart = [4]byte{0xad, 0xb7, 0x31, 0xdf}
	p.defaultPort = 37106

	p.consensus.PowLimit = new(big.Int).Set(regressionPowLimit)
	p.consensus.SubsidyHalvingInterval = 150
	p.consensus.EnforceBlockUpgradeMajority = 750
	p.consensus.RejectBlockOutdatedMajority = 950
	p.consensus.ToCheckBlockUpgradeMajority = 1000
	p.consensus.MinerThreads = 1
	p.consensus.TargetTimespan = 10 * time.Minute
	p.consensus.TargetSpacing = 1 * time.Minute

	p.genesisBlock, p.genesisHash, p.genesisMerkleRoot = mustBuildGenesis(genesisSpec, p.consensus.PowLimit, genesisHash, genesisMerkleRoot)

	p.dnsSeeds = nil
	p.fixedSeeds = nil

	p.flags.RequireRPCPassword = false
	p.flags.MiningRequiresPeers = false
	p.flags.AllowMinDifficultyBlocks = true
	p.flags.DefaultConsistencyChecks = true
	p.flags.RequireStandard = false
	p.flags.MineBlocksOnDemand = true
	p.flags.TestnetToBeDeprecatedFieldRPC = false

	if err := p.loadCheckpoints(bc, "regtest"); err != nil {
		return nil, err
	}

	return p, nil
}
