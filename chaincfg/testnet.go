package chaincfg

import (
	"time"
)

// newTestnetParams derives the public test network from main.
func newTestnetParams(main *Params, bc buildContext) (*Params, error) {
	p := main.clone()

	p.kind = Testnet
	p.messageStart = [4]byte{0xd4, 0xc3, 0x18, 0x5e}
	p.defaultPort = 36005

	p.consensus.EnforceBlockUpgradeMajority = 51
	p.consensus.RejectBlockOutdatedMajority = 75
	p.consensus.ToCheckBlockUpgradeMajority = 100
	p.consensus.MinerThreads = 0
	p.consensus.TargetTimespan = 10 * time.Minute
	p.consensus.TargetSpacing = 2 * time.Minute

	// the genesis block is the same as on main
	p.genesisBlock, p.genesisHash, p.genesisMerkleRoot = mustBuildGenesis(genesisSpec, p.consensus.PowLimit, genesisHash, genesisMerkleRoot)

	p.dnsSeeds = nil

	p.base58Prefixes = Base58Prefixes{
		PubKeyAddress: []byte{111},
		ScriptAddress: []byte{196},
		SecretKey:     []byte{239},
		ExtPublicKey:  []byte{0x04, 0x35, 0x87, 0xCF},
		ExtSecretKey:  []byte{0x04, 0x35, 0x83, 0x94},
	}

	p.flags = Flags{
		RequireRPCPassword:            true,
		MiningRequiresPeers:           true,
		AllowMinDifficultyBlocks:      true,
		DefaultConsistencyChecks:      false,
		RequireStandard:               false,
		MineBlocksOnDemand:            false,
		SkipProofOfWorkCheck:          false,
		TestnetToBeDeprecatedFieldRPC: true,
	}

	p.governance.PoolMaxTransactions = 2
	p.governance.PoolDummyAddress = "P1EZuxhhNMAUofTBEeLqGE1bJrpC2TWRNp"
	p.governance.StartMasternodePayments = time.Unix(1532947832, 0)

	if err := p.loadCheckpoints(bc, "test"); err != nil {
		return nil, err
	}

	seeds, err := bc.fixedSeeds("test")
	if err != nil {
		return nil, err
	}

	p.fixedSeeds = ConvertSeeds(seeds, bc.now, bc.rng)

	return p, nil
}
