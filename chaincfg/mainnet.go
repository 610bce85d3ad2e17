package chaincfg

import (
	"io/fs"
	"math/big"
	"time"
)

var (
	bigOne = big.NewInt(1)

	// maxUint256 is ~uint256(0).
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 256), bigOne)

	// mainPowLimit is the highest proof of work value a block can have on
	// the main network. It is the value 2^236 - 1.
	mainPowLimit = new(big.Int).Rsh(maxUint256, 20)

	// regressionPowLimit is the highest proof of work value a block can have
	// on the regression test network. It is the value 2^255 - 1.
	regressionPowLimit = new(big.Int).Rsh(maxUint256, 1)
)

const governanceKey = "04fb8eae43c01b0d10a0b1ac58c4f37019c92d51ff02596966c3423fbd1d2d39" +
	"4917dffe0b2b1727cedf43c48a5645ae39086c43e7e05865c8b62299472e4a5a25"

// buildContext carries what profile construction reads from outside: the data
// assets and the clock and randomness used to age fixed seeds.
type buildContext struct {
	assets fs.FS
	now    time.Time
	rng    RandSource
}

func (bc buildContext) fixedSeeds(dir string) ([]SeedSpec, error) {
	return loadSeeds(bc.assets, dir)
}

func newMainParams(bc buildContext) (*Params, error) {
	p := &Params{
		kind:         Main,
		messageStart: [4]byte{0xc1, 0xf4, 0xa7, 0xd6},
		defaultPort:  36003,
		alertPubKey:  cloneBytes(genesisPubKey),
		consensus: ConsensusParams{
			PowLimit:                    new(big.Int).Set(mainPowLimit),
			SubsidyHalvingInterval:      94_000_000,
			EnforceBlockUpgradeMajority: 750,
			RejectBlockOutdatedMajority: 950,
			ToCheckBlockUpgradeMajority: 1000,
			TargetTimespan:              10 * time.Minute,
			TargetSpacing:               1 * time.Minute,
			MinerThreads:                0,
		},
		dnsSeeds: []DNSSeed{
			{Name: "178.57.222.93", Host: "178.57.222.93"},
			{Name: "185.22.232.214", Host: "185.22.232.214"},
			{Name: "185.87.194.191", Host: "185.87.194.191"},
			{Name: "185.87.194.192", Host: "185.87.194.192"},
		},
		base58Prefixes: Base58Prefixes{
			PubKeyAddress: []byte{33},
			ScriptAddress: []byte{118},
			SecretKey:     []byte{117},
			ExtPublicKey:  []byte{0x04, 0x88, 0xB2, 0x1E},
			ExtSecretKey:  []byte{0x04, 0x88, 0xAD, 0xE4},
		},
		flags: Flags{
			RequireRPCPassword:            true,
			MiningRequiresPeers:           true,
			AllowMinDifficultyBlocks:      false,
			DefaultConsistencyChecks:      false,
			RequireStandard:               true,
			MineBlocksOnDemand:            false,
			SkipProofOfWorkCheck:          false,
			TestnetToBeDeprecatedFieldRPC: false,
		},
		governance: GovernanceParams{
			SporkPubKey:              governanceKey,
			MasternodePaymentsPubKey: governanceKey,
			PoolDummyAddress:         "Pq19GqFvajRrEdDHYRKGYjTsQfpV5jyipF",
			StartMasternodePayments:  time.Unix(1403728576, 0), // Wed, 25 Jun 2014 20:36:16 GMT
			PoolMaxTransactions:      3,
		},
	}

	p.genesisBlock, p.genesisHash, p.genesisMerkleRoot = mustBuildGenesis(genesisSpec, p.consensus.PowLimit, genesisHash, genesisMerkleRoot)

	if err := p.loadCheckpoints(bc, "main"); err != nil {
		return nil, err
	}

	seeds, err := bc.fixedSeeds("main")
	if err != nil {
		return nil, err
	}

	p.fixedSeeds = ConvertSeeds(seeds, bc.now, bc.rng)

	return p, nil
}

func (p *Params) loadCheckpoints(bc buildContext, dir string) error {
	table, err := loadCheckpoints(bc.assets, dir)
	if err != nil {
		return err
	}

	if err = table.Validate(p.genesisHash); err != nil {
		return err
	}

	p.checkpoints = table

	return nil
}
