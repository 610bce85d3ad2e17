package chaincfg

// unitTestMessageStart differs from main so that every network keeps a unique
// magic.
var unitTestMessageStart = [4]byte{0xfb, 0xe1, 0x9a, 0x2c}

// newUnitTestParams derives the unit test network from main. It shares main's
// checkpoints, has no seeds, and is the only profile with an override handle.
func newUnitTestParams(main *Params) *Params {
	p := main.clone()

	p.kind = UnitTest
	p.messageStart = unitTestMessageStart
	p.defaultPort = 18445

	p.dnsSeeds = nil
	p.fixedSeeds = nil

	p.flags.RequireRPCPassword = false
	p.flags.MiningRequiresPeers = false
	p.flags.DefaultConsistencyChecks = true
	p.flags.AllowMinDifficultyBlocks = false
	p.flags.MineBlocksOnDemand = true

	p.overrides = &UnitTestOverrides{params: p}

	return p
}

// UnitTestOverrides changes the bounded set of UnitTest parameters that tests
// are allowed to tune. Overrides are not synchronized: set them before any
// concurrent reader of the profile starts.
type UnitTestOverrides struct {
	params *Params
}

func (o *UnitTestOverrides) SetEnforceBlockUpgradeMajority(n int32) {
	o.params.consensus.EnforceBlockUpgradeMajority = n
}

func (o *UnitTestOverrides) SetRejectBlockOutdatedMajority(n int32) {
	o.params.consensus.RejectBlockOutdatedMajority = n
}

func (o *UnitTestOverrides) SetToCheckBlockUpgradeMajority(n int32) {
	o.params.consensus.ToCheckBlockUpgradeMajority = n
}

func (o *UnitTestOverrides) SetDefaultConsistencyChecks(enabled bool) {
	o.params.flags.DefaultConsistencyChecks = enabled
}

func (o *UnitTestOverrides) SetAllowMinDifficultyBlocks(enabled bool) {
	o.params.flags.AllowMinDifficultyBlocks = enabled
}

func (o *UnitTestOverrides) SetSkipProofOfWorkCheck(enabled bool) {
	o.params.flags.SkipProofOfWorkCheck = enabled
}
