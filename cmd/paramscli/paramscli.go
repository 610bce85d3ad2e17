// Package paramscli implements the "params" command of examd: it inspects and
// verifies the network parameter profiles compiled into the binary.
package paramscli

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/bsv-blockchain/go-wire"
	"github.com/examcoin/examd/address"
	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
	"github.com/examcoin/examd/p2p/bootstrap"
	"github.com/examcoin/examd/p2p/framing"
	"github.com/examcoin/examd/settings"
	"github.com/examcoin/examd/ulogger"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Deps are the collaborators of the command. Resolver may be nil to use the
// system resolver.
type Deps struct {
	Logger   ulogger.Logger
	Settings *settings.Settings
	Resolver bootstrap.Resolver
	Now      func() time.Time

	// Out receives the output of the standalone app. Defaults to stdout.
	Out io.Writer
}

type app struct {
	deps     Deps
	registry *chaincfg.Registry
	framer   *framing.Framer
}

// Command returns the "params" command with its subcommands.
func Command(deps Deps) *cli.Command {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	a := &app{deps: deps}

	return &cli.Command{
		Name:   "params",
		Usage:  "Inspect the network parameters",
		Before: a.before,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Usage: "network to use: main, test, regtest or unittest",
				Value: deps.Settings.Network,
			},
			&cli.BoolFlag{Name: "testnet", Usage: "use the test network"},
			&cli.BoolFlag{Name: "regtest", Usage: "use the regression test network"},
			&cli.BoolFlag{Name: "json", Usage: "print JSON"},
		},
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the parameters of the selected network",
				Action: a.show,
			},
			{
				Name:   "verify",
				Usage:  "Rebuild and check the genesis block and checkpoints of every network",
				Action: a.verify,
			},
			{
				Name:   "seeds",
				Usage:  "List bootstrap peers",
				Action: a.seeds,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dns", Usage: "also resolve the DNS seeds"},
				},
			},
			{
				Name:   "checkpoint",
				Usage:  "List checkpoints, or check a block against them",
				Action: a.checkpoint,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "height", Usage: "block height", Value: -1},
					&cli.StringFlag{Name: "hash", Usage: "block hash to check at --height"},
				},
			},
			{
				Name:   "magic",
				Usage:  "Print the message start bytes, or identify the network of some",
				Action: a.magic,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "identify", Usage: "hex encoded message start to look up"},
				},
			},
			{
				Name:   "address",
				Usage:  "Encode a public key hash, or decode an address",
				Action: a.address,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pubkey-hash", Usage: "hex encoded 20 byte hash to encode"},
					&cli.StringFlag{Name: "decode", Usage: "address or key to decode"},
				},
			},
		},
	}
}

// NewApp returns a standalone application running the params command.
func NewApp(deps Deps) *cli.App {
	cmd := Command(deps)

	return &cli.App{
		Name:        "paramscli",
		Usage:       cmd.Usage,
		Flags:       cmd.Flags,
		Before:      cmd.Before,
		Commands:    cmd.Subcommands,
		Writer:      deps.Out,
		HideVersion: true,
	}
}

func (a *app) before(c *cli.Context) error {
	fallback, err := chaincfg.ParseNetworkKind(c.String("network"))
	if err != nil {
		return err
	}

	kind, err := settings.NetworkFromFlags(c.Bool("testnet"), c.Bool("regtest"), fallback)
	if err != nil {
		return err
	}

	a.registry = chaincfg.NewRegistry(a.deps.Logger, chaincfg.WithSelectHook(func(p *chaincfg.Params) {
		if a.framer != nil {
			a.framer.Reconfigure(p)
		}
	}))
	a.framer = framing.NewFramer(a.registry.ProfileFor(kind))
	a.registry.Select(kind)

	return nil
}

type profileView struct {
	Network                 string         `json:"network"`
	MessageStart            string         `json:"messageStart"`
	Net                     uint32         `json:"net"`
	DefaultPort             uint16         `json:"defaultPort"`
	PowLimitBits            string         `json:"powLimitBits"`
	SubsidyHalvingInterval  int32          `json:"subsidyHalvingInterval"`
	EnforceMajority         int32          `json:"enforceBlockUpgradeMajority"`
	RejectMajority          int32          `json:"rejectBlockOutdatedMajority"`
	MajorityWindow          int32          `json:"toCheckBlockUpgradeMajority"`
	TargetTimespan          string         `json:"targetTimespan"`
	TargetSpacing           string         `json:"targetSpacing"`
	RetargetInterval        int64          `json:"difficultyAdjustmentInterval"`
	GenesisHash             string         `json:"genesisHash"`
	GenesisMerkleRoot       string         `json:"genesisMerkleRoot"`
	HighestCheckpointHeight int32          `json:"highestCheckpointHeight"`
	DNSSeeds                []string       `json:"dnsSeeds"`
	FixedSeeds              int            `json:"fixedSeeds"`
	PubKeyAddressPrefix     string         `json:"pubKeyAddressPrefix"`
	ScriptAddressPrefix     string         `json:"scriptAddressPrefix"`
	SecretKeyPrefix         string         `json:"secretKeyPrefix"`
	ExtPublicKeyPrefix      string         `json:"extPublicKeyPrefix"`
	ExtSecretKeyPrefix      string         `json:"extSecretKeyPrefix"`
	Flags                   chaincfg.Flags `json:"flags"`
}

func newProfileView(p *chaincfg.Params) profileView {
	magic := p.MessageStart()
	c := p.Consensus()
	prefixes := p.Base58Prefixes()

	dnsSeeds := make([]string, 0, len(p.DNSSeeds()))
	for _, s := range p.DNSSeeds() {
		dnsSeeds = append(dnsSeeds, s.Host)
	}

	return profileView{
		Network:                 p.Name(),
		MessageStart:            hex.EncodeToString(magic[:]),
		Net:                     uint32(p.Net()),
		DefaultPort:             p.DefaultPort(),
		PowLimitBits:            fmt.Sprintf("%08x", p.PowLimitBits()),
		SubsidyHalvingInterval:  c.SubsidyHalvingInterval,
		EnforceMajority:         c.EnforceBlockUpgradeMajority,
		RejectMajority:          c.RejectBlockOutdatedMajority,
		MajorityWindow:          c.ToCheckBlockUpgradeMajority,
		TargetTimespan:          c.TargetTimespan.String(),
		TargetSpacing:           c.TargetSpacing.String(),
		RetargetInterval:        p.DifficultyAdjustmentInterval(),
		GenesisHash:             p.GenesisHash().String(),
		GenesisMerkleRoot:       p.GenesisMerkleRoot().String(),
		HighestCheckpointHeight: p.Checkpoints().HighestCheckpointHeight(),
		DNSSeeds:                dnsSeeds,
		FixedSeeds:              len(p.FixedSeeds()),
		PubKeyAddressPrefix:     hex.EncodeToString(prefixes.PubKeyAddress),
		ScriptAddressPrefix:     hex.EncodeToString(prefixes.ScriptAddress),
		SecretKeyPrefix:         hex.EncodeToString(prefixes.SecretKey),
		ExtPublicKeyPrefix:      hex.EncodeToString(prefixes.ExtPublicKey),
		ExtSecretKeyPrefix:      hex.EncodeToString(prefixes.ExtSecretKey),
		Flags:                   p.Flags(),
	}
}

func (a *app) show(c *cli.Context) error {
	v := newProfileView(a.registry.Current())

	if c.Bool("json") {
		return writeJSON(c.App.Writer, v)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "network:             %s\n", v.Network)
	fmt.Fprintf(w, "message start:       %s (net 0x%08x)\n", v.MessageStart, v.Net)
	fmt.Fprintf(w, "default port:        %d\n", v.DefaultPort)
	fmt.Fprintf(w, "pow limit bits:      %s\n", v.PowLimitBits)
	fmt.Fprintf(w, "halving interval:    %d\n", v.SubsidyHalvingInterval)
	fmt.Fprintf(w, "majorities:          %d/%d of %d\n", v.EnforceMajority, v.RejectMajority, v.MajorityWindow)
	fmt.Fprintf(w, "retarget:            %s / %s (%d blocks)\n", v.TargetTimespan, v.TargetSpacing, v.RetargetInterval)
	fmt.Fprintf(w, "genesis:             %s\n", v.GenesisHash)
	fmt.Fprintf(w, "merkle root:         %s\n", v.GenesisMerkleRoot)
	fmt.Fprintf(w, "last checkpoint:     %d\n", v.HighestCheckpointHeight)
	fmt.Fprintf(w, "dns seeds:           %s\n", strings.Join(v.DNSSeeds, ", "))
	fmt.Fprintf(w, "fixed seeds:         %d\n", v.FixedSeeds)
	fmt.Fprintf(w, "address prefixes:    %s %s %s %s %s\n", v.PubKeyAddressPrefix, v.ScriptAddressPrefix,
		v.SecretKeyPrefix, v.ExtPublicKeyPrefix, v.ExtSecretKeyPrefix)

	return nil
}

type verifyResult struct {
	Network string `json:"network"`
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
}

func (a *app) verify(c *cli.Context) error {
	var (
		results []verifyResult
		failed  error
	)

	for _, p := range a.registry.Profiles() {
		r := verifyResult{Network: p.Name(), OK: true}

		err := verifyProfile(p)
		if err != nil {
			r.OK = false
			r.Error = err.Error()
			failed = errors.Join(failed, err)
		}

		results = append(results, r)
	}

	if c.Bool("json") {
		if err := writeJSON(c.App.Writer, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			status := "ok"
			if !r.OK {
				status = "FAILED: " + r.Error
			}

			fmt.Fprintf(c.App.Writer, "%-9s %s\n", r.Network, status)
		}
	}

	if failed != nil {
		return errors.NewConfigurationError("parameter verification failed", failed)
	}

	return nil
}

func verifyProfile(p *chaincfg.Params) error {
	genesisHash := p.GenesisHash()
	merkleRoot := p.GenesisMerkleRoot()

	if err := chaincfg.VerifyGenesisBlock(p.GenesisBlock(), p.Consensus().PowLimit, &genesisHash, &merkleRoot); err != nil {
		return err
	}

	return p.Checkpoints().Validate(genesisHash)
}

type seedView struct {
	Address  string    `json:"address"`
	Services uint64    `json:"services"`
	LastSeen time.Time `json:"lastSeen"`
}

func (a *app) seeds(c *cli.Context) error {
	p := a.registry.Current()

	var (
		addrs []*wire.NetAddress
		err   error
	)

	if c.Bool("dns") {
		now := a.deps.Now()
		opts := append(bootstrap.OptionsFromSettings(a.deps.Settings.P2P), bootstrap.WithDNSSeeds(true))

		addrs, err = bootstrap.Candidates(c.Context, a.deps.Logger, p, a.deps.Resolver, now,
			rand.New(rand.NewSource(now.UnixNano())), opts...) //nolint:gosec // seed ageing needs no crypto randomness
		if err != nil {
			return err
		}
	} else {
		addrs = p.FixedSeeds()
	}

	views := make([]seedView, 0, len(addrs))
	for _, na := range addrs {
		views = append(views, seedView{
			Address:  fmt.Sprintf("%s:%d", na.IP, na.Port),
			Services: uint64(na.Services),
			LastSeen: na.Timestamp.UTC(),
		})
	}

	if c.Bool("json") {
		return writeJSON(c.App.Writer, views)
	}

	for _, v := range views {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", v.Address, v.LastSeen.Format(time.RFC3339))
	}

	return nil
}

type checkpointView struct {
	Height int32  `json:"height"`
	Hash   string `json:"hash"`
}

func (a *app) checkpoint(c *cli.Context) error {
	table := a.registry.Current().Checkpoints()
	height := c.Int("height")

	if height < 0 {
		cps := table.Checkpoints()
		views := make([]checkpointView, 0, len(cps))

		for _, cp := range cps {
			views = append(views, checkpointView{Height: cp.Height, Hash: cp.Hash.String()})
		}

		if c.Bool("json") {
			return writeJSON(c.App.Writer, views)
		}

		for _, v := range views {
			fmt.Fprintf(c.App.Writer, "%d\t%s\n", v.Height, v.Hash)
		}

		return nil
	}

	//nolint:gosec // checked against the int32 range below
	h := int32(height)
	if int(h) != height {
		return errors.NewInvalidArgumentError("height %d out of range", height)
	}

	if c.String("hash") == "" {
		hash, ok := table.Lookup(h)
		if !ok {
			return errors.NewNotFoundError("no checkpoint at height %d", h)
		}

		fmt.Fprintln(c.App.Writer, hash.String())

		return nil
	}

	hash, err := chainhash.NewHashFromStr(c.String("hash"))
	if err != nil {
		return errors.NewInvalidArgumentError("bad block hash %q", c.String("hash"), err)
	}

	if !table.CheckBlock(h, *hash) {
		return errors.NewBlockInvalidError("block %s at height %d conflicts with checkpoint", hash, h)
	}

	fmt.Fprintf(c.App.Writer, "block %s at height %d is consistent with the checkpoints\n", hash, h)

	return nil
}

func (a *app) magic(c *cli.Context) error {
	if s := c.String("identify"); s != "" {
		b, err := hex.DecodeString(s)
		if err != nil || len(b) != 4 {
			return errors.NewInvalidArgumentError("message start must be 4 hex encoded bytes, got %q", s)
		}

		kind, ok := framing.NetworkForMagic(a.registry, wire.BitcoinNet(binary.LittleEndian.Uint32(b)))
		if !ok {
			return errors.NewNotFoundError("no network uses message start %s", s)
		}

		fmt.Fprintln(c.App.Writer, kind)

		return nil
	}

	magic := a.registry.Current().MessageStart()
	fmt.Fprintf(c.App.Writer, "%s 0x%08x\n", hex.EncodeToString(magic[:]), uint32(a.framer.Net()))

	return nil
}

type decodedView struct {
	Type       string `json:"type"`
	Payload    string `json:"payload"`
	Compressed bool   `json:"compressed,omitempty"`
}

func (a *app) address(c *cli.Context) error {
	p := a.registry.Current()

	switch {
	case c.String("pubkey-hash") != "":
		hash, err := hex.DecodeString(c.String("pubkey-hash"))
		if err != nil {
			return errors.NewInvalidArgumentError("bad public key hash", err)
		}

		s, err := address.EncodePubKeyHash(hash, p)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.App.Writer, s)

		return nil

	case c.String("decode") != "":
		d, err := address.Decode(c.String("decode"), p)
		if err != nil {
			return err
		}

		v := decodedView{Type: d.Type.String(), Payload: hex.EncodeToString(d.Payload), Compressed: d.Compressed}
		if c.Bool("json") {
			return writeJSON(c.App.Writer, v)
		}

		fmt.Fprintf(c.App.Writer, "%s %s\n", v.Type, v.Payload)

		return nil

	default:
		return errors.NewInvalidArgumentError("one of --pubkey-hash or --decode is required")
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.NewProcessingError("failed to encode output", err)
	}

	_, err = fmt.Fprintln(w, string(b))

	return err
}

// Run executes the standalone application with args and returns the error of
// the command, if any. A failure is also logged with its error category.
func Run(ctx context.Context, deps Deps, args []string) error {
	err := NewApp(deps).RunContext(ctx, args)
	if err != nil && deps.Logger != nil {
		deps.Logger.Errorf("[paramscli] %s error: %v", errors.GetErrorCategory(err), err)
	}

	return err
}
