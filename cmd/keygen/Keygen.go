package keygen

import (
	"fmt"

	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/settings"
	"github.com/examcoin/examd/ulogger"
	"github.com/urfave/cli/v2"
)

// Command returns the "keygen" command.
func Command(logger ulogger.Logger, tSettings *settings.Settings) *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a private key and its address",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "testnet", Usage: "encode for the test network"},
			&cli.BoolFlag{Name: "regtest", Usage: "encode for the regression test network"},
		},
		Action: func(c *cli.Context) error {
			fallback, err := tSettings.NetworkKind()
			if err != nil {
				return err
			}

			kind, err := settings.NetworkFromFlags(c.Bool("testnet"), c.Bool("regtest"), fallback)
			if err != nil {
				return err
			}

			kp, err := Generate(chaincfg.NewRegistry(logger).ProfileFor(kind))
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, kp)

			return nil
		},
	}
}
