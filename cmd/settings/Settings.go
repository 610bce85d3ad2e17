package settings

import (
	"fmt"

	"github.com/examcoin/examd/settings"
	"github.com/ordishs/gocore"
	"github.com/urfave/cli/v2"
)

// Command prints the gocore configuration stats, the build version and the
// settings examd resolved from them.
func Command(version, commit string, tSettings *settings.Settings) *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Print the effective settings",
		Action: func(c *cli.Context) error {
			return CmdSettings(c, version, commit, tSettings)
		},
	}
}

func CmdSettings(c *cli.Context, version string, commit string, tSettings *settings.Settings) error {
	stats := gocore.Config().Stats()
	fmt.Fprintf(c.App.Writer, "STATS\n%s\nVERSION\n-------\n%s (%s)\n\n", stats, version, commit)

	kind, err := tSettings.NetworkKind()
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "SETTINGS\n--------\n")
	fmt.Fprintf(c.App.Writer, "clientName              %s\n", tSettings.ClientName)
	fmt.Fprintf(c.App.Writer, "dataFolder              %s\n", tSettings.DataFolder)
	fmt.Fprintf(c.App.Writer, "network                 %s\n", kind)
	fmt.Fprintf(c.App.Writer, "logLevel                %s\n", tSettings.LogLevel)
	fmt.Fprintf(c.App.Writer, "logger                  %s\n", tSettings.LoggerType)
	fmt.Fprintf(c.App.Writer, "p2p_dns_seeds_enabled   %t\n", tSettings.P2P.DNSSeedsEnabled)
	fmt.Fprintf(c.App.Writer, "p2p_fixed_seeds_enabled %t\n", tSettings.P2P.FixedSeedsEnabled)
	fmt.Fprintf(c.App.Writer, "p2p_dns_timeout         %s\n", tSettings.P2P.DNSTimeout)

	return nil
}
