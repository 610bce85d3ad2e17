package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/examcoin/examd/cmd/keygen"
	"github.com/examcoin/examd/cmd/paramscli"
	cmdsettings "github.com/examcoin/examd/cmd/settings"
	"github.com/examcoin/examd/errors"
	"github.com/examcoin/examd/settings"
	"github.com/examcoin/examd/ulogger"
	"github.com/ordishs/gocore"
	"github.com/urfave/cli/v2"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "examd"

// Version & commit strings injected at build with -ldflags -X...
var (
	version string
	commit  string
)

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	tSettings := settings.NewSettings()

	logger := ulogger.New(progname,
		ulogger.WithLevel(tSettings.LogLevel),
		ulogger.WithLoggerType(tSettings.LoggerType),
		ulogger.WithWriter(os.Stderr),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &cli.App{
		Name:    progname,
		Usage:   "examcoin node tools",
		Version: version + " (" + commit + ")",
		Commands: []*cli.Command{
			paramscli.Command(paramscli.Deps{
				Logger:   logger,
				Settings: tSettings,
			}),
			keygen.Command(logger, tSettings),
			cmdsettings.Command(version, commit, tSettings),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Errorf("[%s] %v", errors.GetErrorCategory(err), err)
		cancel()
		os.Exit(1)
	}
}
