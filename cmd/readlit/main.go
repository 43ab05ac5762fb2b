// readlit reads typed literals in their canonical textual form and prints
// them back.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"
)

var (
	typeFlag = cli.StringFlag{
		Name:  "type",
		Usage: "Type expression of the values to read, e.g. \"Maybe [Int]\"",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "Print the Go value read in addition to its rendering",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colour output: auto, always or never",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache",
		Usage: "Number of batch outcomes to memoise",
	}
	historyFlag = cli.StringFlag{
		Name:  "history",
		Usage: "REPL history file",
	}
)

var app = newApp()

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "readlit"
	app.Usage = "read typed literals and print their canonical form"
	app.Flags = []cli.Flag{
		typeFlag,
		dumpFlag,
		colorFlag,
		verbosityFlag,
		cacheSizeFlag,
		historyFlag,
		configFileFlag,
	}
	app.Commands = []cli.Command{
		readCommand,
		checkCommand,
		batchCommand,
		replCommand,
		mnemonicsCommand,
		typesCommand,
		dumpConfigCommand,
	}
	app.Action = readValue
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		setupOutput(cfg)
		ctx.App.Metadata = map[string]interface{}{configKey: cfg}
		return nil
	}
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupOutput applies the colour mode and installs the default logger.
func setupOutput(cfg readlitConfig) {
	useColor := cfg.useColor(isatty.IsTerminal(os.Stderr.Fd()))
	color.NoColor = !useColor

	output := io.Writer(os.Stderr)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(output, log.FromLegacyLevel(cfg.Verbosity), useColor)))
}
