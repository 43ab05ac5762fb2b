package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"gopkg.in/urfave/cli.v1"

	textparse "github.com/henrylaxen/polyparse"
)

var checkCommand = cli.Command{
	Action:    checkCorpus,
	Name:      "check",
	Usage:     "Run a corpus of reading cases",
	ArgsUsage: "<corpus-directory>",
	Description: `
The check command walks a directory for *.lit files and runs every case
they hold, printing one line per case.`,
}

func checkCorpus(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: readlit check <corpus-directory>")
	}
	root := ctx.Args().First()
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}

	cases, err := textparse.LoadCorpus(root)
	if err != nil {
		return err
	}

	var (
		pass = color.New(color.FgGreen).SprintFunc()
		fail = color.New(color.FgRed).SprintFunc()
		bad  int
	)
	for _, c := range cases {
		o, err := c.Run()
		if err == nil {
			err = c.Verify(o)
		}
		if err != nil {
			bad++
			fmt.Printf("%s %s: %v\n", fail("FAIL"), c.Name(), err)
			continue
		}
		fmt.Printf("%s   %s\n", pass("ok"), c.Name())
	}
	log.Info("Corpus checked", "dir", root, "cases", len(cases), "failed", bad)
	if bad > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d cases failed", bad, len(cases)), 1)
	}
	return nil
}
