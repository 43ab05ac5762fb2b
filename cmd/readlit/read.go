package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	lru "github.com/hashicorp/golang-lru"
	"gopkg.in/urfave/cli.v1"

	textparse "github.com/henrylaxen/polyparse"
)

var (
	readCommand = cli.Command{
		Action:    readValue,
		Name:      "read",
		Usage:     "Read one value and print its canonical form",
		ArgsUsage: "[<literal>]",
		Description: `
The read command reads a value of the configured type from its arguments,
or from standard input when there are none, and prints its canonical
rendering followed by any unread input.`,
	}
	batchCommand = cli.Command{
		Action:    batchRead,
		Name:      "batch",
		Usage:     "Read one value per line of a file",
		ArgsUsage: "<file>|-",
		Description: `
The batch command reads every non-empty line of a file, or of standard
input for -, as a value of the configured type. Repeated lines are
answered from a cache.`,
	}
)

var (
	errorColor = color.New(color.FgRed).SprintFunc()
	valueColor = color.New(color.FgGreen).SprintFunc()
	restColor  = color.New(color.FgYellow).SprintFunc()
)

// formatError renders a read failure, marking fatal ones.
func formatError(err error) string {
	if textparse.IsFatal(err) {
		return errorColor("fatal " + err.Error())
	}
	return errorColor(err.Error())
}

func lookupType(cfg readlitConfig) (*textparse.Dynamic, error) {
	d, err := textparse.Lookup(cfg.Type)
	if err != nil {
		return nil, fmt.Errorf("bad --type %q: %v", cfg.Type, err)
	}
	return d, nil
}

func readValue(ctx *cli.Context) error {
	cfg := configOf(ctx)
	d, err := lookupType(cfg)
	if err != nil {
		return err
	}

	input := strings.Join(ctx.Args(), " ")
	if ctx.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		input = string(data)
	}
	log.Debug("Reading value", "type", d.Name, "len", len(input))

	v, rest, err := textparse.Read(d.Reader, input)
	if err != nil {
		return cli.NewExitError(formatError(err), 1)
	}
	fmt.Println(valueColor(textparse.Show(d.Shower, v)))
	if strings.TrimSpace(rest) != "" {
		fmt.Println(restColor("unread: " + rest))
	}
	if cfg.Dump {
		spew.Fdump(os.Stdout, v)
	}
	return nil
}

// outcome is the memoised result of reading one batch line.
type outcome struct {
	shown string
	err   error
}

func batchRead(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("usage: readlit batch <file>|-")
	}
	cfg := configOf(ctx)
	d, err := lookupType(cfg)
	if err != nil {
		return err
	}
	cache, err := lru.NewARC(cfg.CacheSize)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if name := ctx.Args().First(); name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var (
		sc       = bufio.NewScanner(in)
		line     int
		failures int
		hits     int
	)
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		var (
			o   outcome
			key = cacheKey(d, text)
		)
		if cached, ok := cache.Get(key); ok {
			o = cached.(outcome)
			hits++
		} else {
			o = readLine(d, text)
			cache.Add(key, o)
		}
		if o.err != nil {
			failures++
			fmt.Printf("%d: %s\n", line, formatError(o.err))
			continue
		}
		fmt.Printf("%d: %s\n", line, valueColor(o.shown))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	log.Info("Batch finished", "type", d.Name, "lines", line, "failures", failures, "cached", hits)
	if failures > 0 {
		return cli.NewExitError("", 1)
	}
	return nil
}

// cacheKey identifies a batch line read as a given type.
func cacheKey(d *textparse.Dynamic, text string) string {
	return d.Name + "\x00" + text
}

func readLine(d *textparse.Dynamic, text string) outcome {
	v, err := textparse.ReadAll(d.Reader, text)
	if err != nil {
		return outcome{err: err}
	}
	return outcome{shown: textparse.Show(d.Shower, v)}
}
