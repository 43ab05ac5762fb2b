package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	textparse "github.com/henrylaxen/polyparse"
)

var replCommand = cli.Command{
	Action: repl,
	Name:   "repl",
	Usage:  "Read values interactively",
	Description: `
The repl command reads one value per entry. An entry that ends early is
continued on the next line. Commands:

  :type T   switch to reading values of type T
  :types    list the type names
  :quit     leave`,
}

const promptCont = "... "

func repl(ctx *cli.Context) error {
	cfg := configOf(ctx)
	d, err := lookupType(cfg)
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.historyPath()
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		} else {
			log.Warn("Failed to save history", "file", histPath, "err", err)
		}
	}()

	for {
		src, ok := readEntry(ln, d, d.Name+"> ", promptCont)
		if !ok {
			fmt.Println()
			return nil
		}
		entry := strings.TrimSpace(src)
		if entry == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(entry, ":") {
			next, quit := replCommandLine(d, entry)
			if quit {
				return nil
			}
			d = next
			continue
		}

		v, err := textparse.ReadAll(d.Reader, src)
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(err))
			continue
		}
		fmt.Println(valueColor(textparse.Show(d.Shower, v)))
	}
}

// replCommandLine runs a : command and returns the type to continue with.
func replCommandLine(d *textparse.Dynamic, entry string) (*textparse.Dynamic, bool) {
	cmd, arg, _ := strings.Cut(entry, " ")
	switch cmd {
	case ":quit", ":q":
		return d, true
	case ":types":
		fmt.Println(strings.Join(textparse.TypeNames(), " "))
	case ":type", ":t":
		next, err := textparse.Lookup(strings.TrimSpace(arg))
		if err != nil {
			fmt.Fprintln(os.Stderr, errorColor(err.Error()))
			return d, false
		}
		log.Debug("Switched type", "type", next.Name)
		return next, false
	default:
		fmt.Println("unknown command. Type :quit to exit.")
	}
	return d, false
}

// readEntry collects lines until they hold a complete value or a failure
// that more input cannot repair.
func readEntry(ln *liner.State, d *textparse.Dynamic, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var (
			line string
			err  error
		)
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || strings.TrimSpace(line) == "" {
			return src, true
		}
		_, perr := textparse.ReadAll(d.Reader, src)
		if perr != nil && textparse.IsIncomplete(perr, src) {
			continue
		}
		return src, true
	}
}
