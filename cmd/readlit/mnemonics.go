package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	textparse "github.com/henrylaxen/polyparse"
)

var (
	mnemonicsCommand = cli.Command{
		Action: listMnemonics,
		Name:   "mnemonics",
		Usage:  "List the control character escape mnemonics",
	}
	typesCommand = cli.Command{
		Action: listTypes,
		Name:   "types",
		Usage:  "List the type names usable in --type",
	}
)

func listMnemonics(ctx *cli.Context) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Mnemonic", "Code", "Hex", "Char literal"})
	for _, m := range textparse.Mnemonics {
		table.Append([]string{
			m.Name,
			fmt.Sprint(int(m.Code)),
			fmt.Sprintf("0x%02x", m.Code),
			textparse.Show(textparse.ShowChar, m.Code),
		})
	}
	table.Render()
	return nil
}

func listTypes(ctx *cli.Context) error {
	fmt.Println(strings.Join(textparse.TypeNames(), " "))
	fmt.Println("() [T] (A,B) (A,B,C) Maybe T Either A B")
	return nil
}
