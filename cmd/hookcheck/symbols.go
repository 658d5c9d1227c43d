package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wnxd/hookhelper/symtab"
)

var symbolsPrefix string

func init() {
	cmd := newSymbolsCmd()
	cmd.Flags().StringVar(&symbolsPrefix, "prefix", "", "Only list symbols starting with prefix")
	rootCmd.AddCommand(cmd)
}

func newSymbolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "symbols <module>",
		Short: "List the symbols of a module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBase()
			if err != nil {
				return err
			}
			tab, err := symtab.LoadELF(args[0], b)
			if err != nil {
				return err
			}
			return runSymbols(cmd.OutOrStdout(), tab, symbolsPrefix)
		},
	}
}

func runSymbols(out io.Writer, tab *symtab.Table, prefix string) error {
	for sym := range tab.Symbols {
		if !strings.HasPrefix(sym.Name, prefix) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%016x %8d %s\n", sym.Addr, sym.Size, sym.Name); err != nil {
			return err
		}
	}
	return nil
}
