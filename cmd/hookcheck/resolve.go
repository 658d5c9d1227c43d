package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/wnxd/hookhelper/handler"
	"github.com/wnxd/hookhelper/symtab"
)

var resolvePrefix bool

var errNoneResolved = errors.New("no symbol resolved")

func init() {
	cmd := newResolveCmd()
	cmd.Flags().BoolVar(&resolvePrefix, "prefix-match", false, "Fall back to prefix lookup")
	rootCmd.AddCommand(cmd)
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <module> <symbol>...",
		Short: "Resolve alternative names of one hook target",
		Long: `The resolve command looks up each name the way a hook entry would and
succeeds when at least one of them resolves.

Example:
  hookcheck resolve libart.so _ZN3art9ArtMethod6InvokeEPNS_6ThreadEPjjPNS_6JValueEPKc
  hookcheck resolve libc.so open64 open --base 0x7f0000000000`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := parseBase()
			if err != nil {
				return err
			}
			tab, err := symtab.LoadELF(args[0], b)
			if err != nil {
				return err
			}
			m := symtab.NewModule(args[0], tab, nil)
			return runResolve(cmd.OutOrStdout(), m, args[1:], resolvePrefix)
		},
	}
}

func runResolve(out io.Writer, m *symtab.Module, names []string, matchPrefix bool) error {
	var found int
	for _, name := range names {
		addr, ok := handler.Resolve(m, name, matchPrefix)
		if !ok {
			fmt.Fprintf(out, "%-16s %s\n", "missing", name)
			continue
		}
		found++
		if _, exact := m.Table().Lookup(name); !exact {
			if sym, ok := m.Table().SymbolAt(addr); ok {
				fmt.Fprintf(out, "%016x %s (%s)\n", addr, name, sym.Name)
				continue
			}
		}
		fmt.Fprintf(out, "%016x %s\n", addr, name)
	}
	if found == 0 {
		return fmt.Errorf("%w: %s", errNoneResolved, names[0])
	}
	return nil
}
