package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/wnxd/hookhelper/hooker"
	"go.uber.org/zap"
)

var (
	verbose bool
	base    string
)

var rootCmd = &cobra.Command{
	Use:   "hookcheck",
	Short: "Check hook symbol names against a module's symbol table",
	Long: `hookcheck reads the symbol table of an ELF module and reports which
symbol names a hook group would resolve to, without patching anything.`,
	Version: "0.1.0",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		hooker.SetLogger(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&base, "base", "0", "Load address added to every symbol")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseBase() (uintptr, error) {
	v, err := strconv.ParseUint(base, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --base %q: %w", base, err)
	}
	return uintptr(v), nil
}
