package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the wallet into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cw fmt

  Validates and rewrites the wallet storage. Unlike the other commands, which
  start from an empty wallet when the storage cannot be decoded, fmt reports
  the problem and leaves the storage untouched.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	slot, closer, err := openSlot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	n, err := formatSlot(slot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Successfully formatted wallet (%d assets).\n", n)
	return subcommands.ExitSuccess
}

// formatSlot strictly loads the wallet in slot and saves it back.
func formatSlot(slot wallet.Slot) (int, error) {
	ledger := wallet.NewLedger(slot)
	if err := ledger.Load(); err != nil {
		return 0, err
	}
	if err := ledger.Save(); err != nil {
		return 0, err
	}
	return ledger.Len(), nil
}
