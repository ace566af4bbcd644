package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "update the wallet with the latest prices from CoinGecko"
}
func (*updateCmd) Usage() string { return "cw update\n" }
func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	ledger, closer, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	if err := ledger.Refresh(ctx, newClient()); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Updated %d assets, wallet value is %s.\n", ledger.Len(), ledger.TotalValue().Format(*currency))
	return subcommands.ExitSuccess
}
