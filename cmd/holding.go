package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	update bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the wallet overview" }
func (*holdingCmd) Usage() string {
	return `cw holding [-u]

  Displays the assets in the wallet with their value and unrealized profit or loss.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "update with latest prices before calculating the report")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var feed wallet.PriceFeed
	if c.update {
		feed = newClient()
	}
	md, err := overview(ctx, ledger, feed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error updating prices: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// overview refreshes the ledger from feed, if not nil, and renders it.
// An unavailable feed is reported as a warning, the last known prices are used.
func overview(ctx context.Context, ledger *wallet.Ledger, feed wallet.PriceFeed) (string, error) {
	if feed != nil {
		err := ledger.Refresh(ctx, feed)
		switch {
		case errors.Is(err, wallet.ErrFeedUnavailable):
			fmt.Fprintf(os.Stderr, "Warning: prices not updated: %v\n", err)
		case err != nil:
			return "", err
		}
	}
	return renderer.WalletMarkdown(*currency, ledger.Holdings()), nil
}
