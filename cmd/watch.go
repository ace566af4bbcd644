package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

type watchCmd struct {
	every time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "refresh prices periodically and display the wallet" }
func (*watchCmd) Usage() string {
	return `cw watch [-every <duration>]

  Refreshes the prices of the held assets periodically and prints the wallet
  overview after each refresh, until interrupted. When CoinGecko cannot be
  reached the last known prices are kept and the next refresh tries again.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.every, "every", 60*time.Second, "delay between two refreshes")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}
	if c.every <= 0 {
		fmt.Fprintln(os.Stderr, "-every must be positive")
		return subcommands.ExitUsageError
	}
	ledger, closer, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	err = watch(ctx, ledger, newClient(), c.every, printMarkdown)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// watch refreshes ledger from feed every period, calling show with the
// overview after each refresh, until ctx is done.
func watch(ctx context.Context, ledger *wallet.Ledger, feed wallet.PriceFeed, every time.Duration, show func(string)) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		md, err := overview(ctx, ledger, feed)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			// storage errors are not fatal, the prices are still in memory.
			log.Printf("refresh failed: %v", err)
		} else {
			show(md)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
