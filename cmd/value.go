package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
)

type valueCmd struct {
	signed bool
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "print the total value of the wallet" }
func (*valueCmd) Usage() string {
	return `cw value [-pnl]

  Prints the total value of the wallet at the last known prices, on a single
  line, for use in scripts.
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.signed, "pnl", false, "print the unrealized profit or loss instead")
}

func (c *valueCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	fmt.Println(c.line(ledger, *currency))
	return subcommands.ExitSuccess
}

func (c *valueCmd) line(ledger *wallet.Ledger, cur string) string {
	if !c.signed {
		return ledger.TotalValue().Format(cur)
	}
	s := wallet.Summarize(ledger.Holdings())
	return fmt.Sprintf("%s (%s)", s.PnL.SignedFormat(cur), s.PnLPercent.SignedString())
}
