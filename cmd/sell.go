package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	quantity string
	all      bool
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell some or all of a held asset" }
func (*sellCmd) Usage() string {
	return `cw sell (-q <quantity> | -all) <asset id>

  Removes a quantity of an asset from the wallet. Selling more than is held
  closes the position. The average cost of what remains is unchanged.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "Quantity to sell")
	f.BoolVar(&c.all, "all", false, "Sell the whole position")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "sell expects exactly one asset id")
		return subcommands.ExitUsageError
	}
	if (c.quantity == "") == !c.all {
		fmt.Fprintln(os.Stderr, "sell expects one of -q or -all")
		return subcommands.ExitUsageError
	}

	ledger, closer, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	trade, held, err := c.run(ledger, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selling %q: %v\n", f.Arg(0), err)
		return exitStatus(err)
	}
	if !held {
		fmt.Fprintf(os.Stderr, "Warning: %q is not in the wallet, nothing sold.\n", f.Arg(0))
		return subcommands.ExitSuccess
	}
	trade.Currency = *currency
	printMarkdown(renderer.TradeMarkdown(trade))
	return subcommands.ExitSuccess
}

// run sells from the position id. held is false if there was no such position.
func (c *sellCmd) run(ledger *wallet.Ledger, id string) (trade renderer.Trade, held bool, err error) {
	before, held := ledger.Holding(id)
	if !held {
		return renderer.Trade{}, false, nil
	}

	qty := before.Quantity
	if !c.all {
		if qty, err = wallet.ParseQuantity(c.quantity); err != nil {
			return renderer.Trade{}, true, err
		}
	}
	after, _, err := ledger.Withdraw(id, qty)
	if err != nil {
		return renderer.Trade{}, true, err
	}
	return renderer.Trade{
		Kind:      renderer.Sold,
		Asset:     before.Asset,
		Quantity:  before.Quantity.Sub(after.Quantity),
		Price:     before.LastPrice,
		Remaining: after.Quantity,
	}, true, nil
}
