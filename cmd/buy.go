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

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	quantity string
	spend    string
	price    string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy an asset at its current market price" }
func (*buyCmd) Usage() string {
	return `cw buy (-q <quantity> | -usd <amount>) [-price <unit price>] <asset id>

  Buys an asset and adds it to the wallet. The asset is looked up on CoinGecko
  by its id (e.g. "bitcoin") to get its description and current price.
  Buying an asset already held averages its cost.

Usage Examples:
# Buy half a bitcoin
$ cw buy -q 0.5 bitcoin

# Spend 100 (in the wallet currency) on ethereum
$ cw buy -usd 100 ethereum

# Record a purchase at a known price, without going online
$ cw buy -q 2 -price 1800 ethereum
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "q", "", "Quantity to buy")
	f.StringVar(&c.spend, "usd", "", "Amount to spend, in the wallet currency, instead of a quantity")
	f.StringVar(&c.price, "price", "", "Unit price of the purchase. The catalog is not called when set")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "buy expects exactly one asset id")
		return subcommands.ExitUsageError
	}
	if (c.quantity == "") == (c.spend == "") {
		fmt.Fprintln(os.Stderr, "buy expects one of -q or -usd")
		return subcommands.ExitUsageError
	}

	ledger, closer, err := OpenLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading wallet: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	trade, err := c.run(ctx, ledger, newClient(), f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error buying %q: %v\n", f.Arg(0), err)
		return exitStatus(err)
	}
	trade.Currency = *currency
	printMarkdown(renderer.TradeMarkdown(trade))
	return subcommands.ExitSuccess
}

// run performs the purchase of asset id on the ledger.
func (c *buyCmd) run(ctx context.Context, ledger *wallet.Ledger, catalog wallet.Catalog, id string) (renderer.Trade, error) {
	before, _ := ledger.Holding(id)

	var h wallet.Holding
	var err error
	switch {
	case c.price != "":
		h, err = c.buyAt(ledger, id)
	case c.quantity != "":
		var qty wallet.Quantity
		if qty, err = wallet.ParseQuantity(c.quantity); err != nil {
			return renderer.Trade{}, err
		}
		h, err = ledger.Buy(ctx, catalog, id, qty)
	default:
		var budget wallet.Price
		if budget, err = wallet.ParsePrice(c.spend); err != nil {
			return renderer.Trade{}, err
		}
		h, err = ledger.BuyFor(ctx, catalog, id, budget)
	}
	if err != nil {
		return renderer.Trade{}, err
	}

	return renderer.Trade{
		Kind:      renderer.Bought,
		Asset:     h.Asset,
		Quantity:  h.Quantity.Sub(before.Quantity),
		Price:     h.LastPrice,
		Remaining: h.Quantity,
	}, nil
}

// buyAt deposits without looking the asset up.
func (c *buyCmd) buyAt(ledger *wallet.Ledger, id string) (wallet.Holding, error) {
	unit, err := wallet.ParsePrice(c.price)
	if err != nil {
		return wallet.Holding{}, err
	}
	qty := wallet.Quantity{}
	if c.quantity != "" {
		if qty, err = wallet.ParseQuantity(c.quantity); err != nil {
			return wallet.Holding{}, err
		}
	} else {
		budget, err := wallet.ParsePrice(c.spend)
		if err != nil {
			return wallet.Holding{}, err
		}
		if qty, err = wallet.QuantityFor(budget, unit); err != nil {
			return wallet.Holding{}, err
		}
	}
	asset := wallet.Asset{ID: id}
	if h, ok := ledger.Holding(id); ok {
		asset = h.Asset
	}
	return ledger.Deposit(asset, qty, unit)
}
