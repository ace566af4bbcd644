package wallet

import (
	"context"
	"fmt"
	"log"
)

// PriceFeed provides the current market price of assets.
//
// Assets unknown to the feed are absent from the returned map.
type PriceFeed interface {
	FetchPrices(ctx context.Context, ids []string) (map[string]Price, error)
}

// Catalog describes the assets that can be bought, with their current price.
type Catalog interface {
	Lookup(ctx context.Context, id string) (Listing, error)
}

// Refresh fetches the current price of every held asset from feed and
// reprices the ledger.
//
// If the feed fails, prices are left unchanged and the returned error wraps
// ErrFeedUnavailable; the caller is expected to try again later. If ctx is
// done by the time the prices arrive, they are discarded. Zero prices are
// treated as missing.
func (l *Ledger) Refresh(ctx context.Context, feed PriceFeed) error {
	ids := l.IDs()
	if len(ids) == 0 {
		return nil
	}
	prices, err := feed.FetchPrices(ctx, ids)
	if err != nil {
		log.Printf("cannot refresh %d prices: %v", len(ids), err)
		return fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fresh := make(map[string]Price, len(prices))
	for id, p := range prices {
		if !p.IsPositive() {
			log.Printf("ignoring price %v for %q", p, id)
			continue
		}
		fresh[id] = p
	}
	return l.Reprice(fresh)
}

// Buy looks the asset up in the catalog and deposits qty units at the listed price.
func (l *Ledger) Buy(ctx context.Context, c Catalog, id string, qty Quantity) (Holding, error) {
	listing, err := c.Lookup(ctx, id)
	if err != nil {
		return Holding{}, fmt.Errorf("cannot find asset %q: %w", id, err)
	}
	return l.Deposit(listing.Asset, qty, listing.Price)
}

// BuyFor looks the asset up in the catalog and deposits the quantity that
// budget buys at the listed price.
func (l *Ledger) BuyFor(ctx context.Context, c Catalog, id string, budget Price) (Holding, error) {
	listing, err := c.Lookup(ctx, id)
	if err != nil {
		return Holding{}, fmt.Errorf("cannot find asset %q: %w", id, err)
	}
	qty, err := QuantityFor(budget, listing.Price)
	if err != nil {
		return Holding{}, err
	}
	return l.Deposit(listing.Asset, qty, listing.Price)
}
