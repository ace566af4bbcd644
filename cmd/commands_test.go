package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

var bitcoin = wallet.Asset{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"}

// fakeCatalog lists assets at fixed prices.
type fakeCatalog map[string]wallet.Listing

func (c fakeCatalog) Lookup(_ context.Context, id string) (wallet.Listing, error) {
	l, ok := c[id]
	if !ok {
		return wallet.Listing{}, fmt.Errorf("coin %q not found", id)
	}
	return l, nil
}

// fakeFeed serves fixed prices and counts the calls.
type fakeFeed struct {
	prices map[string]wallet.Price
	err    error
	calls  int
}

func (f *fakeFeed) FetchPrices(_ context.Context, ids []string) (map[string]wallet.Price, error) {
	f.calls++
	return f.prices, f.err
}

func newLedger(t *testing.T) *wallet.Ledger {
	t.Helper()
	l, err := wallet.Open(&wallet.MemorySlot{})
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return l
}

func TestBuyCmd(t *testing.T) {
	catalog := fakeCatalog{"bitcoin": {Asset: bitcoin, Price: wallet.P(40000)}}
	tests := []struct {
		name string
		cmd  buyCmd
		want renderer.Trade
	}{
		{
			name: "quantity",
			cmd:  buyCmd{quantity: "0.5"},
			want: renderer.Trade{Kind: renderer.Bought, Asset: bitcoin, Quantity: wallet.Q(0.5), Price: wallet.P(40000), Remaining: wallet.Q(0.5)},
		},
		{
			name: "budget",
			cmd:  buyCmd{spend: "10000"},
			want: renderer.Trade{Kind: renderer.Bought, Asset: bitcoin, Quantity: wallet.Q(0.25), Price: wallet.P(40000), Remaining: wallet.Q(0.25)},
		},
		{
			name: "offline",
			cmd:  buyCmd{quantity: "2", price: "30000"},
			want: renderer.Trade{Kind: renderer.Bought, Asset: wallet.Asset{ID: "bitcoin", Image: wallet.DefaultImage}, Quantity: wallet.Q(2), Price: wallet.P(30000), Remaining: wallet.Q(2)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)
			got, err := tt.cmd.run(context.Background(), l, catalog, "bitcoin")
			if err != nil {
				t.Fatalf("run() failed: %v", err)
			}
			if got.Kind != tt.want.Kind || got.Asset.ID != tt.want.Asset.ID || got.Asset.Name != tt.want.Asset.Name {
				t.Errorf("run() = %+v, want %+v", got, tt.want)
			}
			if !got.Quantity.Equal(tt.want.Quantity) || !got.Price.Equal(tt.want.Price) || !got.Remaining.Equal(tt.want.Remaining) {
				t.Errorf("run() = %v %v -> %v, want %v %v -> %v", got.Quantity, got.Price, got.Remaining, tt.want.Quantity, tt.want.Price, tt.want.Remaining)
			}
			if l.Len() != 1 {
				t.Errorf("Len() = %d, want 1", l.Len())
			}
		})
	}
}

func TestBuyCmd_AddsToPosition(t *testing.T) {
	l := newLedger(t)
	catalog := fakeCatalog{"bitcoin": {Asset: bitcoin, Price: wallet.P(40000)}}
	if _, err := (&buyCmd{quantity: "1"}).run(context.Background(), l, catalog, "bitcoin"); err != nil {
		t.Fatal(err)
	}
	catalog["bitcoin"] = wallet.Listing{Asset: bitcoin, Price: wallet.P(20000)}
	got, err := (&buyCmd{quantity: "1", price: "20000"}).run(context.Background(), l, catalog, "bitcoin")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Quantity.Equal(wallet.Q(1)) || !got.Remaining.Equal(wallet.Q(2)) {
		t.Errorf("run() bought %v, holding %v, want 1, 2", got.Quantity, got.Remaining)
	}
	if got.Asset.Name != "Bitcoin" {
		t.Errorf("Asset.Name = %q, want the description of the first purchase", got.Asset.Name)
	}
	h, _ := l.Holding("bitcoin")
	if !h.AverageCost.Equal(wallet.P(30000)) {
		t.Errorf("AverageCost = %v, want 30000", h.AverageCost)
	}
}

func TestBuyCmd_Errors(t *testing.T) {
	catalog := fakeCatalog{"bitcoin": {Asset: bitcoin, Price: wallet.P(40000)}}
	tests := []struct {
		name    string
		cmd     buyCmd
		id      string
		invalid bool
	}{
		{name: "not a number", cmd: buyCmd{quantity: "lots"}, id: "bitcoin", invalid: true},
		{name: "negative", cmd: buyCmd{quantity: "-1"}, id: "bitcoin", invalid: true},
		{name: "zero budget", cmd: buyCmd{spend: "0"}, id: "bitcoin", invalid: true},
		{name: "negative price", cmd: buyCmd{quantity: "1", price: "-3"}, id: "bitcoin", invalid: true},
		{name: "unknown coin", cmd: buyCmd{quantity: "1"}, id: "dogecoin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)
			_, err := tt.cmd.run(context.Background(), l, catalog, tt.id)
			if err == nil {
				t.Fatal("run() succeeded, want an error")
			}
			if got := exitStatus(err) == subcommands.ExitUsageError; got != tt.invalid {
				t.Errorf("exitStatus(%v) is usage error = %v, want %v", err, got, tt.invalid)
			}
			if l.Len() != 0 {
				t.Errorf("Len() = %d, want 0", l.Len())
			}
		})
	}
}

func TestSellCmd(t *testing.T) {
	tests := []struct {
		name      string
		cmd       sellCmd
		sold      wallet.Quantity
		remaining wallet.Quantity
	}{
		{name: "partial", cmd: sellCmd{quantity: "0.5"}, sold: wallet.Q(0.5), remaining: wallet.Q(1.5)},
		{name: "all", cmd: sellCmd{all: true}, sold: wallet.Q(2), remaining: wallet.Q(0)},
		{name: "more than held", cmd: sellCmd{quantity: "5"}, sold: wallet.Q(2), remaining: wallet.Q(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLedger(t)
			if _, err := l.Deposit(bitcoin, wallet.Q(2), wallet.P(100)); err != nil {
				t.Fatal(err)
			}
			got, held, err := tt.cmd.run(l, "bitcoin")
			if err != nil || !held {
				t.Fatalf("run() = _, %v, %v, want held and no error", held, err)
			}
			if !got.Quantity.Equal(tt.sold) || !got.Remaining.Equal(tt.remaining) {
				t.Errorf("run() sold %v remaining %v, want %v and %v", got.Quantity, got.Remaining, tt.sold, tt.remaining)
			}
			if got.Kind != renderer.Sold || !got.Price.Equal(wallet.P(100)) {
				t.Errorf("run() = %v at %v, want Sold at 100", got.Kind, got.Price)
			}
			if _, ok := l.Holding("bitcoin"); ok != tt.remaining.IsPositive() {
				t.Errorf("Holding() found = %v, want %v", ok, tt.remaining.IsPositive())
			}
		})
	}
}

func TestSellCmd_NotHeld(t *testing.T) {
	l := newLedger(t)
	_, held, err := (&sellCmd{quantity: "1"}).run(l, "bitcoin")
	if err != nil || held {
		t.Errorf("run() = _, %v, %v, want not held and no error", held, err)
	}
}

func TestValueCmd(t *testing.T) {
	l := newLedger(t)
	if _, err := l.Deposit(bitcoin, wallet.Q(2), wallet.P(100)); err != nil {
		t.Fatal(err)
	}
	if err := l.Reprice(map[string]wallet.Price{"bitcoin": wallet.P(150)}); err != nil {
		t.Fatal(err)
	}
	if got, want := (&valueCmd{}).line(l, "USD"), "$300.00"; got != want {
		t.Errorf("line() = %q, want %q", got, want)
	}
	if got, want := (&valueCmd{signed: true}).line(l, "USD"), "+$100.00 (+50.00%)"; got != want {
		t.Errorf("line() = %q, want %q", got, want)
	}
}

func TestFormatSlot(t *testing.T) {
	slot := &wallet.MemorySlot{}
	if err := slot.Write([]byte(`[{"id":"bitcoin","amount":1,"averagePrice":10,"currentPrice":12}]`)); err != nil {
		t.Fatal(err)
	}
	n, err := formatSlot(slot)
	if err != nil || n != 1 {
		t.Fatalf("formatSlot() = %d, %v, want 1, nil", n, err)
	}
	data, _ := slot.Read()
	if !strings.Contains(string(data), `"image":"/placeholder.svg"`) {
		t.Errorf("formatted wallet = %s, want the default image", data)
	}
}

func TestFormatSlot_Corrupt(t *testing.T) {
	slot := &wallet.MemorySlot{}
	corrupt := []byte(`{not json`)
	if err := slot.Write(corrupt); err != nil {
		t.Fatal(err)
	}
	if _, err := formatSlot(slot); !errors.Is(err, wallet.ErrStorageCorrupt) {
		t.Errorf("formatSlot() error = %v, want ErrStorageCorrupt", err)
	}
	if data, _ := slot.Read(); string(data) != string(corrupt) {
		t.Errorf("slot content = %s, want it untouched", data)
	}
}

func TestWatch(t *testing.T) {
	l := newLedger(t)
	if _, err := l.Deposit(bitcoin, wallet.Q(1), wallet.P(100)); err != nil {
		t.Fatal(err)
	}
	feed := &fakeFeed{prices: map[string]wallet.Price{"bitcoin": wallet.P(120)}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var shown []string
	show := func(md string) {
		shown = append(shown, md)
		if len(shown) == 2 {
			cancel()
		}
	}
	err := watch(ctx, l, feed, time.Millisecond, show)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("watch() error = %v, want context.Canceled", err)
	}
	if feed.calls != 2 {
		t.Errorf("feed calls = %d, want 2", feed.calls)
	}
	if !strings.Contains(shown[0], "$120.00") {
		t.Errorf("overview = %q, want the refreshed price", shown[0])
	}
}

func TestWatch_FeedDown(t *testing.T) {
	l := newLedger(t)
	if _, err := l.Deposit(bitcoin, wallet.Q(1), wallet.P(100)); err != nil {
		t.Fatal(err)
	}
	feed := &fakeFeed{err: errors.New("connection refused")}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var shown []string
	err := watch(ctx, l, feed, time.Millisecond, func(md string) {
		shown = append(shown, md)
		cancel()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("watch() error = %v, want context.Canceled", err)
	}
	if len(shown) != 1 || !strings.Contains(shown[0], "$100.00") {
		t.Errorf("overview = %q, want the last known price", shown)
	}
}

func TestExitStatus(t *testing.T) {
	tests := []struct {
		err  error
		want subcommands.ExitStatus
	}{
		{nil, subcommands.ExitSuccess},
		{fmt.Errorf("parsing: %w", wallet.ErrInvalidAmount), subcommands.ExitUsageError},
		{wallet.ErrInvalidAsset, subcommands.ExitUsageError},
		{fmt.Errorf("%w: timeout", wallet.ErrFeedUnavailable), subcommands.ExitFailure},
	}
	for _, tt := range tests {
		if got := exitStatus(tt.err); got != tt.want {
			t.Errorf("exitStatus(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
