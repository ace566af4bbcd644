// Package cmd implements the CLI application to manage a simulated crypto wallet.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wallet"
	"github.com/etnz/wallet/coingecko"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&valueCmd{}, "reports")

	c.Register(&updateCmd{}, "prices")
	c.Register(&watchCmd{}, "prices")

	c.Register(&fmtCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	walletFile = flag.String("wallet-file", "wallet.json", "Path to the wallet file (JSON), or to the SQLite database with -store=sqlite")
	storeKind  = flag.String("store", "file", "Wallet storage: \"file\" or \"sqlite\"")
	slotKey    = flag.String("slot-key", wallet.DefaultSlotKey, "Key of the wallet in the SQLite database")
	currency   = flag.String("currency", "USD", "Currency of the prices")
	feedURL    = flag.String("feed-url", coingecko.DefaultBaseURL, "Base URL of the CoinGecko API")
	cacheTTL   = flag.Duration("cache-ttl", 30*time.Second, "How long CoinGecko responses are cached on disk, 0 to disable")
	apiKeyFlag = flag.String("coingecko-api-key", "", "CoinGecko API key.\n If missing it will read the environment variable \""+coingecko.APIKeyEnv+"\"")
	configFile = flag.String("config", "", "Optional YAML (or JSON) configuration file; explicit flags take precedence")
	rawOutput  = flag.Bool("raw", false, "Print markdown as is, instead of rendering it for the terminal")
)

func apiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *apiKeyFlag == "" {
		*apiKeyFlag = os.Getenv(coingecko.APIKeyEnv)
	}
	return *apiKeyFlag
}

// OpenLedger opens the wallet from the configured storage. The returned
// closer releases the storage.
func OpenLedger() (*wallet.Ledger, io.Closer, error) {
	slot, closer, err := openSlot()
	if err != nil {
		return nil, nil, err
	}
	l, err := wallet.Open(slot)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openSlot() (wallet.Slot, io.Closer, error) {
	switch *storeKind {
	case "file":
		return wallet.NewFileSlot(*walletFile), nopCloser{}, nil
	case "sqlite":
		slot, err := wallet.NewSQLiteSlot(*walletFile, *slotKey)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open wallet database %q: %w", *walletFile, err)
		}
		return slot, slot, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q, want \"file\" or \"sqlite\"", *storeKind)
	}
}

// newClient returns the CoinGecko client used as price feed and catalog.
func newClient() *coingecko.Client {
	c := coingecko.New(apiKey(), *cacheTTL)
	c.BaseURL = *feedURL
	c.Currency = *currency
	return c
}

// exitStatus maps an error to the exit status of a command.
func exitStatus(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, wallet.ErrInvalidAmount), errors.Is(err, wallet.ErrInvalidAsset):
		return subcommands.ExitUsageError
	default:
		return subcommands.ExitFailure
	}
}

// printMarkdown prints md to stdout, rendered for the terminal unless -raw.
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	// fallback to raw markdown, it is readable enough.
	fmt.Print(md)
}
