package cmd

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/etnz/wallet"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	global := map[string]complete.Predictor{
		"wallet-file":       predict.Files("*"),
		"store":             predict.Set{"file", "sqlite"},
		"slot-key":          predict.Something,
		"currency":          predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
		"feed-url":          predict.Something,
		"cache-ttl":         predict.Set{"0", "30s", "1m", "5m"},
		"coingecko-api-key": predict.Something,
		"config":            predict.Files("*.yaml"),
		"raw":               predict.Nothing,
	}
	held := complete.PredictFunc(heldIDs)
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"buy": {
				Flags: map[string]complete.Predictor{"q": predict.Something, "usd": predict.Something, "price": predict.Something},
				Args:  held,
			},
			"sell": {
				Flags: map[string]complete.Predictor{"q": predict.Something, "all": predict.Nothing},
				Args:  held,
			},
			"holding": {Flags: map[string]complete.Predictor{"u": predict.Nothing}},
			"value":   {Flags: map[string]complete.Predictor{"pnl": predict.Nothing}},
			"update":  {},
			"watch":   {Flags: map[string]complete.Predictor{"every": predict.Set{"30s", "1m", "5m"}}},
			"fmt":     {},
			"help":    {},
			"flags":   {},
		},
	}
}

// heldIDs predicts the ids of the assets in the default wallet file.
func heldIDs(prefix string) []string {
	// completion runs before the flags are parsed, so only the default wallet is read.
	path := *walletFile
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	// logs would corrupt the completion output.
	log.SetOutput(io.Discard)
	l, err := wallet.Open(wallet.NewFileSlot(path))
	if err != nil {
		return nil
	}
	var ids []string
	for _, id := range l.IDs() {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return ids
}
