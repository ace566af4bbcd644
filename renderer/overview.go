package renderer

import (
	"text/template"

	"github.com/etnz/wallet"
)

// Overview is the view of the whole wallet.
type Overview struct {
	Currency string
	Summary  wallet.Summary
	Rows     []OverviewRow
}

// OverviewRow is the view of a single holding.
type OverviewRow struct {
	Holding    wallet.Holding
	Value      wallet.Price
	PnL        wallet.Price
	PnLPercent wallet.Percent
}

// Ticker returns the display symbol of the row asset.
func (r OverviewRow) Ticker() string { return r.Holding.Asset.Ticker() }

// Name returns the display name of the row asset.
func (r OverviewRow) Name() string {
	if r.Holding.Asset.Name == "" {
		return r.Holding.ID()
	}
	return r.Holding.Asset.Name
}

// NewOverview computes the valuation of holdings.
func NewOverview(currency string, holdings []wallet.Holding) *Overview {
	o := &Overview{
		Currency: currency,
		Summary:  wallet.Summarize(holdings),
		Rows:     make([]OverviewRow, 0, len(holdings)),
	}
	for _, h := range holdings {
		o.Rows = append(o.Rows, OverviewRow{
			Holding:    h,
			Value:      wallet.CurrentValue(h),
			PnL:        wallet.UnrealizedPnL(h),
			PnLPercent: wallet.UnrealizedPnLPercent(h),
		})
	}
	return o
}

// RenderOverview renders the overview to markdown.
func RenderOverview(o *Overview) string {
	funcs := template.FuncMap{
		"money":       func(p wallet.Price) string { return p.Format(o.Currency) },
		"signedMoney": func(p wallet.Price) string { return p.SignedFormat(o.Currency) },
		"quantity":    func(q wallet.Quantity) string { return q.StringFixed(6) },
	}
	return renderTemplate("overview", "overview.md", funcs, o)
}

// WalletMarkdown renders the holdings valued in currency.
func WalletMarkdown(currency string, holdings []wallet.Holding) string {
	return RenderOverview(NewOverview(currency, holdings))
}
