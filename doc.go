// Package wallet keeps track of simulated holdings of crypto assets and reports
// their value and performance. It is designed to be local-first: the whole
// wallet lives in a single JSON document that can be stored in a file or in a
// SQLite database.
//
// The core functionalities include:
//   - Ledger: recording buys (deposits) and sells (withdrawals) of assets,
//     maintaining a weighted-average cost basis per asset, and updating the
//     last known market prices.
//   - Valuation: pure functions that derive the current value and the
//     unrealized profit and loss of a holding, or of the whole wallet.
//   - Persistence: write-through storage of the ledger into a durable Slot,
//     so that every successful operation survives a restart.
//
// Prices and asset descriptions come from collaborators (PriceFeed and
// Catalog). The coingecko package implements both against the CoinGecko API.
//
// A Ledger is meant to be used by a single writer. It is not safe for
// concurrent use, and two processes sharing the same slot overwrite each
// other's changes (last writer wins).
package wallet
