// Package wellets provides the types and the client-side arithmetic of the
// Wellets personal-finance command-line client.
//
// The Wellets backend owns all the business logic: balances, average load
// prices, portfolio rebalancing and currency rates are computed server-side.
// This package holds what the client still needs locally:
//   - Records: typed versions of the backend JSON payloads (currencies,
//     wallets, portfolios, transactions, accumulations, assets, investments).
//   - Conversion: the dollar rate arithmetic used to display countervalues of
//     balances in the user's preferred currency.
//   - Formatting: the number pretty-printer shared by all renderers.
//   - Validation: the input validators used by the command-line flags.
//
// Schedules of accumulations are expressed in a compact duration notation
// implemented by the sub-package duration.
//
// This package serves as the foundation of the `wellets` command-line tool.
package wellets
