// Package casefolio provides the model and the derivation logic of a
// collectible case investment tracker.
//
// A portfolio is an ordered list of investments, one per case, each with a
// quantity, a purchase price, a current market price and a ledger of buy and
// sell transactions. The backend service owns that list; this package only
// derives what is displayed from it:
//   - Metrics: profit/loss and ROI per investment, with unknown prices
//     counting as zero rather than failing.
//   - Totals: invested amount, current value and profit/loss of the board.
//   - Ledger: the date ordered transactions of an investment, padded to a
//     fixed minimum number of rows, with bought and sold totals.
//   - Catalog: every trackable case with its release date and drop status.
//   - Validation: the local checks applied before any mutation is sent.
//
// Derivation is pure: the same State always renders the same board.
package casefolio
