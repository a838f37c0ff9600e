// Package networth provides the engine of a personal net worth and expense
// tracker. It is designed to be local-first: every collection is a plain
// value that is loaded, transformed and stored back as a whole.
//
// The core functionalities include:
//   - Category Taxonomy: a two level Parent:Child classification of expenses,
//     with per category inclusion flags and rename/delete cascades computed
//     as a single Changeset applied atomically to a Book.
//   - Transaction Import: validation of bank rows, deduplication against the
//     existing transactions and automatic extension of the taxonomy.
//   - Mass Reclassification: grouping transactions by base vendor to
//     recategorize a merchant in one confirmation.
//   - Budgets: monthly averages of past spending over a selection of months
//     and categories.
//   - History: a date keyed series of net worth and account values, with
//     window deltas (year to date, since inception) and historical imports.
//
// This package serves as the foundational logic for the `nwt` command-line
// tool.
package networth
