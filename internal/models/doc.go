// Package models defines the core domain models for Split-it.
//
// # Persisted Models
//
//   - User: a registered account; referenced by expenses (creator, payer) and shares
//   - Expense: a single shared cost with one creator and one payer
//   - Share: one participant's computed portion of an expense (a.k.a. expense member)
//
// # Derived Models
//
// The balance and pairwise views are computed on read and never stored:
//   - NetBalances / NetBalanceEntry: one user's position against every counterparty
//   - PairwiseHistory / ExpenseView: the shared timeline between two users
//
// # Design Principles
//
//  1. Relationships are one-directional ID references (Expense.CreatorID, Share.ExpenseID).
//     There is no object graph; the store exposes a query per join the ledger needs.
//  2. Money is decimal.Decimal with two fractional digits. The store keeps integer
//     hundredths and converts with FromCents / ToCents; amounts beyond MaxAmount
//     are refused rather than wrapped.
//  3. A Share's AmountOwed is computed once at creation time and never recomputed.
package models
