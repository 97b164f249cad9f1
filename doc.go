// Package fantaleague manages the office of a fantasy football league: the
// players catalog, the clubs with their rosters and finances, the divisions and
// the competitions. It is local-first: the whole league is a single json
// document, loaded once and saved after every change.
//
// The core functionalities include:
//   - Contracts: signing players for one to four seasons, with roster and
//     goalkeeper caps, a wage derived from the player's quote and the contract
//     length, releases at half wage and loans.
//   - Ledgers: every club keeps a chronological list of transactions whose
//     running balances replay deterministically to the club's budget.
//   - Catalog: creation of players, clubs, divisions and competitions with
//     unique identities.
//   - Listone: the free agents available to a division.
//
// Operations are methods of [League], which validates, applies and persists
// them through a [Repository]. Storage backends live in the store package, the
// per-user planning area in the sandbox package and the `bbsl` command line
// tool in the cmd package.
package fantaleague
