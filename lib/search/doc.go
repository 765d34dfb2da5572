// Package search implements the fuzzy ranking used for catalog lookups. It
// is a pure function over (query, catalog): no state, no I/O.
//
// Scoring combines three signals per query token:
//   - weighted substring matches on title, author, ISBN and publisher
//   - Sørensen-Dice similarity over character bigram sets (typo tolerance)
//   - a Soundex bonus when the token sounds like the title or author
//
// Token scores are summed and divided by the token count, results below the
// relevance cutoff are dropped, the rest is sorted descending and truncated.
package search
