// Package normalize maps free-form user tokens onto the canonical fact
// vocabulary of a catalog.
//
// Each token is trimmed and lowercased, then resolved in order through the
// synonym table, the canonical set, and approximate matching against the
// canonical set. Tokens that match nothing are kept as-is so they are still
// recorded as user facts.
package normalize
