package optionmodels

// MatchedPair holds the call and put legs that share (date, expiration,
// moneyness). Pairs are rebuilt from scratch on every run; they carry no
// identity across runs.
type MatchedPair struct {
	Call *PCPFilteredQuote
	Put  *PCPFilteredQuote
}
