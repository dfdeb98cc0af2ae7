package filters

import (
	"errors"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/jmbejara/constantinides-2013-options/src/optionmodels"
	"github.com/jmbejara/constantinides-2013-options/src/utils"
)

// ErrPriceStrikeMismatch signals a data-integrity defect in the upstream
// join: the two legs of a matched pair disagree on a key-shared field. This
// halts the run rather than being swallowed into a filter flag.
var ErrPriceStrikeMismatch = errors.New("price and strike price mismatch between matched call and put")

type pairKey struct {
	date      string
	exdate    string
	moneyness float64
}

func newPairKey(q *optionmodels.PCPFilteredQuote) pairKey {
	return pairKey{
		date:      utils.DateKey(q.Date),
		exdate:    utils.DateKey(q.Expiration),
		moneyness: q.Moneyness,
	}
}

// BuildPutCallPairs intersects calls and puts on (date, expiration,
// moneyness). Only records whose key exists on both sides survive; records
// with no counterpart leg are simply absent from the result. Duplicate keys
// within a side pair up first-come and the surplus records are dropped with
// a warning.
func BuildPutCallPairs(calls, puts []*optionmodels.PCPFilteredQuote) []*optionmodels.MatchedPair {
	putsByKey := make(map[pairKey]*optionmodels.PCPFilteredQuote, len(puts))
	for _, put := range puts {
		key := newPairKey(put)
		if _, found := putsByKey[key]; found {
			log.Warnf("BuildPutCallPairs: duplicate put key date=%s exdate=%s moneyness=%f, keeping first", key.date, key.exdate, key.moneyness)
			continue
		}

		putsByKey[key] = put
	}

	var pairs []*optionmodels.MatchedPair
	matched := make(map[pairKey]bool)
	for _, call := range calls {
		key := newPairKey(call)
		put, found := putsByKey[key]
		if !found {
			if matched[key] {
				log.Warnf("BuildPutCallPairs: duplicate call key date=%s exdate=%s moneyness=%f, keeping first", key.date, key.exdate, key.moneyness)
			}
			continue
		}

		delete(putsByKey, key)
		matched[key] = true
		pairs = append(pairs, &optionmodels.MatchedPair{
			Call: call,
			Put:  put,
		})
	}

	return pairs
}

// floatsClose matches np.allclose defaults: atol 1e-8, rtol 1e-5.
func floatsClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

// PricesConsistent reports whether the two legs of a pair agree numerically
// on the fields they share by construction.
func PricesConsistent(pair *optionmodels.MatchedPair) bool {
	return floatsClose(pair.Call.Strike, pair.Put.Strike) &&
		floatsClose(pair.Call.UnderlyingPrice, pair.Put.UnderlyingPrice)
}
