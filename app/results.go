package app

import (
	"github.com/vaultswap/ledger"
	"github.com/vaultswap/ledger/errors"
)

// ResultSet holds the keys or the values returned by a query. Keys and
// values are always returned as two separate sets of the same length.
type ResultSet struct {
	Results [][]byte
}

// Marshal serializes the result set using borsh encoding.
func (r *ResultSet) Marshal() ([]byte, error) {
	return ledger.MarshalBorsh(r)
}

// Unmarshal loads the result set from its borsh representation.
func (r *ResultSet) Unmarshal(raw []byte) error {
	return ledger.UnmarshalBorsh(raw, r)
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []ledger.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]ledger.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrapf(errors.ErrInput, "%d keys and %d values", len(kref), len(vref))
	}
	mods := make([]ledger.Model, len(kref))
	for i := range mods {
		mods[i] = ledger.Pair(kref[i], vref[i])
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o.
// ErrNotFound is returned for an empty result set.
func UnmarshalOneResult(bz []byte, o ledger.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	if len(res.Results) == 0 {
		return errors.ErrNotFound
	}
	return o.Unmarshal(res.Results[0])
}
