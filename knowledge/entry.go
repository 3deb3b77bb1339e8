// Package knowledge holds learned win/loss statistics per pattern key and
// the contracts the engine uses to read and feed them.
package knowledge

import (
	"gomoku/pattern"

	"github.com/rs/zerolog/log"
)

type Key = pattern.Key

// Entry counts games won and lost by the side that played a pattern.
type Entry struct {
	Wins   float64 `json:"wins"`
	Losses float64 `json:"losses"`
}

// WinRate is the Laplace-smoothed win rate (wins+1)/(wins+losses+2).
func (e Entry) WinRate() float64 {
	return (e.Wins + 1) / (e.Wins + e.Losses + 2)
}

func (e Entry) Games() float64 {
	return e.Wins + e.Losses
}

// Source answers pattern lookups. A missing key means no prior.
type Source interface {
	Lookup(key Key) (Entry, bool)
}

// Map is a Source backed by a plain map. The zero value (nil) has no
// entries.
type Map map[Key]Entry

func (m Map) Lookup(key Key) (Entry, bool) {
	e, ok := m[key]
	return e, ok
}

// Record is one row returned by a bulk read.
type Record struct {
	PatternHash Key     `json:"pattern_hash"`
	Wins        float64 `json:"wins"`
	Losses      float64 `json:"losses"`
}

// BulkReader fetches the records for the given keys in one call. Keys with
// no record are omitted from the result.
type BulkReader interface {
	LookupAll(keys []Key) ([]Record, error)
}

// Fetch reads keys from r into a Map. A failing reader yields an empty Map:
// searching without priors is always possible.
func Fetch(r BulkReader, keys []Key) Map {
	m := Map{}
	if r == nil || len(keys) == 0 {
		return m
	}
	records, err := r.LookupAll(keys)
	if err != nil {
		log.Warn().Err(err).Msgf("knowledge lookup of %d keys failed, searching without priors", len(keys))
		return m
	}
	for _, rec := range records {
		m[rec.PatternHash] = Entry{Wins: rec.Wins, Losses: rec.Losses}
	}
	return m
}
