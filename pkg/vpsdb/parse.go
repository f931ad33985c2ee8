package vpsdb

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ParseDatabase decodes a vpsdb.json document. A document that is not a
// JSON array is an error; array entries that are not game objects are
// skipped.
func ParseDatabase(data []byte) ([]Game, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, errors.Wrap(err, "vpsdb expected to be a JSON array")
	}

	games := make([]Game, 0, len(raws))
	for _, raw := range raws {
		var g Game
		if err := json.Unmarshal(raw, &g); err != nil {
			continue
		}
		games = append(games, g)
	}
	return games, nil
}
