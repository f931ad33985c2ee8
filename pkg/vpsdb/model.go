// Package vpsdb models the Virtual Pinball Spreadsheet database and builds
// the lookup indexes the export enrichment runs against.
package vpsdb

import (
	"encoding/json"

	"github.com/MikeSterry/pinup-popper-database-exporter/pkg/normalizers"
)

// FlexString decodes a JSON value that is sometimes a number and sometimes
// a string (year, player count).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = FlexString(normalizers.String(v))
	return nil
}

// FlexStringList decodes a JSON value that is either a single string or a
// list (authors, theme). Non-string elements are dropped.
type FlexStringList []string

func (l *FlexStringList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = normalizers.StringsOrOne(v)
	return nil
}

// StringList decodes a JSON array keeping only string elements. Anything
// that is not an array decodes to nil.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = normalizers.Strings(v)
	return nil
}

// EpochMillis decodes a JSON number as epoch milliseconds, defaulting to 0.
type EpochMillis int64

func (e *EpochMillis) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = EpochMillis(normalizers.EpochMillis(v))
	return nil
}

// GameRef is the game-group reference carried by a table file. Malformed
// references decode to the zero value instead of failing the entry.
type GameRef struct {
	ID string `json:"id"`
}

func (g *GameRef) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*g = GameRef{}
		return nil
	}
	g.ID = raw.ID
	return nil
}

// TableFile is one distributable variant of a game.
type TableFile struct {
	ID           string         `json:"id"`
	Game         GameRef        `json:"game"`
	Edition      string         `json:"edition"`
	GameFileName string         `json:"gameFileName"`
	Authors      FlexStringList `json:"authors"`
	Version      string         `json:"version"`
	Features     StringList     `json:"features"`
	CreatedAt    EpochMillis    `json:"createdAt"`
}

// TableFileList keeps the original slot of entries that fail to decode so
// within-game positions stay stable for ordering.
type TableFileList []TableFile

func (l *TableFileList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		*l = nil
		return nil
	}
	out := make([]TableFile, len(raws))
	for i, raw := range raws {
		var tf TableFile
		if err := json.Unmarshal(raw, &tf); err == nil {
			out[i] = tf
		}
	}
	*l = out
	return nil
}

// Game is one vpsdb entry.
type Game struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Manufacturer string         `json:"manufacturer"`
	Year         FlexString     `json:"year"`
	Players      FlexString     `json:"players"`
	Type         string         `json:"type"`
	Theme        FlexStringList `json:"theme"`
	Designers    StringList     `json:"designers"`
	IPDBUrl      string         `json:"ipdbUrl"`
	TableFiles   TableFileList  `json:"tableFiles"`
}
