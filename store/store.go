// Package store keeps the list of submitted scouting records. The scoring
// code never touches it directly; callers load records and pass them in.
package store

import (
	"context"
	"errors"

	"curator/scoring"
)

var ErrSettingNotFound = errors.New("setting not found")

// SpreadsheetIDKey is the settings key for the linked spreadsheet.
const SpreadsheetIDKey = "spreadsheetID"

// Repository is an ordered, append-only list of records.
type Repository interface {
	// List returns every record in submission order.
	List(ctx context.Context) ([]scoring.Record, error)
	// Append stores recs and reports how many were new. Records whose ID is
	// already stored are skipped.
	Append(ctx context.Context, recs ...scoring.Record) (int, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
}

type Settings interface {
	Setting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Store is what the server and CLI need from storage.
type Store interface {
	Repository
	Settings
	Close() error
}
