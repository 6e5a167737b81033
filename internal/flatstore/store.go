// Package flatstore implements the synchronous flat record store: small
// whole-table datasets (accounts, session pointer, attempt ledger) read and
// replaced as ordered sequences of JSON records.
//
// Tables are independent namespaces. A write replaces the entire table in one
// transaction, so partial writes are never observable; cross-table
// consistency is the caller's responsibility.
package flatstore

import (
	"context"
	"encoding/json"
)

// Logical table names. Each one is an independent namespace inside the same
// backing database.
const (
	TableAccounts = "accounts"
	TableSession  = "session"
	TableAttempts = "attempts"
)

// Store is the flat record store contract. ReadTable returns the table's
// records in stored order (an empty slice if the table was never written);
// WriteTable atomically replaces the whole table.
type Store interface {
	ReadTable(ctx context.Context, name string) ([]json.RawMessage, error)
	WriteTable(ctx context.Context, name string, records []json.RawMessage) error
}

// ReadAll reads a table and unmarshals every record into T, preserving order.
func ReadAll[T any](ctx context.Context, s Store, name string) ([]T, error) {
	raw, err := s.ReadTable(ctx, name)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(raw))
	for _, doc := range raw {
		var item T
		if err := json.Unmarshal(doc, &item); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// WriteAll marshals items and replaces the named table with them.
func WriteAll[T any](ctx context.Context, s Store, name string, items []T) error {
	records := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		doc, err := json.Marshal(item)
		if err != nil {
			return err
		}
		records = append(records, doc)
	}
	return s.WriteTable(ctx, name, records)
}
