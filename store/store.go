// Package store persists whole collections as JSON documents, one document
// per collection and user.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Collection names a stored collection.
type Collection string

const (
	Institutions      Collection = "institutions"
	Accounts          Collection = "accounts"
	Budgets           Collection = "budgets"
	Expenses          Collection = "expenses"
	HistoricalData    Collection = "historicalData"
	Categories        Collection = "categories"
	CategoryInclusion Collection = "categoryInclusion"
)

// LocalUser is the user of the local-only mode.
const LocalUser = "local_user"

const keyPrefix = "netWorthTracker_"

// corruptSuffix is appended to the key of a copy of unreadable data.
const corruptSuffix = "_corrupt"

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCorrupt is returned by Load when the stored data cannot be decoded.
	ErrCorrupt = errors.New("corrupt stored data")
)

// Store is a key value store of JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key returns the storage key of a collection for 'user', or for the local
// user if empty.
func Key(c Collection, user string) string {
	if user == "" {
		user = LocalUser
	}
	return keyPrefix + string(c) + "_" + user
}

// Load decodes the collection 'c' of 'user' into v.
//
// found is false if nothing is stored. When the data cannot be decoded, a
// copy is kept under a separate key that is never overwritten, and the
// error wraps ErrCorrupt.
func Load(ctx context.Context, s Store, c Collection, user string, v any) (found bool, err error) {
	key := Key(c, user)
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		if qerr := quarantine(ctx, s, key, data); qerr != nil {
			slog.Warn("cannot keep a copy of corrupt data", "key", key, "err", qerr)
		}
		return true, fmt.Errorf("%w in %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

// quarantine copies data to the corrupt key of 'key', unless a copy exists.
func quarantine(ctx context.Context, s Store, key string, data []byte) error {
	backup := key + corruptSuffix
	_, err := s.Get(ctx, backup)
	if err == nil {
		return nil // keep the first copy
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.Put(ctx, backup, data)
}

// Save encodes v as the collection 'c' of 'user'.
func Save(ctx context.Context, s Store, c Collection, user string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c, err)
	}
	key := Key(c, user)
	if err := s.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Remove deletes the collections of 'user'. Missing collections are ignored.
func Remove(ctx context.Context, s Store, user string, collections ...Collection) error {
	var errs []error
	for _, c := range collections {
		if err := s.Delete(ctx, Key(c, user)); err != nil && !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}
