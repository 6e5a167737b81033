// Package docstore implements the versioned study-session document store on
// top of BadgerDB. Every operation opens one transaction and settles before
// returning; there is no internal retry and no partial result.
//
// The schema version is pinned at 1 and written under a metadata key the
// first time the database is opened.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"

	"github.com/kpetrova/oracle/internal/common"
	"github.com/kpetrova/oracle/internal/logging"
	"github.com/kpetrova/oracle/internal/models"
)

const schemaVersion = 1

var (
	versionKey    = []byte("!meta/version")
	sessionPrefix = []byte("session/")
)

// Config holds settings for opening a document store.
type Config struct {
	// Dir is the directory for the database files. Ignored when InMemory
	// is set.
	Dir string

	// InMemory opens a throwaway store with no disk persistence. Used by
	// tests.
	InMemory bool

	// Logger receives store-level log records. Badger's own chatter is
	// discarded.
	Logger logging.Logger
}

// Store is a handle to the study-session collection.
type Store struct {
	db  *badger.DB
	log logging.Logger
}

// Open opens (creating if needed) the document store and ensures the schema
// version key is in place. Open failures surface as common.ErrStoreUnavailable.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: opening document store: %s", common.ErrStoreUnavailable, err)
	}

	s := &Store{db: db, log: cfg.Logger}

	if err := s.ensureVersion(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// ensureVersion writes the schema version on first open. An existing key with
// a different value means the files belong to a future schema we do not know
// how to read.
func (s *Store) ensureVersion(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.wrap(s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(versionKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			if s.log != nil {
				s.log.Info(ctx, "initializing document store", "version", schemaVersion)
			}
			return txn.Set(versionKey, []byte(strconv.Itoa(schemaVersion)))
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if string(val) != strconv.Itoa(schemaVersion) {
				return fmt.Errorf("unsupported document store version %q", val)
			}
			return nil
		})
	}))
}

// Add stores a new session and fails with common.ErrSessionExists if the id
// is already present.
func (s *Store) Add(ctx context.Context, session models.StudySession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.wrap(s.db.Update(func(txn *badger.Txn) error {
		key := sessionKey(session.ID)
		_, err := txn.Get(key)
		if err == nil {
			return common.ErrSessionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, doc)
	}))
}

// Put upserts a session by id, overwriting the whole record.
func (s *Store) Put(ctx context.Context, session models.StudySession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(session.ID), doc)
	}))
}

// GetAll returns every stored session in key order.
func (s *Store) GetAll(ctx context.Context) ([]models.StudySession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]models.StudySession, 0)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = sessionPrefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(sessionPrefix); it.ValidForPrefix(sessionPrefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var session models.StudySession
				if err := json.Unmarshal(val, &session); err != nil {
					return err
				}
				result = append(result, session)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.wrap(err)
	}
	return result, nil
}

// Delete removes the session with the given id. Deleting an absent id
// succeeds; the underlying primitive does not distinguish.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(id))
	}))
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// wrap tags engine failures as ErrStoreUnavailable while letting our own
// sentinels pass through untouched.
func (s *Store) wrap(err error) error {
	if err == nil || errors.Is(err, common.ErrSessionExists) {
		return err
	}
	if errors.Is(err, common.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s", common.ErrStoreUnavailable, err)
}

func sessionKey(id string) []byte {
	return append(append([]byte{}, sessionPrefix...), id...)
}
