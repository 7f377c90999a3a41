package repositories

import (
	"io"
	"os"

	apperrors "bulletin/app/errors"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Store owns the badger database behind the post and comment repositories.
type Store struct {
	db   *badger.DB
	path string
}

// Options controls how the store is opened.
type Options struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	Logger   *zap.Logger
}

// Open opens or creates the database described by opts.
func Open(opts Options) (*Store, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, apperrors.New("storage path is required")
		}
		if err := os.MkdirAll(opts.Path, 0755); err != nil {
			return nil, apperrors.Wrap(err, "create storage directory")
		}
		bopts = badger.DefaultOptions(opts.Path)
	}

	if opts.Logger != nil {
		bopts = bopts.WithLogger(newBadgerLogger(opts.Logger))
	} else {
		bopts = bopts.WithLogger(nil)
	}
	bopts = bopts.WithNumVersionsToKeep(1)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, apperrors.Wrapf(err, "open badger at %q", opts.Path)
	}
	if opts.InMemory {
		opts.Path = ""
	}
	return &Store{db: db, path: opts.Path}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Path returns the badger directory, or "" for an in-memory store.
func (s *Store) Path() string {
	return s.path
}

// Posts returns a post repository backed by the store.
func (s *Store) Posts() *BadgerPostRepository {
	return NewBadgerPostRepository(s.db)
}

// Comments returns a comment repository backed by the store.
func (s *Store) Comments() *BadgerCommentRepository {
	return NewBadgerCommentRepository(s.db)
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Backup writes a full backup of the database to w.
func (s *Store) Backup(w io.Writer) error {
	if _, err := s.db.Backup(w, 0); err != nil {
		return apperrors.Wrap(err, "backup database")
	}
	return nil
}

// Restore loads a backup produced by Backup into the database.
func (s *Store) Restore(r io.Reader) error {
	if err := s.db.Load(r, 16); err != nil {
		return apperrors.Wrap(err, "restore database")
	}
	return nil
}

// Clear drops every key.
func (s *Store) Clear() error {
	if err := s.db.DropAll(); err != nil {
		return apperrors.Wrap(err, "drop all keys")
	}
	return nil
}

// badgerLogger routes badger's internal logging through zap.
type badgerLogger struct {
	*zap.SugaredLogger
}

func newBadgerLogger(logger *zap.Logger) badgerLogger {
	return badgerLogger{logger.Named("badger").Sugar()}
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.Warnf(format, args...)
}
