package ip2loc

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/zeebo/blake3"
)

// DB is an opened database. It is safe for concurrent use once constructed.
type DB struct {
	buf     dbBuffer
	header  *Header
	noIndex bool
	logger  *Logger
	release func() error
	closed  atomic.Bool
}

// ---------------- PUBLIC BLOCK ----------------

// New wraps buf, the complete contents of a database file. buf is not
// copied and must not be modified afterwards.
func New(buf []byte, opts ...Option) (*DB, error) {
	o := applyOptions(opts)
	db, err := newDB(buf, o, nil)
	o.logger.LogOpen(context.Background(), "memory", len(buf), headerOf(db), err)
	return db, err
}

// Header returns the parsed database header.
func (db *DB) Header() Header {
	return *db.header
}

// Lookup returns the record for addr, or nil if no range contains it.
// addr may be IPv4, IPv6 or IPv4-mapped IPv6 text.
func (db *DB) Lookup(addr string) (*Record, error) {
	a, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	rec, err := db.LookupAddress(a)
	db.logger.LogLookup(context.Background(), addr, rec != nil, err)
	return rec, err
}

// LookupAddress is Lookup for an already classified address.
func (db *DB) LookupAddress(a Address) (*Record, error) {
	if db.closed.Load() {
		return nil, ErrClosed
	}
	row, found, err := db.findRow(a, !db.noIndex)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return db.decodeRecord(row, !a.Is4(), a.String())
}

// Fingerprint returns the hex BLAKE3-256 digest of the database bytes.
func (db *DB) Fingerprint() (string, error) {
	if db.closed.Load() {
		return "", ErrClosed
	}
	sum := blake3.Sum256(db.buf)
	return hex.EncodeToString(sum[:]), nil
}

// Size returns the length of the database in bytes.
func (db *DB) Size() int {
	return len(db.buf)
}

// Close releases the database. Lookups after Close return ErrClosed.
// It is safe to call more than once.
func (db *DB) Close() error {
	if db.closed.Swap(true) {
		return nil
	}
	if db.release == nil {
		return nil
	}
	if err := db.release(); err != nil {
		return fmt.Errorf("ip2loc: close: %w", err)
	}
	return nil
}

// ---------------- PRIVATE BLOCK ----------------

func newDB(buf []byte, o options, release func() error) (*DB, error) {
	h, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}
	return &DB{
		buf:     dbBuffer(buf),
		header:  h,
		noIndex: o.noIndex,
		logger:  o.logger,
		release: release,
	}, nil
}

func headerOf(db *DB) *Header {
	if db == nil {
		return nil
	}
	return db.header
}
