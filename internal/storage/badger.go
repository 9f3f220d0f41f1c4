// ABOUTME: Badger key-value implementation of Repository.
// ABOUTME: Records are JSON values; secondary indexes are ordered keys scanned by prefix.
package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"
)

// Key layout. <id8> is a big-endian uint64 so identity order is key order.
const (
	foodPrefix     = "food/"
	mealPrefix     = "meal/"
	foodNameIdx    = "idx/food/name/"
	mealDateIdx    = "idx/meal/date/"
	mealTypeIdx    = "idx/meal/type/"
	foodSeqKey     = "seq/food"
	mealSeqKey     = "seq/meal"
	idxSep         = "\x00"
	sequenceLease  = 100
	badgerDirPerms = 0750
)

// BadgerStore is the Badger implementation of Repository.
type BadgerStore struct {
	db      *badger.DB
	foodSeq *badger.Sequence
	mealSeq *badger.Sequence
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger store in dir and leases the id
// sequences. The returned handle is ready for use.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, badgerDirPerms); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(newBadgerLogger())
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	foodSeq, err := db.GetSequence([]byte(foodSeqKey), sequenceLease)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("food sequence: %w", err)
	}
	mealSeq, err := db.GetSequence([]byte(mealSeqKey), sequenceLease)
	if err != nil {
		_ = foodSeq.Release()
		_ = db.Close()
		return nil, fmt.Errorf("meal sequence: %w", err)
	}

	return &BadgerStore{db: db, foodSeq: foodSeq, mealSeq: mealSeq}, nil
}

// Close releases the sequence leases and closes the store.
func (b *BadgerStore) Close() error {
	var errs []error
	if err := b.foodSeq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release food sequence: %w", err))
	}
	if err := b.mealSeq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release meal sequence: %w", err))
	}
	if err := b.db.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func idBytes(id int64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(id))
	return buf
}

func recordKey(prefix string, id int64) []byte {
	return append([]byte(prefix), idBytes(id)...)
}

func indexKey(prefix, value string, id int64) []byte {
	key := make([]byte, 0, len(prefix)+len(value)+len(idxSep)+8)
	key = append(key, prefix...)
	key = append(key, value...)
	key = append(key, idxSep...)
	return append(key, idBytes(id)...)
}

// indexID extracts the trailing identity from an index key.
func indexID(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key[len(key)-8:]))
}

// nextID hands out the next free identity. Imported records may already
// occupy ids the sequence has not reached yet, so taken ids are skipped.
func (b *BadgerStore) nextID(seq *badger.Sequence, prefix string) (int64, error) {
	for {
		n, err := seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next id: %w", err)
		}
		id := int64(n) + 1

		taken := false
		err = b.db.View(func(txn *badger.Txn) error {
			_, err := txn.Get(recordKey(prefix, id))
			if err == nil {
				taken = true
				return nil
			}
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("check id: %w", err)
		}
		if !taken {
			return id, nil
		}
	}
}

// getValue reads the value at key. A missing key returns nil, nil.
func getValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// scanIndex returns the identities stored under prefix, in key order.
func scanIndex(txn *badger.Txn, prefix []byte) []int64 {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []int64
	for it.Rewind(); it.Valid(); it.Next() {
		ids = append(ids, indexID(it.Item().Key()))
	}
	return ids
}

// scanValues returns every value stored under prefix, in key order.
func scanValues(txn *badger.Txn, prefix []byte) ([][]byte, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	var values [][]byte
	for it.Rewind(); it.Valid(); it.Next() {
		v, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// badgerLogger routes Badger's internal logging through charm log.
type badgerLogger struct {
	logger *log.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{logger: log.Default().WithPrefix("badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(badgerMessage(format, args))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(badgerMessage(format, args))
}

// Badger reports compactions and replays at info level; they are debug noise here.
func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(badgerMessage(format, args))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(badgerMessage(format, args))
}

func badgerMessage(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("badger: %w", err)
	}
	return nil
}
