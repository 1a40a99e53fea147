package storage

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketPreferences = []byte("preferences")
	keySnapshot       = []byte("snapshot")
)

// BoltOptions zero values mean a one second lock timeout and mode 0600.
type BoltOptions struct {
	Path     string
	Timeout  time.Duration
	FileMode os.FileMode
}

// BoltStorage keeps the JSON snapshot under a single key of a BoltDB bucket.
type BoltStorage struct {
	db *bolt.DB
}

func OpenBolt(opts BoltOptions) (*BoltStorage, error) {
	if opts.Path == "" {
		return nil, errors.New("bolt path is empty")
	}
	timeout := cmp.Or(opts.Timeout, time.Second)
	mode := cmp.Or(opts.FileMode, 0600)

	dir := filepath.Dir(opts.Path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := bolt.Open(opts.Path, mode, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", opts.Path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating bucket %s: %w", bucketPreferences, err)
	}

	return &BoltStorage{db: db}, nil
}

func (b *BoltStorage) Load() (*Snapshot, error) {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketPreferences).Get(keySnapshot)
		if v != nil {
			// v is only valid for the life of the transaction
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if data == nil {
		return nil, ErrNoSnapshot
	}
	return decodeSnapshot(data)
}

func (b *BoltStorage) Save(snapshot *Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPreferences).Put(keySnapshot, data)
	})
}

func (b *BoltStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
