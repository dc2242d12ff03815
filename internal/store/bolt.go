package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/inovacc/pplaces/internal/encoding"
	"github.com/inovacc/pplaces/internal/model"
)

const (
	boltBucketRepos = "repos" // key: big-endian position -> Repository JSON
	boltBucketMeta  = "meta"  // key: "saved_at" -> RFC 3339 time of the last write
	boltKeySavedAt  = "saved_at"
)

// Bolt keeps the cache in a bbolt file, one record per key in cache order.
type Bolt struct {
	storage *bbolt.DB
	path    string
}

var _ Store = (*Bolt)(nil)

// NewBolt opens (or creates) the bbolt file at path.
func NewBolt(path string) (*Bolt, error) {
	if err := encoding.EnsureParentDir(path); err != nil {
		return nil, err
	}

	instance, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}

	return &Bolt{storage: instance, path: path}, nil
}

func (b *Bolt) Read() (model.Cache, error) {
	var c model.Cache

	err := b.storage.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket([]byte(boltBucketMeta))
		if meta == nil || meta.Get([]byte(boltKeySavedAt)) == nil {
			return ErrNoCache
		}

		c = model.Cache{}

		bucket := tx.Bucket([]byte(boltBucketRepos))
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var repo model.Repository
			if err := json.Unmarshal(v, &repo); err != nil {
				return &CorruptError{Location: fmt.Sprintf("%s#%d", b.path, binary.BigEndian.Uint64(k)), Err: err}
			}

			c = append(c, repo)

			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (b *Bolt) Write(c model.Cache) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(boltBucketRepos)); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return err
		}

		bucket, err := tx.CreateBucket([]byte(boltBucketRepos))
		if err != nil {
			return err
		}

		for i := range c {
			data, err := json.Marshal(c[i])
			if err != nil {
				return fmt.Errorf("encoding %s: %w", c[i].Path, err)
			}

			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(i))

			if err := bucket.Put(key, data); err != nil {
				return err
			}
		}

		meta, err := tx.CreateBucketIfNotExists([]byte(boltBucketMeta))
		if err != nil {
			return err
		}

		return meta.Put([]byte(boltKeySavedAt), []byte(time.Now().UTC().Format(time.RFC3339)))
	})
}

func (b *Bolt) Close() error {
	return b.storage.Close()
}
