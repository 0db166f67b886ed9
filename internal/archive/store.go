package archive

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"newsdigest/internal/domain"
)

var (
	bDigests = []byte("digests")
	bLinks   = []byte("links")
)

// Store persists digests in a bbolt file. Digests are keyed newest first;
// the links bucket records every article link already digested.
type Store struct {
	db *bolt.DB
}

// Open creates or opens the archive at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("archive: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bDigests, bLinks} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes digests and marks their links as seen in one transaction.
// Incomplete digests are stored but leave their link unseen.
func (s *Store) Save(digests []domain.Digest) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		db := tx.Bucket(bDigests)
		lb := tx.Bucket(bLinks)
		for _, d := range digests {
			v, err := json.Marshal(d)
			if err != nil {
				return err
			}
			if err := db.Put(digestKey(d.CreatedAt, d.ID), v); err != nil {
				return err
			}
			if d.Article.Link == "" || d.Incomplete {
				continue
			}
			if err := lb.Put([]byte(d.Article.Link), []byte(d.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Seen reports whether link has been archived before.
func (s *Store) Seen(link string) (bool, error) {
	var ok bool
	err := s.db.View(func(tx *bolt.Tx) error {
		ok = tx.Bucket(bLinks).Get([]byte(link)) != nil
		return nil
	})
	return ok, err
}

// Recent returns up to limit digests, newest first. limit <= 0 returns all.
func (s *Store) Recent(limit int) ([]domain.Digest, error) {
	var out []domain.Digest
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bDigests).Cursor()
		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var d domain.Digest
			if err := json.Unmarshal(v, &d); err != nil {
				return err
			}
			out = append(out, d)
		}
		return nil
	})
	return out, err
}

// digestKey sorts newest first: inverted big-endian nanos, NUL, id.
func digestKey(t time.Time, id string) []byte {
	buf := make([]byte, 8, 8+1+len(id))
	binary.BigEndian.PutUint64(buf, ^uint64(t.UnixNano()))
	buf = append(buf, 0x00)
	return append(buf, id...)
}
