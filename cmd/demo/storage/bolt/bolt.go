// Package bolt is document storage backed by bbolt, where each site
// is a bucket and each document is a value keyed by its id.
package bolt

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/fieldexpr/fieldexpr/cmd/demo/storage"

	bolt "go.etcd.io/bbolt"
)

type Storage struct {
	Debug    bool
	filename string
	db       *bolt.DB
}

func NewStorage(filename string) (*Storage, error) {
	return &Storage{
		filename: filename,
	}, nil
}

func (s *Storage) Open() error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) logf(format string, args ...interface{}) {
	if s.Debug {
		log.Printf("bolt.Storage."+format, args...)
	}
}

func (s *Storage) MakeSite(ctx context.Context, sid string) error {
	s.logf("MakeSite %s", sid)
	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sid))
		return err
	})
}

func (s *Storage) RemSite(ctx context.Context, sid string) error {
	s.logf("RemSite %s", sid)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.DeleteBucket([]byte(sid))
	})
}

func (s *Storage) GetSite(ctx context.Context, sid string) ([]*storage.Document, error) {
	s.logf("GetSite %s", sid)
	ds := make([]*storage.Document, 0, 32)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sid))
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for id, bs := c.First(); id != nil; id, bs = c.Next() {
			var d storage.Document
			if err := json.Unmarshal(bs, &d); err != nil {
				return err
			}
			d.Did = string(id)
			ds = append(ds, &d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logf("GetSite %s found %d documents", sid, len(ds))

	if len(ds) == 0 {
		return nil, nil
	}

	return ds, nil
}

func (s *Storage) GetDoc(ctx context.Context, sid string, did string) (*storage.Document, error) {
	s.logf("GetDoc %s %s", sid, did)
	var d *storage.Document
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sid))
		if b == nil {
			return storage.NotFound
		}
		bs := b.Get([]byte(did))
		if bs == nil {
			return storage.NotFound
		}
		d = &storage.Document{}
		if err := json.Unmarshal(bs, d); err != nil {
			return err
		}
		d.Did = did
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Storage) WriteDocs(ctx context.Context, sid string, ds []*storage.Document) error {
	s.logf("WriteDocs %s (%d)", sid, len(ds))

	if 0 == len(ds) {
		return nil
	}

	vals := make(map[string][]byte, len(ds))

	for _, d := range ds {
		id := d.Did
		if d.Deleted {
			vals[id] = nil
		} else {
			// To save some space, remove the id.
			d = &storage.Document{
				Blocks: d.Blocks,
			}
			js, err := json.Marshal(&d)
			if err != nil {
				return err
			}
			vals[id] = js
		}
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(sid))
		if err != nil {
			return err
		}
		for id, bs := range vals {
			var (
				key = []byte(id)
				err error
			)
			if bs == nil {
				err = b.Delete(key)
			} else {
				err = b.Put(key, bs)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
