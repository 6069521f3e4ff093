package handler

import (
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/xenking/streamson"
)

var indexerBucket = []byte("elements")

// Indexer is the persistent Buffer variant: it stores each matched element
// in a bolt bucket, keyed by the element path and an insertion sequence
// number, so large documents can be indexed once and queried later without
// reparsing.
type Indexer struct {
	Nop
	db   *bolt.DB
	path string
	buf  []byte
}

func NewIndexer(dbPath string) (*Indexer, error) {
	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(indexerBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Indexer{db: db}, nil
}

func (h *Indexer) Start(p *streamson.Path, _ int, _ streamson.Kind) ([]byte, error) {
	h.path = ""
	if p != nil {
		h.path = p.String()
	}
	h.buf = h.buf[:0]
	return nil, nil
}

func (h *Indexer) Feed(data []byte, _ int) ([]byte, error) {
	h.buf = append(h.buf, data...)
	return nil, nil
}

func (h *Indexer) End(*streamson.Path, int) ([]byte, error) {
	err := h.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(indexerBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s#%08d", h.path, seq)
		return b.Put([]byte(key), h.buf)
	})
	return nil, err
}

// Close closes the underlying database.
func (h *Indexer) Close() error { return h.db.Close() }
