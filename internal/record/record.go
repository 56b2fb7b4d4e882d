// Package record persists documents produced by the monetization features.
// A document belongs to a named collection; with gorm each collection is a
// table of the same name.
package record

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Sink stores one document in a collection.
type Sink interface {
	Record(ctx context.Context, collection string, doc any) error
}

// GormSink writes documents as rows.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Record(ctx context.Context, collection string, doc any) error {
	if err := s.db.WithContext(ctx).Table(collection).Create(doc).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// Entry is a document captured by MemorySink.
type Entry struct {
	Collection string
	Doc        any
}

// MemorySink keeps documents in memory.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
	err     error
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Record(_ context.Context, collection string, doc any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, Entry{Collection: collection, Doc: doc})
	return nil
}

// FailWith makes every later Record call return err. A nil err restores it.
func (s *MemorySink) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

// Entries returns the documents stored in collection, oldest first.
func (s *MemorySink) Entries(collection string) []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []any
	for _, e := range s.entries {
		if e.Collection == collection {
			out = append(out, e.Doc)
		}
	}
	return out
}

// Recorder writes through a Sink and never fails: errors are logged and
// dropped so a storage outage does not undo a completed ledger movement.
type Recorder struct {
	sink Sink
	log  logrus.FieldLogger
}

func NewRecorder(sink Sink, log logrus.FieldLogger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

// Record reports whether the document was stored.
func (r *Recorder) Record(ctx context.Context, collection string, doc any) bool {
	if err := r.sink.Record(ctx, collection, doc); err != nil {
		r.log.WithFields(logrus.Fields{
			"collection": collection,
			"error":      err,
		}).Error("Failed to record document")
		return false
	}
	return true
}
