package devstore

import (
	"reflect"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/common"
)

// Store keeps documents per database/collection pair.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]models.Record
}

func NewStore() *Store {
	return &Store{collections: make(map[string][]models.Record)}
}

func namespace(db, coll string) string {
	return db + "/" + coll
}

// NewObjectID returns a fresh 24-hex-digit identifier.
func NewObjectID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func matches(doc models.Record, filter models.Record) bool {
	for k, v := range filter {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

// Find returns copies of every document matching filter, in insertion order.
func (s *Store) Find(db, coll string, filter models.Record) []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Record
	for _, doc := range s.collections[namespace(db, coll)] {
		if matches(doc, filter) {
			out = append(out, doc.Clone())
		}
	}
	return out
}

// FindOne returns the first matching document or common.ErrorNotFound.
func (s *Store) FindOne(db, coll string, filter models.Record) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, doc := range s.collections[namespace(db, coll)] {
		if matches(doc, filter) {
			return doc.Clone(), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (s *Store) Count(db, coll string, filter models.Record) int {
	return len(s.Find(db, coll, filter))
}

// Insert stores a copy of doc, assigning an _id when it has none, and
// returns the stored document.
func (s *Store) Insert(db, coll string, doc models.Record) models.Record {
	stored := doc.Clone()
	if stored == nil {
		stored = models.Record{}
	}
	if stored.ID() == "" {
		stored[models.FieldID] = map[string]any{"$oid": NewObjectID()}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ns := namespace(db, coll)
	s.collections[ns] = append(s.collections[ns], stored)
	return stored.Clone()
}

// Update applies set to every document matching filter and reports how many
// matched. With upsert, a miss inserts a new document built from the
// filter's fields plus set; upserted is then true.
//
// A set key whose path conflicts with a matched document fails the whole
// update with models.ErrPathConflict and changes nothing.
func (s *Store) Update(db, coll string, filter, set models.Record, upsert bool) (n int, upserted bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns := namespace(db, coll)
	docs := s.collections[ns]

	staged := make(map[int]models.Record)
	for i, doc := range docs {
		if !matches(doc, filter) {
			continue
		}
		next := doc.Clone()
		if err := next.ApplySet(set); err != nil {
			return 0, false, err
		}
		staged[i] = next
	}
	for i, doc := range staged {
		docs[i] = doc
	}
	if len(staged) > 0 || !upsert {
		return len(staged), false, nil
	}

	doc := filter.Clone()
	if doc == nil {
		doc = models.Record{}
	}
	if err := doc.ApplySet(set); err != nil {
		return 0, false, err
	}
	if doc.ID() == "" {
		doc[models.FieldID] = map[string]any{"$oid": NewObjectID()}
	}
	s.collections[ns] = append(docs, doc)
	return 1, true, nil
}
