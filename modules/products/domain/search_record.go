package domain

import (
	"time"

	"github.com/google/uuid"
)

// SearchRecord is a write-only audit entry for a catalog search.
// It is not part of the transactional core; records are persisted
// asynchronously and only read back for the recent-activity listing.
type SearchRecord struct {
	id        string
	term      string
	sortBy    string
	sortOrder string
	createdAt time.Time
}

func NewSearchRecord(term, sortBy, sortOrder string) *SearchRecord {
	return &SearchRecord{
		id:        uuid.New().String(),
		term:      term,
		sortBy:    sortBy,
		sortOrder: sortOrder,
		createdAt: time.Now().UTC(),
	}
}

// ReconstituteSearchRecord recreates a SearchRecord from persistence.
func ReconstituteSearchRecord(id, term, sortBy, sortOrder string, createdAt time.Time) *SearchRecord {
	return &SearchRecord{
		id:        id,
		term:      term,
		sortBy:    sortBy,
		sortOrder: sortOrder,
		createdAt: createdAt,
	}
}

func (s *SearchRecord) ID() string           { return s.id }
func (s *SearchRecord) Term() string         { return s.term }
func (s *SearchRecord) SortBy() string       { return s.sortBy }
func (s *SearchRecord) SortOrder() string    { return s.sortOrder }
func (s *SearchRecord) CreatedAt() time.Time { return s.createdAt }
