// Package domain contains the API audit log entities.
package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one captured request/response exchange.
// Bodies are stored verbatim; truncation is the caller's concern.
type Record struct {
	id           string
	method       string
	path         string
	status       int
	requestBody  string
	responseBody string
	createdAt    time.Time
}

func NewRecord(method, path string, status int, requestBody, responseBody string) *Record {
	return &Record{
		id:           uuid.New().String(),
		method:       method,
		path:         path,
		status:       status,
		requestBody:  requestBody,
		responseBody: responseBody,
		createdAt:    time.Now().UTC(),
	}
}

// Reconstitute recreates a Record from persistence.
func Reconstitute(id, method, path string, status int, requestBody, responseBody string, createdAt time.Time) *Record {
	return &Record{
		id:           id,
		method:       method,
		path:         path,
		status:       status,
		requestBody:  requestBody,
		responseBody: responseBody,
		createdAt:    createdAt,
	}
}

func (r *Record) ID() string           { return r.id }
func (r *Record) Method() string       { return r.method }
func (r *Record) Path() string         { return r.path }
func (r *Record) Status() int          { return r.status }
func (r *Record) RequestBody() string  { return r.requestBody }
func (r *Record) ResponseBody() string { return r.responseBody }
func (r *Record) CreatedAt() time.Time { return r.createdAt }

// Repository persists audit records.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	// FindRecent returns the most recent records, newest first.
	FindRecent(ctx context.Context, limit int) ([]*Record, error)
}
