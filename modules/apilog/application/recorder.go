// Package application contains the apilog use cases.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/rai/commerce-monolith-go/internal/platform/worker"
	"github.com/rai/commerce-monolith-go/modules/apilog/domain"
)

// Recorder persists audit records off the request path. Entries go
// through the worker pool; a dropped record costs an audit row, never
// a request.
type Recorder struct {
	repo   domain.Repository
	pool   *worker.Pool
	logger *slog.Logger
}

func NewRecorder(repo domain.Repository, pool *worker.Pool, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, pool: pool, logger: logger}
}

// Record queues one exchange for persistence.
func (r *Recorder) Record(method, path string, status int, requestBody, responseBody string) {
	record := domain.NewRecord(method, path, status, requestBody, responseBody)

	err := r.pool.Submit(func(ctx context.Context) {
		if err := r.repo.Save(ctx, record); err != nil {
			r.logger.Warn("failed to save api log",
				slog.String("method", method),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		r.logger.Warn("api log task rejected", slog.String("error", err.Error()))
	}
}

// RecordDTO is the read model for one audit record.
type RecordDTO struct {
	ID           string    `json:"id"`
	Method       string    `json:"method"`
	Path         string    `json:"path"`
	Status       int       `json:"status"`
	RequestBody  string    `json:"request_body,omitempty"`
	ResponseBody string    `json:"response_body,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListLogsHandler serves the audit trail listing.
type ListLogsHandler struct {
	repo domain.Repository
}

func NewListLogsHandler(repo domain.Repository) *ListLogsHandler {
	return &ListLogsHandler{repo: repo}
}

func (h *ListLogsHandler) Handle(ctx context.Context, limit int) ([]*RecordDTO, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 500 {
		limit = 500
	}

	records, err := h.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]*RecordDTO, len(records))
	for i, record := range records {
		dtos[i] = &RecordDTO{
			ID:           record.ID(),
			Method:       record.Method(),
			Path:         record.Path(),
			Status:       record.Status(),
			RequestBody:  record.RequestBody(),
			ResponseBody: record.ResponseBody(),
			CreatedAt:    record.CreatedAt(),
		}
	}
	return dtos, nil
}
