package service

import (
	"context"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange"
	"github.com/RodolfoSilva/planneer-sub000/internal/skeleton"
)

// IngestResult holds the outcome of decoding and parsing one uploaded
// interchange file.
type IngestResult struct {
	Document *interchange.Document
	Counts   interchange.Counts
	Format   domain.SourceFormat
}

type IngestService interface {
	// Ingest recovers text from raw bytes, detects the source format,
	// parses it and derives counts. Structural parse failures abort the
	// whole call; decode failures cannot happen.
	Ingest(ctx context.Context, data []byte, filename string) (*IngestResult, error)
}

// ExportResult holds generated interchange text and, when the object
// store accepted it, the storage key.
type ExportResult struct {
	ScheduleID string
	Format     domain.SourceFormat
	Content    string
	StorageKey string
	StoreErr   error // non-nil when the put failed; generation still succeeded
}

type ExportService interface {
	Export(ctx context.Context, scheduleID string, format domain.SourceFormat) (*ExportResult, error)
}

// GenerateRequest carries a skeleton and its project start date into
// the scheduling pass.
type GenerateRequest struct {
	StartDate time.Time
	Skeleton  *skeleton.Skeleton
}

type GenerateService interface {
	// Generate dates the skeleton, persists the result (remapping
	// temporary ids to durable ones) and returns the stored schedule.
	Generate(ctx context.Context, req GenerateRequest) (*domain.Schedule, error)
}
