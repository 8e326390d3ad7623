package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/tabular"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/treexml"
	"github.com/RodolfoSilva/planneer-sub000/internal/repository"
	"github.com/RodolfoSilva/planneer-sub000/internal/storage"
)

type exportService struct {
	schedules repository.ScheduleRepo
	store     storage.ObjectStore
	observer  UseCaseObserver
}

// NewExportService creates the export use case. The store may be nil;
// export then only generates.
func NewExportService(schedules repository.ScheduleRepo, store storage.ObjectStore, observers ...UseCaseObserver) ExportService {
	return &exportService{
		schedules: schedules,
		store:     store,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *exportService) Export(ctx context.Context, scheduleID string, format domain.SourceFormat) (result *ExportResult, err error) {
	started := time.Now()
	defer func() {
		observe(ctx, s.observer, "export", started, err, map[string]any{
			"schedule_id": scheduleID,
			"format":      string(format),
		})
	}()

	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("loading schedule for export: %w", err)
	}

	var content, ext string
	switch format {
	case domain.FormatTreeXML:
		content, err = treexml.Generate(sched)
		ext = "xml"
	case domain.FormatTabular:
		content, err = tabular.Generate(sched)
		ext = "xer"
	default:
		return nil, fmt.Errorf("exporting schedule %s: unsupported format %q", scheduleID, format)
	}
	if err != nil {
		return nil, fmt.Errorf("generating %s export: %w", format, err)
	}

	result = &ExportResult{
		ScheduleID: scheduleID,
		Format:     format,
		Content:    content,
	}

	// Storage is best-effort: a failed put never undoes generation.
	if s.store != nil {
		key := fmt.Sprintf("exports/%s.%s", scheduleID, ext)
		storedKey, storeErr := s.store.Put(ctx, key, []byte(content))
		if storeErr != nil {
			result.StoreErr = storeErr
		} else {
			result.StorageKey = storedKey
		}
	}
	return result, nil
}
