package service

import (
	"context"
	"fmt"
	"time"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/tabular"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/treexml"
	"github.com/RodolfoSilva/planneer-sub000/internal/textenc"
)

type ingestService struct {
	observer UseCaseObserver
}

// NewIngestService creates the ingestion use case. Stateless; safe for
// concurrent use.
func NewIngestService(observers ...UseCaseObserver) IngestService {
	return &ingestService{observer: useCaseObserverOrNoop(observers)}
}

func (s *ingestService) Ingest(ctx context.Context, data []byte, filename string) (result *IngestResult, err error) {
	started := time.Now()
	defer func() {
		fields := map[string]any{"filename": filename, "bytes": len(data)}
		if result != nil {
			fields["format"] = string(result.Format)
			fields["activities"] = result.Counts.Activities
		}
		observe(ctx, s.observer, "ingest", started, err, fields)
	}()

	text := textenc.Recover(data, filename)
	format := interchange.DetectFormat(text)

	var doc *interchange.Document
	switch format {
	case domain.FormatTabular:
		doc, err = tabular.Parse(text)
	case domain.FormatTreeXML:
		doc, err = treexml.Parse(text)
	default:
		return nil, fmt.Errorf("ingesting %q: unrecognized interchange format", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("ingesting %q: %w", filename, err)
	}

	return &IngestResult{
		Document: doc,
		Counts:   doc.CountEntities(),
		Format:   doc.Format,
	}, nil
}
