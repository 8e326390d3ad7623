package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/tabular"
	"github.com/RodolfoSilva/planneer-sub000/internal/interchange/treexml"
	"github.com/RodolfoSilva/planneer-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest_TabularFile(t *testing.T) {
	content, err := tabular.Generate(testutil.SampleSchedule())
	require.NoError(t, err)

	svc := NewIngestService()
	res, err := svc.Ingest(context.Background(), []byte(content), "plan.xer")
	require.NoError(t, err)

	assert.Equal(t, domain.FormatTabular, res.Format)
	assert.Equal(t, 3, res.Counts.Activities)
	assert.Equal(t, 2, res.Counts.WBSNodes)
	require.NotNil(t, res.Document)
	assert.Equal(t, "Warehouse Rollout", res.Document.Schedule.Name)
}

func TestIngest_TreeXMLFile(t *testing.T) {
	content, err := treexml.Generate(testutil.SampleSchedule())
	require.NoError(t, err)

	svc := NewIngestService()
	res, err := svc.Ingest(context.Background(), []byte(content), "plan.xml")
	require.NoError(t, err)

	assert.Equal(t, domain.FormatTreeXML, res.Format)
	assert.Equal(t, 3, res.Counts.Activities)
}

func TestIngest_RecoversWindows1252Bytes(t *testing.T) {
	content, err := tabular.Generate(testutil.SampleSchedule())
	require.NoError(t, err)
	// Wrap the activity name in Windows-1252 curly quotes (0x93/0x94);
	// the raw bytes are invalid UTF-8.
	mangled := bytes.Replace([]byte(content),
		[]byte("Kickoff"), []byte("\x93Kickoff\x94"), -1)

	svc := NewIngestService()
	res, err := svc.Ingest(context.Background(), mangled, "plan.xer")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatTabular, res.Format)

	kick := res.Document.Schedule.ActivityByCode("KICKOFF")
	require.NotNil(t, kick)
	assert.Equal(t, "“Kickoff”", kick.Name, "recovered curly quotes survive the parse")
}

func TestIngest_UnrecognizedFormat(t *testing.T) {
	svc := NewIngestService()
	_, err := svc.Ingest(context.Background(), []byte("just some notes"), "notes.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized interchange format")
}

func TestIngest_StructuralParseFailure(t *testing.T) {
	svc := NewIngestService()
	// Tabular file without a TASK table.
	in := "ERMHDR\t8.4\n%T\tPROJECT\n%F\tproj_id\tproj_short_name\tproj_name\tplan_start_date\tplan_end_date\n%R\t1\tX\tX\t\t\n%E\n"
	_, err := svc.Ingest(context.Background(), []byte(in), "plan.xer")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `ingesting "plan.xer"`)
}
