package interchange

import (
	"testing"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.SourceFormat
	}{
		{"header prefix", "ERMHDR\t8.4\t2024-03-04\n%T\tTASK\n", domain.FormatTabular},
		{"table marker without header", "%T\tTASK\n%F\ttask_id\n", domain.FormatTabular},
		{"xml declaration", `<?xml version="1.0"?><APIBusinessObjects/>`, domain.FormatTreeXML},
		{"bare root element", `<APIBusinessObjects><Project/></APIBusinessObjects>`, domain.FormatTreeXML},
		{"leading whitespace xml", "\n  <BusinessObjects/>", domain.FormatTreeXML},
		{"byte order mark before header", "\uFEFFERMHDR\t8.4\n%T\tTASK\n", domain.FormatTabular},
		{"byte order mark before xml", "\uFEFF<?xml version=\"1.0\"?><APIBusinessObjects/>", domain.FormatTreeXML},
		{"plain text", "not a schedule at all", domain.FormatUnknown},
		{"empty", "", domain.FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.in))
		})
	}
}
