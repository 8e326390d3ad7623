package interchange

import (
	"strings"

	"github.com/RodolfoSilva/planneer-sub000/internal/domain"
)

// DetectFormat sniffs decoded interchange text and reports which codec
// should parse it. The tabular format always opens with its header
// marker; the tree format is XML.
func DetectFormat(text string) domain.SourceFormat {
	trimmed := strings.TrimLeft(text, "\uFEFF \t\r\n")
	switch {
	case strings.HasPrefix(trimmed, "ERMHDR"):
		return domain.FormatTabular
	case strings.Contains(trimmed, "\n%T\t"), strings.HasPrefix(trimmed, "%T\t"):
		return domain.FormatTabular
	case strings.HasPrefix(trimmed, "<"):
		return domain.FormatTreeXML
	}
	return domain.FormatUnknown
}
