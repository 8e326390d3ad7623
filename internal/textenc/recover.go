// Package textenc recovers a usable Unicode string from the raw bytes
// of an uploaded interchange file. Encoding declarations in the wild
// are unreliable or absent, so recovery is a fallback chain that always
// produces some string and never returns an error.
package textenc

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var encodingDeclPattern = regexp.MustCompile(`(?i)encoding\s*=\s*["']([^"']+)["']`)

// Recover decodes data into a string, in order, first success wins:
//  1. strict UTF-8
//  2. for XML-family filenames, the encoding declared in the prolog
//  3. byte-wise Windows-1252/Latin-1 mapping (total, always succeeds)
func Recover(data []byte, filename string) string {
	if utf8.Valid(data) {
		return string(data)
	}

	if isXMLFamily(filename) {
		if s, ok := decodeDeclared(data); ok {
			return s
		}
	}

	return decodeByteWise(data)
}

func isXMLFamily(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xml", ".p6xml", ".mspx":
		return true
	}
	return false
}

// decodeDeclared scans the first KiB for an XML encoding declaration
// and, when one names a charset we know, decodes the whole buffer with it.
func decodeDeclared(data []byte) (string, bool) {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	m := encodingDeclPattern.FindSubmatch(head)
	if m == nil {
		return "", false
	}

	var cm *charmap.Charmap
	switch normalizeCharsetName(string(m[1])) {
	case "utf-8":
		// Declared UTF-8 but strict decode already failed; let the
		// byte-wise fallback handle it.
		return "", false
	case "iso-8859-1":
		cm = charmap.ISO8859_1
	case "windows-1252":
		cm = charmap.Windows1252
	default:
		return "", false
	}

	decoded, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func normalizeCharsetName(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf8", "utf-8":
		return "utf-8"
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return "iso-8859-1"
	case "windows-1252", "cp1252", "win-1252":
		return "windows-1252"
	}
	return ""
}

// win1252Control maps the Windows-1252 control range 0x80-0x9F to its
// Unicode code points. The five undefined bytes are absent and fall
// through to the direct byte value.
var win1252Control = map[byte]rune{
	0x80: '€', 0x82: '‚', 0x83: 'ƒ', 0x84: '„',
	0x85: '…', 0x86: '†', 0x87: '‡', 0x88: 'ˆ',
	0x89: '‰', 0x8A: 'Š', 0x8B: '‹', 0x8C: 'Œ',
	0x8E: 'Ž', 0x91: '‘', 0x92: '’', 0x93: '“',
	0x94: '”', 0x95: '•', 0x96: '–', 0x97: '—',
	0x98: '˜', 0x99: '™', 0x9A: 'š', 0x9B: '›',
	0x9C: 'œ', 0x9E: 'ž', 0x9F: 'Ÿ',
}

// decodeByteWise maps each byte to a code point: ASCII to itself, the
// 0x80-0x9F range through the Windows-1252 table, 0xA0-0xFF directly
// (the Latin-1 region). It is total, so the chain always terminates.
func decodeByteWise(data []byte) string {
	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if r, ok := win1252Control[c]; ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(rune(c))
	}
	return b.String()
}
