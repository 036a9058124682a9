package protocol

import (
	"strconv"
	"strings"
)

// Definition is the tool self-description returned for "describe" requests.
// Its shape is part of the wire contract; it must be byte-identical across
// calls and is therefore a fixed literal, not generated.
const Definition = `{"name":"file_info","description":"Get detailed metadata and statistics about a file or directory. For files: size, MIME type, line/word/character count. For directories: entry listing with sizes. Useful for understanding the contents of a path before reading it.","parameters":{"type":"object","properties":{"path":{"type":"string","description":"File or directory path to inspect"},"max_entries":{"type":"integer","description":"Maximum directory entries to list (default: 50, max: 500)"}},"required":["path"]}}`

// TextResult renders the single-result envelope: one text content item and
// the error flag.
func TextResult(text string, isError bool) string {
	var b strings.Builder
	b.Grow(len(text) + 48)
	b.WriteString(`{"content":[{"type":"text","text":"`)
	escapeTo(&b, text)
	b.WriteString(`"}],"error":`)
	b.WriteString(strconv.FormatBool(isError))
	b.WriteByte('}')
	return b.String()
}

// escapeTo escapes backslash, double quote, newline, carriage return and
// tab. No other normalization is performed.
func escapeTo(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
}
