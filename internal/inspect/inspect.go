// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package inspect reports metadata about filesystem paths: size, MIME type
// and content statistics for files, entry listings with totals for
// directories.
package inspect

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	apperrors "github.com/bitop-dev/fileinfo/internal/errors"
	"github.com/bitop-dev/fileinfo/internal/jsonval"
	"github.com/bitop-dev/fileinfo/internal/paths"
)

// Limits bounds how much content inspection reads.
type Limits struct {
	MaxFileSizeBytes int64
}

const (
	defaultMaxEntries = 50
	minEntries        = 1
	maxEntries        = 500

	maxPathLength = 4096

	defaultMaxFileSizeBytes int64 = 10 * 1024 * 1024

	timeLayout = "2006-01-02 15:04:05"
)

// DefaultLimits returns the default resource limits for inspection.
func DefaultLimits() Limits {
	return Limits{MaxFileSizeBytes: defaultMaxFileSizeBytes}
}

// Inspector resolves inspection requests into human-readable reports.
type Inspector struct {
	limits Limits
	logger zerolog.Logger
}

// New creates an inspector. Zero or negative limits fall back to defaults.
func New(limits Limits, logger zerolog.Logger) *Inspector {
	if limits.MaxFileSizeBytes <= 0 {
		limits.MaxFileSizeBytes = defaultMaxFileSizeBytes
	}
	return &Inspector{limits: limits, logger: logger}
}

// Call resolves a "call" request's params into a report. The returned flag
// is true when the text is an error message rather than a report.
func (ins *Inspector) Call(params jsonval.Object) (string, bool) {
	path, ok := params.String("path")
	if !ok {
		return "Error: 'path' parameter is required", true
	}

	max := defaultMaxEntries
	if n, ok := params.Number("max_entries"); ok {
		max = clampEntries(int(n))
	}

	return ins.Inspect(path, max)
}

func clampEntries(n int) int {
	if n < minEntries {
		return minEntries
	}
	if n > maxEntries {
		return maxEntries
	}
	return n
}

// Inspect returns the report for path, listing at most maxEntries directory
// entries.
func (ins *Inspector) Inspect(path string, maxEntries int) (string, bool) {
	if err := paths.ValidatePathString(path, maxPathLength); err != nil {
		return "Error: " + err.Error(), true
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "Error: path not found: " + path, true
	}
	if err != nil {
		serr := apperrors.Wrap(apperrors.CodeInspect, fmt.Sprintf("cannot stat %s", path), err)
		ins.logger.Warn().Err(err).Str("path", path).Msg("Stat failed")
		return "Error: " + serr.Error(), true
	}

	var report string
	var rerr error
	if info.IsDir() {
		report, rerr = ins.dirReport(path, info, maxEntries)
	} else {
		report, rerr = ins.fileReport(path, info)
	}
	if rerr != nil {
		ins.logger.Warn().Err(rerr).Str("path", path).Msg("Inspection failed")
		return "Error: " + rerr.Error(), true
	}
	return report, false
}

func (ins *Inspector) fileReport(path string, info os.FileInfo) (string, error) {
	mime := detectMIME(path)

	var b strings.Builder
	fmt.Fprintf(&b, "path    : %s\n", path)
	fmt.Fprintf(&b, "type    : file\n")
	fmt.Fprintf(&b, "size    : %d (%s)\n", info.Size(), humanize.IBytes(uint64(info.Size())))
	fmt.Fprintf(&b, "mime    : %s\n", mime)
	fmt.Fprintf(&b, "modified: %s (%s)\n", info.ModTime().Format(timeLayout), humanize.Time(info.ModTime()))
	if owner, ok := ownerDetails(path); ok {
		fmt.Fprintf(&b, "owner   : %s\n", owner)
	}

	if isTextLike(mime) {
		ins.writeTextStats(&b, path, info)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

// writeTextStats appends line/word/character counts for text-like files.
// Files above the size limit and unreadable or non-UTF-8 content get a
// marker instead of counts.
func (ins *Inspector) writeTextStats(b *strings.Builder, path string, info os.FileInfo) {
	if info.Size() > ins.limits.MaxFileSizeBytes {
		fmt.Fprintf(b, "lines   : (file exceeds %s, counts skipped)\n",
			humanize.IBytes(uint64(ins.limits.MaxFileSizeBytes)))
		return
	}

	content, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(content) {
		b.WriteString("lines   : (binary or unreadable)\n")
		return
	}

	text := string(content)
	fmt.Fprintf(b, "lines   : %d\n", countLines(text))
	fmt.Fprintf(b, "words   : %d\n", len(strings.Fields(text)))
	fmt.Fprintf(b, "chars   : %d\n", utf8.RuneCountInString(text))
}

// countLines counts lines the way a text editor does: a trailing newline
// does not start an extra empty line.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func (ins *Inspector) dirReport(path string, info os.FileInfo, maxEntries int) (string, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInspect, "cannot read dir", err)
	}

	type item struct {
		name  string
		isDir bool
		size  int64
	}
	items := make([]item, 0, len(dirEntries))
	var totalSize int64
	for _, entry := range dirEntries {
		it := item{name: entry.Name(), isDir: entry.IsDir()}
		if fi, err := entry.Info(); err == nil {
			it.size = fi.Size()
			it.isDir = fi.IsDir()
		}
		totalSize += it.size
		items = append(items, it)
	}

	// Directories first, then alphabetical.
	sort.Slice(items, func(i, j int) bool {
		if items[i].isDir != items[j].isDir {
			return items[i].isDir
		}
		return items[i].name < items[j].name
	})

	var b strings.Builder
	fmt.Fprintf(&b, "path     : %s\n", path)
	fmt.Fprintf(&b, "type     : directory\n")
	fmt.Fprintf(&b, "entries  : %d\n", len(items))
	fmt.Fprintf(&b, "total    : %s\n", humanize.IBytes(uint64(totalSize)))
	fmt.Fprintf(&b, "modified : %s (%s)\n", info.ModTime().Format(timeLayout), humanize.Time(info.ModTime()))
	b.WriteByte('\n')

	show := min(len(items), maxEntries)
	for _, it := range items[:show] {
		name := it.name
		if it.isDir {
			name += "/"
		}
		fmt.Fprintf(&b, "  %-42s %10s\n", name, humanize.IBytes(uint64(it.size)))
	}
	if len(items) > maxEntries {
		fmt.Fprintf(&b, "  … %d more entries\n", len(items)-maxEntries)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}
