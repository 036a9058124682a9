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

package inspect

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackMIME = "application/octet-stream"

// detectMIME sniffs file content rather than trusting the extension.
func detectMIME(path string) string {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return fallbackMIME
	}
	return m.String()
}

// isTextLike reports whether line/word/character counts make sense for the
// detected type.
func isTextLike(mime string) bool {
	if strings.HasPrefix(mime, "text/") {
		return true
	}
	base := mime
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	switch base {
	case "application/json", "application/xml", "application/javascript", "application/x-ndjson":
		return true
	}
	return false
}
