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

// Package jsonval parses JSON documents with a hand-rolled recursive-descent
// parser. It is deliberately lenient where the wire protocol is: unknown
// backslash escapes pass the backslash through literally, true/false/null
// are fixed-length token skips, and trailing content after a complete value
// is ignored.
package jsonval

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes a JSON syntax failure and the byte offset at which
// the expectation was violated.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Offset)
}

// parser holds the byte cursor for one Parse call. It never escapes it.
type parser struct {
	buf []byte
	pos int
}

// Parse reads a single JSON value from b. Bytes after a complete value are
// ignored.
func Parse(b []byte) (Value, error) {
	p := &parser{buf: b}
	return p.parseValue()
}

// ParseObject parses b and requires the top-level value to be an object,
// as the line protocol demands of every request.
func ParseObject(b []byte) (Object, error) {
	v, err := Parse(b)
	if err != nil {
		return nil, err
	}
	if v.Kind != KindObject {
		return nil, &ParseError{Msg: "expected JSON object"}
	}
	return v.Obj, nil
}

func (p *parser) fail(msg string) *ParseError {
	return &ParseError{Offset: p.pos, Msg: msg}
}

func (p *parser) peek() (byte, bool) {
	if p.pos < len(p.buf) {
		return p.buf[p.pos], true
	}
	return 0, false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.buf) {
		switch p.buf[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

// parseValue dispatches on the first non-whitespace byte.
func (p *parser) parseValue() (Value, error) {
	p.skipSpace()
	if c, ok := p.peek(); ok {
		switch c {
		case '"':
			s, err := p.parseString()
			if err != nil {
				return Value{}, err
			}
			return Value{Kind: KindString, Str: s}, nil
		case '{':
			return p.parseObject()
		case '[':
			return p.parseArray()
		case 't':
			p.pos += len("true")
			return Value{Kind: KindBool, Bool: true}, nil
		case 'f':
			p.pos += len("false")
			return Value{Kind: KindBool, Bool: false}, nil
		case 'n':
			p.pos += len("null")
			return Value{Kind: KindNull}, nil
		}
	}
	return p.parseNumber()
}

func (p *parser) parseString() (string, error) {
	if c, ok := p.peek(); !ok || c != '"' {
		return "", p.fail(`expected '"'`)
	}
	p.pos++
	var out strings.Builder
	for p.pos < len(p.buf) {
		switch c := p.buf[p.pos]; c {
		case '"':
			p.pos++
			return out.String(), nil
		case '\\':
			p.pos++
			esc, ok := p.peek()
			if !ok {
				// Backslash at end of input: keep it and let the loop
				// terminate on the unterminated-string path.
				out.WriteByte('\\')
				continue
			}
			switch esc {
			case '"':
				out.WriteByte('"')
				p.pos++
			case '\\':
				out.WriteByte('\\')
				p.pos++
			case 'n':
				out.WriteByte('\n')
				p.pos++
			case 'r':
				out.WriteByte('\r')
				p.pos++
			case 't':
				out.WriteByte('\t')
				p.pos++
			default:
				// Unknown escape: keep the backslash, do not consume the
				// next byte, which is then emitted literally.
				out.WriteByte('\\')
			}
		default:
			out.WriteByte(c)
			p.pos++
		}
	}
	return "", p.fail("unterminated string")
}

func (p *parser) parseObject() (Value, error) {
	p.pos++ // consume '{'
	obj := Object{}
	p.skipSpace()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return Value{Kind: KindObject, Obj: obj}, nil
	}
	for {
		p.skipSpace()
		key, err := p.parseString()
		if err != nil {
			return Value{}, err
		}
		p.skipSpace()
		if c, ok := p.peek(); !ok || c != ':' {
			return Value{}, p.fail("expected ':'")
		}
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		obj[key] = v // last write wins on duplicate keys
		p.skipSpace()
		c, ok := p.peek()
		switch {
		case ok && c == ',':
			p.pos++
		case ok && c == '}':
			p.pos++
			return Value{Kind: KindObject, Obj: obj}, nil
		default:
			return Value{}, p.fail("expected ',' or '}'")
		}
	}
}

func (p *parser) parseArray() (Value, error) {
	p.pos++ // consume '['
	var arr []Value
	p.skipSpace()
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return Value{Kind: KindArray, Arr: arr}, nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		arr = append(arr, v)
		p.skipSpace()
		c, ok := p.peek()
		switch {
		case ok && c == ',':
			p.pos++
		case ok && c == ']':
			p.pos++
			return Value{Kind: KindArray, Arr: arr}, nil
		default:
			return Value{}, p.fail("expected ',' or ']'")
		}
	}
}

// parseNumber scans a maximal run of bytes up to the next structural
// delimiter and parses it as a float64. Malformed runs fail rather than
// coerce to zero.
func (p *parser) parseNumber() (Value, error) {
	start := p.pos
	for p.pos < len(p.buf) && !isNumberDelim(p.buf[p.pos]) {
		p.pos++
	}
	tok := string(p.buf[start:p.pos])
	n, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return Value{}, &ParseError{Offset: start, Msg: "invalid token"}
	}
	return Value{Kind: KindNumber, Num: n}, nil
}

// The delimiter set matches the wire protocol; '\r' is intentionally not
// part of it.
func isNumberDelim(c byte) bool {
	switch c {
	case ',', '}', ']', ' ', '\t', '\n':
		return true
	}
	return false
}
