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

package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/bitop-dev/fileinfo/internal/errors"
	"github.com/bitop-dev/fileinfo/internal/jsonval"
)

// Inspector is the collaborator that resolves "call" requests.
type Inspector interface {
	Call(params jsonval.Object) (text string, isError bool)
}

// Handler classifies one request line and produces the response for it.
// A bad line never ends the session; every failure becomes an error
// envelope.
type Handler struct {
	inspector Inspector
	logger    zerolog.Logger
}

// NewHandler creates a request handler backed by the given inspector.
func NewHandler(inspector Inspector, logger zerolog.Logger) *Handler {
	return &Handler{inspector: inspector, logger: logger}
}

// HandleLine returns the response for one request line. Empty and
// whitespace-only lines produce no response at all (emit is false).
func (h *Handler) HandleLine(line string) (response string, emit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}

	msg, err := jsonval.ParseObject([]byte(trimmed))
	if err != nil {
		perr := apperrors.Wrap(apperrors.CodeParse, "JSON parse error", err)
		h.logger.Warn().Str("code", string(perr.Code)).Err(err).Msg("Request failed to parse")
		return TextResult(perr.Error(), true), true
	}

	typ, ok := msg.String("type")
	if !ok {
		perr := apperrors.New(apperrors.CodeProtocol, "Missing 'type' field")
		h.logger.Warn().Str("code", string(perr.Code)).Msg("Request without type field")
		return TextResult(perr.Error(), true), true
	}

	switch typ {
	case "describe":
		h.logger.Debug().Msg("Describe request")
		return Definition, true
	case "call":
		callID, _ := msg.String("call_id")
		params, ok := msg.Object("params")
		if !ok {
			params = jsonval.Object{}
		}
		text, isError := h.inspector.Call(params)
		h.logger.Debug().Str("call_id", callID).Bool("error", isError).Msg("Call handled")
		return TextResult(text, isError), true
	default:
		perr := apperrors.New(apperrors.CodeProtocol, "Unknown type: "+typ)
		h.logger.Warn().Str("code", string(perr.Code)).Str("type", typ).Msg("Unknown request type")
		return TextResult(perr.Error(), true), true
	}
}

// Dispatcher runs the line loop: one JSON request per input line, one JSON
// response per output line, flushed before the next read. Strictly
// sequential; there are no in-flight requests.
type Dispatcher struct {
	handler *Handler
	scanner *bufio.Scanner
	out     *bufio.Writer
}

// NewDispatcher wires a handler to a line-delimited transport.
func NewDispatcher(r io.Reader, w io.Writer, inspector Inspector, logger zerolog.Logger) *Dispatcher {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Dispatcher{
		handler: NewHandler(inspector, logger),
		scanner: scanner,
		out:     bufio.NewWriter(w),
	}
}

// Run loops until end of input or a transport read error; both end the
// session cleanly. Request-level failures never propagate past the loop.
func (d *Dispatcher) Run() error {
	for d.scanner.Scan() {
		response, emit := d.handler.HandleLine(d.scanner.Text())
		if !emit {
			continue
		}
		if _, err := d.out.WriteString(response); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		if err := d.out.WriteByte('\n'); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
		// Every response must be visible before the next line is read.
		if err := d.out.Flush(); err != nil {
			return fmt.Errorf("flush response: %w", err)
		}
	}
	if err := d.scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}
