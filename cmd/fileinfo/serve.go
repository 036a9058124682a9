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

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/bitop-dev/fileinfo/internal/config"
	"github.com/bitop-dev/fileinfo/internal/inspect"
	"github.com/bitop-dev/fileinfo/internal/protocol"
)

// runServe reads requests from stdin and writes responses to stdout until
// end of input. A transport failure ends the session cleanly; it is not a
// fault.
func runServe(logger zerolog.Logger, cfg *config.Config) {
	logger.Debug().Msg("Serving requests on stdin/stdout")

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "file_info: reading requests from a terminal; run with -i for interactive mode")
	}

	inspector := inspect.New(cfg.InspectLimitsConfig(), logger)
	dispatcher := protocol.NewDispatcher(os.Stdin, os.Stdout, inspector, logger)

	if err := dispatcher.Run(); err != nil {
		logger.Warn().Err(err).Msg("Transport closed with error")
	}
	logger.Info().Msg("Session ended")
}
