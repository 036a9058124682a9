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

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/bitop-dev/fileinfo/internal/config"
	"github.com/bitop-dev/fileinfo/internal/inspect"
	"github.com/bitop-dev/fileinfo/internal/protocol"
)

// runInteractive feeds manually typed request lines through the same
// handler the stdio server uses, with line editing and persistent history.
func runInteractive(logger zerolog.Logger, cfg *config.Config) {
	inspector := inspect.New(cfg.InspectLimitsConfig(), logger)
	handler := protocol.NewHandler(inspector, logger)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "file_info> ",
		HistoryFile:     cfg.CommandHistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize readline")
	}
	defer rl.Close()

	fmt.Println("file_info interactive mode")
	fmt.Println(`Type requests like {"type":"describe"} (Ctrl+D to exit)`)
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			logger.Debug().Msg("Readline interrupted")
			break
		}

		response, emit := handler.HandleLine(line)
		if !emit {
			continue
		}
		fmt.Println(response)
	}

	logger.Info().Msg("Session ended")
}
