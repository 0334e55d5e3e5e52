// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package audit provides structured request logging for the demo server.
*/
package audit

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger provides an ok log output format on startup if no config is set.
func SetDefaultLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
