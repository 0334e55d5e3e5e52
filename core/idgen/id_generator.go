// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package idgen generates short per-request identifiers for log correlation.
*/
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const entropyBytes = 4

// Make returns a request ID of the form "HHMMSS.xxxxxxxx": a wall-clock
// prefix that keeps IDs greppable in logs, plus 4 bytes of entropy.
func Make() string {
	var entropy [entropyBytes]byte

	_, _ = rand.Read(entropy[:])

	return time.Now().Format("150405") + "." + hex.EncodeToString(entropy[:])
}
