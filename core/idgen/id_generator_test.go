// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package idgen

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()

	id := Make()

	prefix, entropy, found := strings.Cut(id, ".")
	if !found {
		t.Fatalf("expected a '.' separator in %q", id)
	}

	if len(prefix) != 6 {
		t.Errorf("time part of %q has length %d, want 6", id, len(prefix))
	}

	if len(entropy) != entropyBytes*2 {
		t.Errorf("entropy part of %q has length %d, want %d", id, len(entropy), entropyBytes*2)
	}

	if Make() == id && Make() == id {
		t.Error("consecutive IDs should differ")
	}
}
