// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

package timing

import (
	"context"

	"codeberg.org/stopclock/stopclock/config"
	"codeberg.org/stopclock/stopclock/server/request_context"
)

// EnabledCheck decides whether timing information is sent for the unit of
// work represented by ctx. Implementations must be cheap and non-blocking;
// the check runs on every measurement event.
type EnabledCheck func(ctx context.Context) bool

// DefaultEnabledCheck enables submitting when ctx belongs to an active
// request and the deployment is in development mode.
func DefaultEnabledCheck(ctx context.Context) bool {
	return request_context.Bound(ctx) && config.Global.Development.InDevelopment
}

// enabledCheck is process-wide state, replaced via SetEnabledCheck.
var enabledCheck EnabledCheck = DefaultEnabledCheck

// SetEnabledCheck installs a custom check that decides whether timing
// entries are actually submitted.
//
// Note that this function performs no synchronization. For this reason it
// should only be called while the application is starting up, before the
// server accepts requests.
func SetEnabledCheck(check EnabledCheck) {
	if check == nil {
		panic("timing: enabled check must not be nil")
	}

	enabledCheck = check
}
