// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides HTTP request handling functionality for the
demo server.

The chain is assembled in the router package; the first registered
middleware is the outermost one.
*/
package middleware
