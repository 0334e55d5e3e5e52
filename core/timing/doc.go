// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package timing sends server-side timing information as Server-Timing headers
in the current response. Browsers typically surface that information in the
networking section of their developer tools.

Timing information is usually provided through one of the convenience
functions such as [Set] or [Start], or by wrapping a callback with
[WrapListener], [WrapProvider], [Run] or [Supply]. Manually creating an
[Entry] and submitting it with [Entry.Submit] or [Entry.ForceSubmit] is
mainly intended for advanced use cases.

The "current response" is resolved through the request context attached to
the context.Context passed in; handlers running inside the middleware chain
of this module get one for free. By default, timing information is dropped
when the deployment is not in development mode, to keep response sizes down
and to avoid leaking potentially sensitive information. Custom logic for
deciding when timing information is sent can be installed with
[SetEnabledCheck].
*/
package timing
