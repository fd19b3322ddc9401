// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package runproc runs an external tool as a single blocking call,
// streaming its stdout and stderr through synchronous per-stream
// handlers set up before the call.
package runproc
