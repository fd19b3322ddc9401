// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog provides a context-based logger built on the slog package.
// The log level is read from an environment variable derived from the
// executable name, e.g. NADIPROC_LOG_LEVEL for an executable named
// "nadiproc". The level can be set to "DEBUG", "INFO", "WARN" or "ERROR";
// any other value defaults to "WARN".
package ctxlog
