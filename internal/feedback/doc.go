// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package feedback defines the channel through which running algorithms
// report progress, messages and errors, and through which user
// cancellation is observed. It provides channel-backed, writer-backed,
// recording and no-op implementations.
package feedback
