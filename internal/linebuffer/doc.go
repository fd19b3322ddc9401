// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package linebuffer turns arbitrarily chunked subprocess output into
// complete lines and relays them into a feedback channel: stdout lines
// of the form "label:percent" drive the progress bar, other stdout
// lines become informational messages, and stderr lines become
// warnings.
package linebuffer
