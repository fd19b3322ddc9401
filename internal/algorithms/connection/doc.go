// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package connection wraps the `nadi connection` command-line tool as
// a processing algorithm.
package connection
