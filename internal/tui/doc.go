// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui provides an interactive terminal progress display for
// algorithm runs.
package tui
