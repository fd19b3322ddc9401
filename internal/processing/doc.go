// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package processing defines the contract between the host and its
// algorithms: parameter declarations, supplied parameter values, layer
// references, output destination resolution and the Algorithm
// interface itself.
package processing
