// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package algorithmregistry provides a registry of processing
// algorithms, looked up by name.
package algorithmregistry
