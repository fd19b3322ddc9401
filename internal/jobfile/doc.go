// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package jobfile decodes job definitions, which name an algorithm and
// the parameter values to run it with. YAML and HCL are supported.
package jobfile
