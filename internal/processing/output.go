// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package processing

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	memoryScheme   = "memory"
	tempOutputName = "connections.gpkg"
)

// ErrUnsupportedDestination is returned for output destinations that
// are connection strings rather than files. Only plain file paths can
// be handed to the external tool.
var ErrUnsupportedDestination = errors.New(
	"unsupported output destination, please use a save-to-file destination")

// ResolveOutputDestination turns an output specification into a file
// path the external tool can write to. In-memory destinations
// ("memory:...") are redirected to a generated temporary file; any
// other connection scheme (e.g. "ogr:", "postgres:") is rejected.
// Plain paths, including Windows drive-letter paths, pass through
// unchanged.
func ResolveOutputDestination(fs afero.Fs, spec string) (string, error) {
	if spec == "" {
		return "", fmt.Errorf("%w: empty destination", ErrUnsupportedDestination)
	}

	scheme := destinationScheme(spec)

	switch scheme {
	case "":
		return spec, nil
	case memoryScheme:
		tmpDir, err := afero.TempDir(fs, "", "nadiproc-")
		if err != nil {
			return "", fmt.Errorf("failed to create temporary output directory: %w", err)
		}

		return filepath.Join(tmpDir, tempOutputName), nil
	default:
		return "", fmt.Errorf("%w: scheme %q", ErrUnsupportedDestination, scheme)
	}
}

// destinationScheme extracts a leading connection scheme from spec.
// Single letters before the colon are Windows drive letters, not
// schemes.
func destinationScheme(spec string) string {
	i := strings.IndexByte(spec, ':')
	if i < 2 {
		return ""
	}

	scheme := spec[:i]
	for _, r := range scheme {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return ""
		}
	}

	return strings.ToLower(scheme)
}
