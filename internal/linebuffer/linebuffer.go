// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package linebuffer

import (
	"strings"
)

// Buffer converts a sequence of arbitrarily chunked text fragments into
// discrete, complete lines. A trailing fragment that does not yet end
// in a line terminator is carried over to the next Feed call. A Buffer
// holds mutable state scoped to one stream of one process invocation
// and must be freshly created per invocation.
//
// The zero value is ready to use.
type Buffer struct {
	pending strings.Builder
}

// Feed appends chunk to the carry-over buffer and returns the complete
// lines made available by it, in order. Lines are returned without
// their terminators; a terminating "\r\n" is treated like "\n". When
// the combined data contains no terminator, nothing is returned and
// the whole combination is retained.
func (b *Buffer) Feed(chunk string) []string {
	b.pending.WriteString(chunk)
	combined := b.pending.String()

	last := strings.LastIndexByte(combined, '\n')
	if last < 0 {
		return nil
	}

	rest := combined[last+1:]
	b.pending.Reset()
	b.pending.WriteString(rest)

	lines := strings.Split(combined[:last], "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// Pending returns the carried-over partial line.
func (b *Buffer) Pending() string {
	return b.pending.String()
}

// Flush returns the carried-over partial line and resets the buffer.
// It is used when the stream has ended and no terminator will arrive.
func (b *Buffer) Flush() string {
	rest := b.pending.String()
	b.pending.Reset()

	return rest
}
