// Package buffer provides the text sinks documents render into.
//
// Simple concatenates everything it is given. Wrap breaks its input into
// lines of a fixed visible width, aligning each line as it completes;
// characters matched by an optional ignore pattern (terminal escape
// sequences, for instance) are kept in the output but do not count
// toward the width.
package buffer
