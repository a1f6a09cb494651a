// Package document executes command trees against a buffer.
//
// A Document resolves every node of the tree through its action registry
// and lets the action write into the document's buffer. Actions that need
// to measure or wrap a fragment on its own render it into a sub-document:
// a document with a private buffer that shares counters, diagnostics,
// footnotes, footer and attributes with its parent.
//
// Unknown command names never stop rendering. They are recorded as
// UNKNOWN_COMMAND diagnostics and rendered with Passthrough.
package document
