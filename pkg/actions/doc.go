// Package actions holds the reusable renderings that formats bind to
// command names.
//
// Every action implements document.Action. Actions are configured once,
// when a format registry is built, and are safe to share between
// documents: all per-render state lives in the document they are
// executed against.
//
// Actions check the number of arguments they are given. A node with the
// wrong arity is a bug in whatever built the tree, so the action returns
// an INVALID_USAGE error instead of guessing.
package actions
