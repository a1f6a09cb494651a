// Package formats binds command names to actions for each output format
// and builds documents ready to render into.
//
// Plain documents know only the neutral grouping commands and never wrap.
// ASCII documents wrap to a fixed width and approximate styling with
// plain text: bold becomes upper case, titles are centred, accents are
// folded into precomposed characters. ANSI documents extend ASCII with
// terminal escape sequences, which the wrapping buffer does not count
// toward the line width.
package formats
