// Package typeset wraps the external math typesetting library behind a
// narrow interface. The preview engine only depends on Typesetter, so tests
// can substitute mocks and the library can be swapped without touching the
// engine.
package typeset

import "fmt"

// Typesetter renders a delimiter-stripped formula to presentable markup.
// display selects display (block) layout over inline layout.
//
// Implementations must never panic across this boundary: a malformed
// formula yields an error, and the caller decides the fallback.
type Typesetter interface {
	Render(formula string, display bool) (string, error)
}

// ErrEmptyOutput reports a typesetting call that produced no markup without
// reporting an error of its own.
var ErrEmptyOutput = fmt.Errorf("typeset: empty output")
