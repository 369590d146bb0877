package typeset

import (
	"fmt"
	"sync"

	"github.com/wyatt915/treeblood"

	"github.com/shg8/silverbullet/internal/log"
)

// TreeBlood typesets TeX to MathML via the treeblood library.
// A single instance carries the document's macro definitions.
type TreeBlood struct {
	mu   sync.Mutex
	pitz *treeblood.Pitziil
}

// NewTreeBlood creates a typesetter with the given TeX macros (may be nil).
func NewTreeBlood(macros map[string]string) *TreeBlood {
	return &TreeBlood{
		pitz: treeblood.NewDocument(macros, false),
	}
}

// Render implements Typesetter. The library is asked not to fail on bad
// input, but it can still panic or error on malformed TeX; both are
// converted to plain errors here.
func (t *TreeBlood) Render(formula string, display bool) (markup string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatWidget, "typesetting panic", "formula", formula, "panic", r)
			markup = ""
			err = fmt.Errorf("typeset: render panic: %v", r)
		}
	}()

	if display {
		markup, err = t.pitz.DisplayStyle(formula)
	} else {
		markup, err = t.pitz.TextStyle(formula)
	}
	if err != nil {
		return "", fmt.Errorf("typeset: render: %w", err)
	}
	if markup == "" {
		return "", ErrEmptyOutput
	}
	return markup, nil
}

var _ Typesetter = (*TreeBlood)(nil)
