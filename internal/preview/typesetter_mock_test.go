package preview

import (
	"errors"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"
)

// mockTypesetter is a testify mock for expectation-style tests.
type mockTypesetter struct {
	mock.Mock
}

func (m *mockTypesetter) Render(formula string, display bool) (string, error) {
	args := m.Called(formula, display)
	return args.String(0), args.Error(1)
}

// fakeTypesetter is a counting fake: it renders a trivial tag and fails on
// any formula containing "\bad".
type fakeTypesetter struct {
	mu    sync.Mutex
	calls int
}

func (f *fakeTypesetter) Render(formula string, display bool) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if strings.Contains(formula, `\bad`) {
		return "", errors.New("unmatched brace")
	}
	if display {
		return "<math display>" + formula + "</math>", nil
	}
	return "<math>" + formula + "</math>", nil
}

func (f *fakeTypesetter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
