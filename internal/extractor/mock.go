package extractor

import (
	"context"
	"sync"
)

// MockExtractor implements TextExtractor for testing purposes.
// It returns predefined text instead of reading the document.
type MockExtractor struct {
	MockText string
	MockErr  error

	mu    sync.Mutex
	calls []string
}

// NewMockExtractor creates a new MockExtractor with the given mock data.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(_ context.Context, path string) (string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, path)
	e.mu.Unlock()

	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}

// Calls returns the paths ExtractText was called with.
func (e *MockExtractor) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}
