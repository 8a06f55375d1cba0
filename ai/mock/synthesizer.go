package mock

import (
	"context"
	"sync"
)

// MockSynthesizer is a test double for ai.Synthesizer.
// It allows custom behavior injection via function fields and records the
// prompts it receives.
type MockSynthesizer struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a fixed canned answer.
	GenerateFunc func(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Answer is the canned response used when GenerateFunc is nil.
	Answer string

	mu          sync.Mutex
	callCount   int
	lastSystem  string
	lastUser    string
}

// NewMockSynthesizer creates a mock synthesizer with a fixed canned answer.
// Note: Returns concrete type to allow test assertions.
func NewMockSynthesizer() *MockSynthesizer {
	return &MockSynthesizer{Answer: "mock answer [1]"}
}

// Generate records the prompts and returns the injected or canned answer.
func (m *MockSynthesizer) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, systemPrompt, userPrompt)
	}
	return m.Answer, nil
}

// CallCount returns the number of Generate calls.
func (m *MockSynthesizer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompts returns the system and user prompts of the most recent call.
func (m *MockSynthesizer) LastPrompts() (system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem, m.lastUser
}

// Reset clears recorded calls and injected behavior.
func (m *MockSynthesizer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.GenerateFunc = nil
}
