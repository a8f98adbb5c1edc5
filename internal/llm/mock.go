package llm

import "context"

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Response   string
	Err        error
	LastPrompt Prompt
}

func (m *MockClient) Generate(_ context.Context, prompt Prompt) (string, error) {
	m.LastPrompt = prompt
	return m.Response, m.Err
}
