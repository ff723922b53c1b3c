package llm

import "context"

// MockProvider returns a canned reply or error. Test helper.
type MockProvider struct {
	Reply    string
	Err      error
	Requests []Request
}

func (m *MockProvider) Complete(_ context.Context, req Request) (*Response, error) {
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return &Response{Text: m.Reply}, nil
}
