package sessions

import "sync"

// Message is a single conversation turn.
type Message struct {
	Role    string
	Content string
}

// MessageHistory keeps the lightweight conversation history of a session.
// Only transcripts and responses, never the game stats payloads.
type MessageHistory struct {
	mu       sync.Mutex
	messages []Message
}

// AddUserMessage appends the user transcript.
func (h *MessageHistory) AddUserMessage(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, Message{Role: "user", Content: content})
}

// AddAssistantMessage appends the assistant response.
func (h *MessageHistory) AddAssistantMessage(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, Message{Role: "assistant", Content: content})
}

// All returns a copy of the history.
func (h *MessageHistory) All() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Message{}, h.messages...)
}

// Count returns the number of stored messages.
func (h *MessageHistory) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}

// Clear drops the whole history.
func (h *MessageHistory) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}
