package services

import "context"

// OfflineAdvisor is the fallback used when no external advice provider is
// wired in. It can't reason about the question, so it hands back the
// grounded game context and lets the client render it.
type OfflineAdvisor struct{}

func NewOfflineAdvisor() *OfflineAdvisor {
	return &OfflineAdvisor{}
}

func (a *OfflineAdvisor) Advise(_ context.Context, prompt *AdvicePrompt) (string, error) {
	if prompt.Report == "" {
		return "The coach provider isn't configured, so general questions can't be answered right now.", nil
	}

	return "The coach provider isn't configured, here is the current game state instead.\n\n" + prompt.Report, nil
}
