package llm

import (
	"context"
	"time"
)

const DefaultTimeout = 10 * time.Second

// Service bounds every provider call with a timeout. It satisfies the
// composer's Completer.
type Service struct {
	provider Provider
	timeout  time.Duration
}

func NewService(provider Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{provider: provider, timeout: timeout}
}

func (s *Service) Complete(ctx context.Context, systemConstraints, groundingContext, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.provider.Complete(ctx, systemConstraints, groundingContext, userMessage)
}

func (s *Service) GetProviderName() string {
	return s.provider.GetProviderName()
}
