package gateway

import (
	"context"
	"strings"
	"sync"
)

// PendingAssertion is an [IdentityProvider] fed by the shell: the screen that
// runs the provider's browser flow hands the resulting assertion over with
// Provide, and the next SignInInteractive consumes it.
type PendingAssertion struct {
	mu        sync.Mutex
	assertion string
}

func NewPendingAssertion() *PendingAssertion {
	return &PendingAssertion{}
}

// Provide stores assertion for the next sign-in, replacing any earlier one.
func (p *PendingAssertion) Provide(assertion string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.assertion = strings.TrimSpace(assertion)
}

// Assertion implements [IdentityProvider]. The assertion is single-use.
func (p *PendingAssertion) Assertion(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.assertion == "" {
		return "", ErrNoAssertion
	}
	assertion := p.assertion
	p.assertion = ""
	return assertion, nil
}
