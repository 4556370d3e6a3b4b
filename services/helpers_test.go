package services

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// blockingGenerator never answers before its context ends.
type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

// panicGenerator panics on prompts containing marker and is unavailable
// otherwise.
type panicGenerator struct {
	marker string
}

func (g panicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.marker != "" && strings.Contains(prompt, g.marker) {
		panic("generator exploded")
	}
	return "", ErrModelUnavailable
}
