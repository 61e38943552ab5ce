package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubProvider struct {
	name   string
	answer string
	err    error
	calls  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	p.calls++
	return p.answer, p.err
}

func TestCompleteFirstProviderWins(t *testing.T) {
	first := &stubProvider{name: "first", answer: "hello"}
	second := &stubProvider{name: "second", answer: "unused"}
	svc := NewService(first, second)

	reply := svc.complete(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})

	assert.Equal(t, "hello", reply.Text)
	assert.Equal(t, "first", reply.Provider)
	assert.False(t, reply.Fallback)
	assert.Equal(t, 0, second.calls)
}

func TestCompleteFallsThroughOnError(t *testing.T) {
	first := &stubProvider{name: "first", err: errors.New("rate limited")}
	second := &stubProvider{name: "second", answer: "recovered"}
	svc := NewService(first, second)

	reply := svc.complete(context.Background(), nil)

	assert.Equal(t, "recovered", reply.Text)
	assert.Equal(t, "second", reply.Provider)
	assert.Equal(t, 1, first.calls)
}

func TestCompleteSkipsUnconfiguredProviders(t *testing.T) {
	unconfigured := &stubProvider{name: "first", err: ErrNotConfigured}
	second := &stubProvider{name: "second", answer: "ok"}
	svc := NewService(unconfigured, second)

	reply := svc.complete(context.Background(), nil)

	assert.Equal(t, "second", reply.Provider)
}

func TestCompleteAllProvidersFailYieldsCannedReply(t *testing.T) {
	svc := NewService(
		&stubProvider{name: "a", err: errors.New("down")},
		&stubProvider{name: "b", err: errors.New("down")},
		&stubProvider{name: "c", err: ErrNotConfigured},
	)

	reply := svc.complete(context.Background(), nil)

	assert.True(t, reply.Fallback)
	assert.Equal(t, FallbackReply, reply.Text)
	assert.Empty(t, reply.Provider)
}

func TestCompleteNoProvidersConfigured(t *testing.T) {
	svc := NewService()
	reply := svc.complete(context.Background(), nil)
	assert.True(t, reply.Fallback)
}
