package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

type fakeContext struct {
	tele.Context
	sender  *tele.User
	message *tele.Message
	sent    []string
}

func (c *fakeContext) Sender() *tele.User { return c.sender }
func (c *fakeContext) Message() *tele.Message { return c.message }
func (c *fakeContext) Callback() *tele.Callback { return nil }
func (c *fakeContext) Reply(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what.(string))
	return nil
}
func (c *fakeContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what.(string))
	return nil
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) IncrementRateLimit(ctx context.Context, scope, client string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.counts == nil {
		f.counts = make(map[string]int64)
	}
	f.counts[scope+":"+client]++
	return f.counts[scope+":"+client], nil
}

func TestRateLimit(t *testing.T) {
	counter := &fakeCounter{}
	calls := 0
	h := RateLimit(counter, zap.NewNop())(func(c tele.Context) error {
		calls++
		return nil
	})

	c := &fakeContext{sender: &tele.User{ID: 42}}
	for i := 0; i < MaxRequestsPerMinute+3; i++ {
		require.NoError(t, h(c))
	}

	assert.Equal(t, MaxRequestsPerMinute, calls)
	assert.Len(t, c.sent, 1, "warning is sent once per window")
	assert.Equal(t, int64(MaxRequestsPerMinute+3), counter.counts["bot:42"])
}

func TestRateLimit_CounterFailure(t *testing.T) {
	calls := 0
	h := RateLimit(&fakeCounter{err: errors.New("redis down")}, zap.NewNop())(func(c tele.Context) error {
		calls++
		return nil
	})

	require.NoError(t, h(&fakeContext{sender: &tele.User{ID: 1}}))
	assert.Equal(t, 1, calls)
}

func TestRecovery(t *testing.T) {
	h := Recovery(zap.NewNop())(func(c tele.Context) error {
		panic("boom")
	})

	c := &fakeContext{sender: &tele.User{ID: 7}}
	assert.NotPanics(t, func() { _ = h(c) })
	assert.Len(t, c.sent, 1)
}

func TestLogger_PassesErrorThrough(t *testing.T) {
	want := errors.New("handler failed")
	h := Logger(zap.NewNop())(func(c tele.Context) error {
		return want
	})

	err := h(&fakeContext{sender: &tele.User{ID: 7}, message: &tele.Message{Text: "/search it"}})
	assert.ErrorIs(t, err, want)
}
