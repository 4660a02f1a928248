package goroutine

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSafeGo_RecoversPanic(t *testing.T) {
	out := &syncBuffer{}
	log := logrus.New()
	log.SetOutput(out)
	rh := NewRecoveryHandler(logrus.NewEntry(log))

	done := make(chan struct{})
	rh.SafeGo(func() {
		defer close(done)
		panic("boom")
	})
	<-done

	assert.Eventually(t, func() bool { return bytes.Contains([]byte(out.String()), []byte("boom")) }, time.Second, 5*time.Millisecond)
}

func TestSafeGoWithContext_PassesContext(t *testing.T) {
	rh := NewRecoveryHandler(logrus.NewEntry(logrus.New()))
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "v")

	got := make(chan any, 1)
	rh.SafeGoWithContext(ctx, func(ctx context.Context) { got <- ctx.Value(ctxKey{}) })
	assert.Equal(t, "v", <-got)
}

func TestRun_RecoversInline(t *testing.T) {
	rh := NewRecoveryHandler(logrus.NewEntry(logrus.New()))
	assert.NotPanics(t, func() {
		rh.Run(func() { panic("inline") })
	})
}
