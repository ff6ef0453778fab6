package shutdown_test

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/pkg/shutdown"
)

func TestWaitExecutesHooksOnContextCancel(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	waitDone := make(chan struct{})

	go func() {
		defer close(waitDone)
		shutdown.Wait(ctx, time.Second,
			func(context.Context) error {
				close(hook1Called)
				return nil
			},
			func(context.Context) error {
				close(hook2Called)
				return errors.New("hook failure is logged, not fatal")
			},
		)
	}()

	cancel()

	for name, ch := range map[string]chan struct{}{"hook1": hook1Called, "hook2": hook2Called, "wait": waitDone} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("%s did not finish", name)
		}
	}
}

func TestWaitExecutesHooksOnSignal(t *testing.T) {
	hookCalled := make(chan struct{})

	go shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
		close(hookCalled)
		return nil
	})

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-hookCalled:
	case <-time.After(2 * time.Second):
		t.Error("hook was not called")
	}
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	shutdown.Wait(ctx, 100*time.Millisecond, func(hookCtx context.Context) error {
		<-hookCtx.Done()
		time.Sleep(time.Second)
		return nil
	})

	assert.Less(t, time.Since(start), 900*time.Millisecond, "Wait must return once the timeout expires")
}
