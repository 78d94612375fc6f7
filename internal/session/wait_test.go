package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/renato0307/remux/internal/domain"
	"github.com/renato0307/remux/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectFake(t *testing.T, host *fakeHost, id string) *Handle {
	t.Helper()
	handle, err := NewRegistry(host, Config{}).Connect(context.Background(), id)
	require.NoError(t, err)
	return handle
}

func TestWaitExitZero(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: 1, exitCode: "0"})
	handle := connectFake(t, host, "job")

	result, err := handle.Wait(context.Background(), WaitOptions{PollInterval: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitExited, result.State)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 0, *result.ExitCode)
	assert.True(t, handle.Disconnected())
	assert.Equal(t, result.ExitCode, handle.ExitCode())
}

func TestWaitExitNonZero(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: 3, exitCode: "42", output: "failing\n"})
	handle := connectFake(t, host, "job")

	result, err := handle.Wait(context.Background(), WaitOptions{PollInterval: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitExited, result.State)
	require.NotNil(t, result.ExitCode)
	assert.Equal(t, 42, *result.ExitCode)
	assert.Equal(t, "failing\n", result.Output)
}

func TestWaitExitWithoutSentinel(t *testing.T) {
	host := newFakeHost()
	host.add("killed", &fakeSession{dieAfter: 1})
	handle := connectFake(t, host, "killed")

	result, err := handle.Wait(context.Background(), WaitOptions{PollInterval: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitExited, result.State)
	assert.Nil(t, result.ExitCode)
}

func TestWaitTimeoutLeavesSessionRunning(t *testing.T) {
	host := newFakeHost()
	host.add("server", &fakeSession{dieAfter: -1})
	handle := connectFake(t, host, "server")

	result, err := handle.Wait(context.Background(), WaitOptions{
		PollInterval: 5 * time.Millisecond,
		Timeout:      30 * time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitTimedOut, result.State)
	assert.Nil(t, result.ExitCode)
	assert.Equal(t, domain.TimeoutMessage, result.Error)
	assert.Equal(t, domain.TimeoutMessage, handle.Err())
	assert.False(t, handle.Disconnected())

	for _, command := range host.commands() {
		assert.NotContains(t, command, "kill-session")
	}
	alive, err := handle.IsConnected(context.Background())
	require.NoError(t, err)
	assert.True(t, alive)
}

func TestWaitCancelledBeforeFirstPoll(t *testing.T) {
	host := newFakeHost()
	host.add("server", &fakeSession{dieAfter: -1, output: "hello\n"})
	handle := connectFake(t, host, "server")
	before := len(host.commands())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	result, err := handle.Wait(ctx, WaitOptions{OnData: func(string) { called = true }})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitCancelled, result.State)
	assert.False(t, called)
	assert.Len(t, host.commands(), before)
	assert.False(t, handle.Disconnected())
}

func TestWaitCancelledBetweenTicks(t *testing.T) {
	host := newFakeHost()
	host.add("server", &fakeSession{dieAfter: -1, output: "hello\n"})
	handle := connectFake(t, host, "server")

	ctx, cancel := context.WithCancel(context.Background())
	var deltas []string
	result, err := handle.Wait(ctx, WaitOptions{
		OnData: func(delta string) {
			deltas = append(deltas, delta)
			cancel()
		},
		PollInterval: time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.WaitCancelled, result.State)
	assert.Equal(t, []string{"hello\n"}, deltas)
}

func TestWaitReportsDeltasInOrder(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: 4, exitCode: "0"})
	host.onCapture = func(_ string, s *fakeSession) {
		s.output += strings.Repeat("x", s.captures) + "\n"
	}
	handle := connectFake(t, host, "job")

	var deltas []string
	result, err := handle.Wait(context.Background(), WaitOptions{
		OnData:       func(delta string) { deltas = append(deltas, delta) },
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"x\n", "xx\n", "xxx\n", "xxxx\n"}, deltas)
	assert.Equal(t, strings.Join(deltas, ""), result.Output)
}

func TestWaitRecoversFromTransientFailures(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: 1, exitCode: "0"})
	handle := connectFake(t, host, "job")
	host.transportFailures = 2

	result, err := handle.Wait(context.Background(), WaitOptions{PollInterval: time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, domain.WaitExited, result.State)
}

func TestWaitGivesUpAfterRepeatedTransportFailures(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: -1})
	handle := connectFake(t, host, "job")
	host.transportFailures = 100

	_, err := handle.Wait(context.Background(), WaitOptions{PollInterval: time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrTransport)
	assert.False(t, handle.Disconnected())
}

func TestDisconnectedHandleRejectsOperations(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: -1})
	handle := connectFake(t, host, "job")
	handle.Disconnect()
	ctx := context.Background()

	_, err := handle.Wait(ctx, WaitOptions{})
	assert.ErrorIs(t, err, domain.ErrHandleDisconnected)
	assert.ErrorIs(t, handle.SendInput(ctx, "x"), domain.ErrHandleDisconnected)
	_, err = handle.Read(ctx, domain.ReadOptions{})
	assert.ErrorIs(t, err, domain.ErrHandleDisconnected)

	connected, err := handle.IsConnected(ctx)
	require.NoError(t, err)
	assert.False(t, connected)
}

func TestHandleKillDisconnects(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: -1})
	handle := connectFake(t, host, "job")

	require.NoError(t, handle.Kill(context.Background()))
	assert.True(t, handle.Disconnected())
}

func TestWaitForConnection(t *testing.T) {
	host := newFakeHost()
	host.add("job", &fakeSession{dieAfter: -1})
	handle := connectFake(t, host, "job")

	require.NoError(t, handle.WaitForConnection(context.Background(), time.Second))

	require.NoError(t, handle.registry.Kill(context.Background(), "job"))
	err := handle.WaitForConnection(context.Background(), 300*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}
