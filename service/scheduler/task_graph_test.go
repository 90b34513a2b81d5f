// ABOUTME: Tests for the dependency-aware task runner
// ABOUTME: Covers ordering, skip on failed dependency, dedup and cancellation

package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskGraphRunner_DependencyOrder(t *testing.T) {
	runner := NewTaskGraphRunner(4, nil)
	ctx := context.Background()

	var mu sync.Mutex
	var order []string
	record := func(name string) func(context.Context) error {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	first := runner.Submit(ctx, TaskSpec{Name: "first", Tags: []string{"pass"}, Run: record("first")})
	second := runner.Submit(ctx, TaskSpec{Name: "second", Tags: []string{"pass"}, Run: record("second")})
	runner.Submit(ctx, TaskSpec{
		Name:      "third",
		Tags:      []string{"pass"},
		DependsOn: []*TaskHandle{first, second},
		Run:       record("third"),
	})

	handles, err := runner.AwaitAllTerminal(ctx, "pass")
	require.NoError(t, err)
	require.Len(t, handles, 3)
	for _, h := range handles {
		assert.Equal(t, TaskSucceeded, h.State())
	}
	assert.Equal(t, "third", order[2])
}

func TestTaskGraphRunner_SkipsOnFailedDependency(t *testing.T) {
	runner := NewTaskGraphRunner(2, nil)
	ctx := context.Background()

	failing := runner.Submit(ctx, TaskSpec{
		Name: "failing",
		Tags: []string{"pass"},
		Run:  func(context.Context) error { return errors.New("boom") },
	})

	var ran atomic.Bool
	dependent := runner.Submit(ctx, TaskSpec{
		Name:      "dependent",
		Tags:      []string{"pass"},
		DependsOn: []*TaskHandle{failing},
		Run: func(context.Context) error {
			ran.Store(true)
			return nil
		},
	})

	_, err := runner.AwaitAllTerminal(ctx, "pass")
	require.NoError(t, err)
	assert.Equal(t, TaskFailed, failing.State())
	assert.Equal(t, TaskSkipped, dependent.State())
	assert.False(t, ran.Load())
	assert.ErrorContains(t, dependent.Err(), "failing")
}

func TestTaskGraphRunner_UniqueNameDeduplicates(t *testing.T) {
	runner := NewTaskGraphRunner(2, nil)
	ctx := context.Background()

	release := make(chan struct{})
	first := runner.Submit(ctx, TaskSpec{
		Name:       "refresh",
		UniqueName: "refresh-feed-7",
		Tags:       []string{"pass"},
		Run: func(context.Context) error {
			<-release
			return nil
		},
	})

	var ran atomic.Int32
	duplicate := runner.Submit(ctx, TaskSpec{
		Name:       "refresh",
		UniqueName: "refresh-feed-7",
		Tags:       []string{"pass"},
		Run: func(context.Context) error {
			ran.Add(1)
			return nil
		},
	})
	assert.Same(t, first, duplicate)

	close(release)
	_, err := runner.AwaitAllTerminal(ctx, "pass")
	require.NoError(t, err)
	assert.Zero(t, ran.Load())

	// Once terminal, the unique name is free again.
	runner.Prune()
	fresh := runner.Submit(ctx, TaskSpec{
		Name:       "refresh",
		UniqueName: "refresh-feed-7",
		Tags:       []string{"pass2"},
		Run:        func(context.Context) error { return nil },
	})
	assert.NotSame(t, first, fresh)
	_, err = runner.AwaitAllTerminal(ctx, "pass2")
	require.NoError(t, err)
}

func TestTaskGraphRunner_CancelByTag(t *testing.T) {
	runner := NewTaskGraphRunner(1, nil)
	ctx := context.Background()

	started := make(chan struct{})
	blocker := runner.Submit(ctx, TaskSpec{
		Name: "blocker",
		Tags: []string{"pass"},
		Run: func(taskCtx context.Context) error {
			close(started)
			<-taskCtx.Done()
			return taskCtx.Err()
		},
	})

	var ran atomic.Bool
	queued := runner.Submit(ctx, TaskSpec{
		Name:      "queued",
		Tags:      []string{"pass"},
		DependsOn: []*TaskHandle{blocker},
		Run: func(context.Context) error {
			ran.Store(true)
			return nil
		},
	})

	<-started
	runner.Cancel("pass")

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := runner.AwaitAllTerminal(waitCtx, "pass")
	require.NoError(t, err)

	assert.Equal(t, TaskCancelled, blocker.State())
	assert.False(t, ran.Load())
	assert.Contains(t, []TaskState{TaskCancelled, TaskSkipped}, queued.State())
}

func TestTaskGraphRunner_AwaitHonorsContext(t *testing.T) {
	runner := NewTaskGraphRunner(1, nil)

	runner.Submit(context.Background(), TaskSpec{
		Name: "stuck",
		Tags: []string{"pass"},
		Run: func(taskCtx context.Context) error {
			<-taskCtx.Done()
			return taskCtx.Err()
		},
	})

	waitCtx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := runner.AwaitAllTerminal(waitCtx, "pass")
	require.ErrorIs(t, err, context.DeadlineExceeded)

	runner.Cancel("pass")
	_, err = runner.AwaitAllTerminal(context.Background(), "pass")
	require.NoError(t, err)
}
