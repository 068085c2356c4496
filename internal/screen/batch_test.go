package screen

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/masterchefhck/transportdf-mvp-sub001/pkg/errors"
)

// TestRunBatch_FirstErrorIsTheCause tests that a sibling failing only because
// the batch was cancelled never masks the error that doomed it
func TestRunBatch_FirstErrorIsTheCause(t *testing.T) {
	cause := apperrors.NotFound("users endpoint missing", nil)

	fetches := []Fetch{
		{
			// sorts first by name; its body read is cut off by the cancel
			Name: "a_stats",
			Run: func(ctx context.Context, token string) (func(), error) {
				<-ctx.Done()
				return nil, apperrors.Internal("invalid response body", ctx.Err())
			},
		},
		{
			Name: "z_users",
			Run: func(ctx context.Context, token string) (func(), error) {
				return nil, cause
			},
		},
	}

	out := RunBatch(context.Background(), "tok", fetches, AllOrNothing)

	require.True(t, out.Failed())
	assert.Same(t, cause, out.FirstError())
	assert.Equal(t, []string{"z_users"}, out.FailedNames())
	assert.Empty(t, out.Commits)
}

// TestRunBatch_FirstErrorFollowsTime tests failure order under partial success
func TestRunBatch_FirstErrorFollowsTime(t *testing.T) {
	early := apperrors.ServiceUnavailable("trips down", nil)
	late := apperrors.Internal("chats broken", nil)
	earlyDone := make(chan struct{})

	fetches := []Fetch{
		{
			Name: "a_chats",
			Run: func(ctx context.Context, token string) (func(), error) {
				<-earlyDone
				time.Sleep(20 * time.Millisecond)
				return nil, late
			},
		},
		{
			Name: "b_trips",
			Run: func(ctx context.Context, token string) (func(), error) {
				defer close(earlyDone)
				return nil, early
			},
		},
		Collect("c_users", func(ctx context.Context, token string) (int, error) { return 3, nil }, func(int) {}),
	}

	out := RunBatch(context.Background(), "tok", fetches, PartialSuccess)

	assert.Same(t, early, out.FirstError())
	assert.Equal(t, []string{"a_chats", "b_trips"}, out.FailedNames())
	assert.Contains(t, out.Commits, "c_users")
}

// TestRunBatch_NoFailures tests a clean batch
func TestRunBatch_NoFailures(t *testing.T) {
	out := RunBatch(context.Background(), "tok", []Fetch{
		Collect("users", func(ctx context.Context, token string) (int, error) { return 1, nil }, func(int) {}),
	}, AllOrNothing)

	assert.False(t, out.Failed())
	assert.NoError(t, out.FirstError())
	assert.Len(t, out.Commits, 1)
}
