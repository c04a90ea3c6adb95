package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_RequiresReportFunction(t *testing.T) {
	s := New()
	defer s.Stop()
	assert.Error(t, s.Start(DefaultReportSpec))
	assert.False(t, s.IsRunning())
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New()
	defer s.Stop()
	s.SetReportFunction(func(ctx context.Context) error { return nil })
	assert.Error(t, s.Start("every tuesday"))
}

func TestStart_RegistersJob(t *testing.T) {
	s := New()
	calls := 0
	s.SetReportFunction(func(ctx context.Context) error {
		calls++
		return errors.New("ignored")
	})
	require.NoError(t, s.Start(""))
	assert.True(t, s.IsRunning())

	s.runReport()
	assert.Equal(t, 1, calls)
	s.Stop()
}
