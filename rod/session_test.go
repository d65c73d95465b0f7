//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/clipprune/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ReplacesBrowserAfterItsShareOfTabs(t *testing.T) {
	t.Parallel()

	s, err := rod.NewSession(rod.WithTabLimit(2))
	require.NoError(t, err)
	defer s.Close()

	first, err := s.OpenTab()
	require.NoError(t, err)
	defer first.Close()
	second, err := s.OpenTab()
	require.NoError(t, err)
	defer second.Close()
	assert.Same(t, first.Browser(), second.Browser())
	assert.Equal(t, int64(2), s.Tabs())

	third, err := s.OpenTab()
	require.NoError(t, err)
	defer third.Close()

	assert.NotSame(t, first.Browser(), third.Browser())
	assert.Equal(t, int64(1), s.Tabs())
}

func TestSession_OpenTabAfterClose(t *testing.T) {
	t.Parallel()

	s, err := rod.NewSession()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.OpenTab()

	assert.Error(t, err)
	assert.Zero(t, s.LauncherPID())
}
