package statestore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()

	_, ok, err := s.Load("Example Application")
	require.NoError(t, err)
	assert.False(t, ok, "nothing stored yet")

	require.NoError(t, s.Save("Example Application", []byte("geometry-1")))
	require.NoError(t, s.Save("Other", []byte("other")))

	blob, ok, err := s.Load("Example Application")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("geometry-1"), blob)

	require.NoError(t, s.Save("Example Application", []byte("geometry-2")))
	blob, _, err = s.Load("Example Application")
	require.NoError(t, err)
	assert.Equal(t, []byte("geometry-2"), blob)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	testStore(t, m)

	blob, _, _ := m.Load("Other")
	blob[0] = 'X'
	again, _, _ := m.Load("Other")
	assert.Equal(t, []byte("other"), again, "Load returns a copy")
	assert.NoError(t, m.Close())
}

func TestBadger_InMemory(t *testing.T) {
	s, err := OpenBadger(Options{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestBadger_PersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := OpenBadger(Options{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save("App", []byte("blob")))
	require.NoError(t, s.Close())

	s, err = OpenBadger(Options{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	blob, ok, err := s.Load("App")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("blob"), blob)
}

func TestBadger_Closed(t *testing.T) {
	s, err := OpenBadger(Options{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "double close is safe")

	assert.ErrorIs(t, s.Save("App", nil), ErrClosed)
	_, _, err = s.Load("App")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWindowState_RoundTrip(t *testing.T) {
	in := WindowState{Files: []string{"/a.txt", "/b.txt"}, Current: 1, Width: 120, Height: 40}

	blob, err := in.Encode()
	require.NoError(t, err)
	out, err := DecodeWindowState(blob)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeWindowState(t *testing.T) {
	empty, err := DecodeWindowState(nil)
	require.NoError(t, err)
	assert.Equal(t, -1, empty.Current)
	assert.Empty(t, empty.Files)

	clamped, err := DecodeWindowState([]byte("files: [/a.txt]\ncurrent: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, clamped.Current)

	_, err = DecodeWindowState([]byte("files: {"))
	assert.Error(t, err)
}
