package session

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngData(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func names(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestAddFiles_KeepsSelectionOrderAndFiltersNonImages(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "c.png", pngData(t, 30, 20)),
		writeFile(t, dir, "readme.txt", []byte("not an image")),
		writeFile(t, dir, "a.png", pngData(t, 10, 40)),
		filepath.Join(dir, "missing.png"),
		writeFile(t, dir, "b.png", pngData(t, 5, 5)),
	}

	s := New(nil)
	added, rejected, err := s.AddFiles(context.Background(), paths)
	require.NoError(t, err)

	assert.Equal(t, []string{"c.png", "a.png", "b.png"}, names(added))
	assert.Equal(t, []string{"c.png", "a.png", "b.png"}, names(s.Items()))
	require.Len(t, rejected, 2)
	assert.Equal(t, "readme.txt", rejected[0].Name)
	assert.Equal(t, "missing.png", rejected[1].Name)

	first := added[0]
	assert.Equal(t, 30, first.Width)
	assert.Equal(t, 20, first.Height)
	assert.Equal(t, "png", first.Format)
	assert.NotEmpty(t, first.ID)
	assert.Positive(t, first.Size)
}

func TestAddFiles_ManyFiles(t *testing.T) {
	dir := t.TempDir()
	data := pngData(t, 2, 2)

	var paths []string
	for i := 0; i < 40; i++ {
		paths = append(paths, writeFile(t, dir, string(rune('A'+i%26))+string(rune('a'+i/26))+".png", data))
	}

	s := New(nil)
	added, rejected, err := s.AddFiles(context.Background(), paths)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, added, 40)

	for i, item := range added {
		assert.Equal(t, filepath.Base(paths[i]), item.Name)
	}
}

func TestAddFiles_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.png", pngData(t, 2, 2))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(nil)
	_, _, err := s.AddFiles(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, s.Len())
}

func TestAddData(t *testing.T) {
	s := New(nil)

	item, err := s.AddData("drop.png", pngData(t, 12, 7))
	require.NoError(t, err)
	assert.Equal(t, 12, item.Width)
	assert.Equal(t, 7, item.Height)
	assert.Empty(t, item.Path)

	_, err = s.AddData("drop.txt", []byte("text"))
	assert.Error(t, err)
	assert.Equal(t, 1, s.Len())

	inputs := s.Snapshot()
	require.Len(t, inputs, 1)
	assert.Equal(t, "drop.png", inputs[0].Name)
	assert.NotEmpty(t, inputs[0].Data)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "first to last", from: 0, to: 3, expected: []string{"b", "c", "d", "a"}},
		{name: "last to first", from: 3, to: 0, expected: []string{"d", "a", "b", "c"}},
		{name: "middle forward", from: 1, to: 2, expected: []string{"a", "c", "b", "d"}},
		{name: "no-op", from: 2, to: 2, expected: []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			for _, name := range []string{"a", "b", "c", "d"} {
				_, err := s.AddData(name, pngData(t, 1, 1))
				require.NoError(t, err)
			}

			require.NoError(t, s.Move(tt.from, tt.to))
			assert.Equal(t, tt.expected, names(s.Items()))
		})
	}
}

func TestMove_OutOfRange(t *testing.T) {
	s := New(nil)
	_, err := s.AddData("a", pngData(t, 1, 1))
	require.NoError(t, err)

	assert.ErrorIs(t, s.Move(0, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Move(-1, 0), ErrIndexOutOfRange)
}

func TestRemoveAndClear(t *testing.T) {
	s := New(nil)
	a, err := s.AddData("a", pngData(t, 1, 1))
	require.NoError(t, err)
	_, err = s.AddData("b", pngData(t, 1, 1))
	require.NoError(t, err)

	require.NoError(t, s.Remove(a.ID))
	assert.Equal(t, []string{"b"}, names(s.Items()))
	assert.ErrorIs(t, s.Remove(a.ID), ErrItemNotFound)

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Snapshot())
}

func TestSnapshot_IsIndependentOfLaterChanges(t *testing.T) {
	s := New(nil)
	for _, name := range []string{"a", "b"} {
		_, err := s.AddData(name, pngData(t, 1, 1))
		require.NoError(t, err)
	}

	snapshot := s.Snapshot()
	require.NoError(t, s.Move(1, 0))
	s.Clear()

	require.Len(t, snapshot, 2)
	assert.Equal(t, "a", snapshot[0].Name)
	assert.Equal(t, "b", snapshot[1].Name)
}
