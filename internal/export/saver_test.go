package export

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSaver_Save(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSaver(dir, false, logger.Nop())

	path, err := s.Save("habitantes.csv", MimeTypeCSV, []byte("a,b\n1,2"))
	require.NoError(t, err)

	assert.Equal(t, "habitantes.csv", filepath.Base(path))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2", string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestFileSaver_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	s := NewFileSaver(dir, false, logger.Nop())

	_, err := s.Save("r.csv", MimeTypeCSV, []byte("old"))
	require.NoError(t, err)
	path, err := s.Save("r.csv", MimeTypeCSV, []byte("new"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestFileSaver_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	s := NewFileSaver(dir, false, logger.Nop())

	path, err := s.Save("a.csv", MimeTypeCSV, []byte("x"))
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestFileSaver_Error(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	s := NewFileSaver(blocker, false, logger.Nop())

	_, err := s.Save("a.csv", MimeTypeCSV, []byte("x"))
	require.Error(t, err)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, "save", exportErr.Op)
	assert.Equal(t, "a.csv", exportErr.Name)
}

func TestFileSaver_CopiesPath(t *testing.T) {
	s := NewFileSaver(t.TempDir(), true, logger.Nop())

	var copied string
	s.writeClipboard = func(text string) error {
		copied = text
		return nil
	}

	path, err := s.Save("a.csv", MimeTypeCSV, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, path, copied)
}

func TestFileSaver_ClipboardFailureIsIgnored(t *testing.T) {
	s := NewFileSaver(t.TempDir(), true, logger.Nop())
	s.writeClipboard = func(string) error { return errors.New("no clipboard") }

	_, err := s.Save("a.csv", MimeTypeCSV, []byte("x"))
	assert.NoError(t, err)
}

func TestExportError(t *testing.T) {
	inner := errors.New("disk full")
	err := &ExportError{Op: "save", Name: "a.csv", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Equal(t, `export save "a.csv": disk full`, err.Error())
	assert.Equal(t, "export render: disk full", (&ExportError{Op: "render", Err: inner}).Error())
}
