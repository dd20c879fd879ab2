package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/refugiapp/refugiapp/internal/logger"
)

//go:generate mockgen -source=saver.go -destination=../mock/export_mock.go -package=mock

// Saver hands a finished artifact to the user.
type Saver interface {
	// Save stores data under name and returns where it ended up.
	Save(name, mimeType string, data []byte) (string, error)
}

// FileSaver writes artifacts into a directory. Each file is written to a
// temporary sibling first and renamed into place, so a partially written
// artifact is never visible under its final name.
type FileSaver struct {
	dir      string
	copyPath bool

	// writeClipboard is replaced in tests.
	writeClipboard func(string) error

	logger *logger.Logger
}

// NewFileSaver returns a saver rooted at dir. When copyPath is set the saved
// path is also put on the system clipboard, best-effort.
func NewFileSaver(dir string, copyPath bool, logger *logger.Logger) *FileSaver {
	return &FileSaver{
		dir:            dir,
		copyPath:       copyPath,
		writeClipboard: clipboard.WriteAll,
		logger:         logger,
	}
}

// Save implements [Saver]. mimeType is only recorded in the log; the file
// extension is part of name. Errors are returned as *[ExportError].
func (s *FileSaver) Save(name, mimeType string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &ExportError{Op: "save", Name: name, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+".*.tmp")
	if err != nil {
		return "", &ExportError{Op: "save", Name: name, Err: err}
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return "", &ExportError{Op: "save", Name: name, Err: err}
	}

	final := filepath.Join(s.dir, name)
	if err = os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return "", &ExportError{Op: "save", Name: name, Err: fmt.Errorf("rename: %w", err)}
	}

	if abs, err := filepath.Abs(final); err == nil {
		final = abs
	}

	s.logger.Info().
		Str("func", "*FileSaver.Save").
		Str("path", final).
		Str("mime", mimeType).
		Int("bytes", len(data)).
		Msg("artifact saved")

	if s.copyPath {
		if err = s.writeClipboard(final); err != nil {
			s.logger.Warn().Err(err).Str("func", "*FileSaver.Save").Msg("could not copy path to clipboard")
		}
	}

	return final, nil
}
