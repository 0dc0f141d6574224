// Package output writes rendered configuration files.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
)

// Reporter receives a confirmation for every file written
type Reporter interface {
	Created(path string)
}

// Writer writes rendered text to disk. Every file is written by its own
// synthfs pipeline with rollback disabled, so a failed write never undoes
// files written before it.
type Writer struct {
	reporter   Reporter
	filesystem filesystem.FullFileSystem
	logger     zerolog.Logger
}

// NewWriter creates a Writer. reporter may be nil.
func NewWriter(reporter Reporter) *Writer {
	// Use PathAwareFileSystem to handle absolute paths directly
	osfs := filesystem.NewOSFileSystem("/")
	pathAwareFS := synthfs.NewPathAwareFileSystem(osfs, "/").WithAbsolutePaths()

	return &Writer{
		reporter:   reporter,
		filesystem: pathAwareFS,
		logger:     logging.GetLogger("output"),
	}
}

// Write replaces the file at path with text. Missing parent directories of
// an explicit output filename are created.
func (w *Writer) Write(ctx context.Context, path, text string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}

	sfs := synthfs.New()
	id := fmt.Sprintf("write_%s_%d", filepath.Base(path), time.Now().UnixNano())
	op := sfs.CustomOperationWithID(id, overwrite(path, []byte(text), 0644))

	options := synthfs.DefaultPipelineOptions()
	options.RollbackOnError = false

	if _, err := synthfs.RunWithOptions(ctx, w.filesystem, options, op); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path).
			WithDetail("path", path)
	}

	w.logger.Info().Str("path", path).Int("bytes", len(text)).Msg("Wrote config file")
	if w.reporter != nil {
		w.reporter.Created(path)
	}
	return nil
}

// overwrite replaces target with data, creating its parent directory
func overwrite(target string, data []byte, mode os.FileMode) func(context.Context, filesystem.FileSystem) error {
	return func(ctx context.Context, fs filesystem.FileSystem) error {
		parentDir := filepath.Dir(target)
		if parentDir != "." && parentDir != "/" {
			if err := fs.MkdirAll(parentDir, 0755); err != nil {
				return fmt.Errorf("failed to create parent directory %s: %w", parentDir, err)
			}
		}
		return fs.WriteFile(target, data, mode)
	}
}
