package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/yaml2config/pkg/errors"
)

// Validate resolves the configured directories to absolute paths and checks
// that the output directory is writable and the template directory readable.
// cfg is updated in place.
func Validate(cfg *Config) error {
	if cfg.TemplateSuffix == "" {
		return errors.New(errors.ErrConfigValid, "template suffix cannot be empty")
	}

	outDir, err := resolveDir(cfg.OutDir, "output")
	if err != nil {
		return err
	}
	if err := checkWritable(outDir); err != nil {
		return err
	}

	templateDir, err := resolveDir(cfg.TemplateDir, "template")
	if err != nil {
		return err
	}
	if err := checkReadable(templateDir); err != nil {
		return err
	}

	cfg.OutDir = outDir
	cfg.TemplateDir = templateDir
	return nil
}

// resolveDir returns the absolute form of dir after checking it is an
// existing directory
func resolveDir(dir, role string) (string, error) {
	if dir == "" {
		return "", errors.Newf(errors.ErrDirAccess, "%s directory cannot be empty", role)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrDirAccess, "cannot resolve %s directory %s", role, dir)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrDirAccess, "%s directory %s does not exist", role, abs).
				WithDetail("path", abs)
		}
		return "", errors.Wrapf(err, errors.ErrDirAccess, "cannot access %s directory %s", role, abs).
			WithDetail("path", abs)
	}
	if !info.IsDir() {
		return "", errors.Newf(errors.ErrDirAccess, "%s directory %s is not a directory", role, abs).
			WithDetail("path", abs)
	}

	return abs, nil
}

// checkWritable probes dir by creating and removing a temporary file
func checkWritable(dir string) error {
	probe, err := os.CreateTemp(dir, ".yaml2config-probe-*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirAccess, "output directory %s is not writable", dir).
			WithDetail("path", dir)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)
	return nil
}

func checkReadable(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirAccess, "template directory %s is not readable", dir).
			WithDetail("path", dir)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return errors.Wrapf(err, errors.ErrDirAccess, "template directory %s is not readable", dir).
			WithDetail("path", dir)
	}
	return nil
}
