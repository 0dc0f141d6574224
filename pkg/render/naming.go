package render

import (
	"path/filepath"
	"strings"
)

// OutputName derives the rendered file's name from a template name: the
// base name with suffix removed. Names without the suffix are kept as is.
func OutputName(templateName, suffix string) string {
	base := filepath.Base(templateName)
	if suffix != "" && strings.HasSuffix(base, suffix) && len(base) > len(suffix) {
		return strings.TrimSuffix(base, suffix)
	}
	return base
}

// OutputPath joins the output name to outDir. A non-empty override replaces
// the derived name; an absolute override is used verbatim.
func OutputPath(outDir, templateName, suffix, override string) string {
	if override != "" {
		if filepath.IsAbs(override) {
			return filepath.Clean(override)
		}
		return filepath.Join(outDir, override)
	}
	return filepath.Join(outDir, OutputName(templateName, suffix))
}
