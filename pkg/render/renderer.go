// Package render resolves templates inside the template directory and
// renders them with a document's values.
//
// Templates use Django/Jinja syntax (pongo2). Block tags swallow the newline
// that follows them and the whitespace that precedes them on their line, so
// control structures do not leave blank lines in the output. The newline
// ending a template file is dropped. Mappings iterate in the order given by
// Options.KeyOrder, or sorted by key when none is set.
package render

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
)

// identifier mirrors the check pongo2 applies to top-level context keys
var identifier = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Result is a rendered template waiting to be written
type Result struct {
	Template     string
	TemplatePath string
	OutputPath   string
	Text         string
}

// Options configures a Renderer
type Options struct {
	TemplateDir string
	OutDir      string
	Suffix      string

	// KeyOrder orders mapping keys in for loops
	KeyOrder KeyOrder
}

// Renderer renders templates from a single search root
type Renderer struct {
	opts   Options
	set    *pongo2.TemplateSet
	logger zerolog.Logger
}

// New creates a Renderer rooted at opts.TemplateDir
func New(opts Options) (*Renderer, error) {
	loader, err := pongo2.NewLocalFileSystemLoader(opts.TemplateDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirAccess,
			"cannot use template directory %s", opts.TemplateDir).
			WithDetail("path", opts.TemplateDir)
	}

	set := pongo2.NewSet("yaml2config", sourceLoader{loader})
	set.Options.TrimBlocks = true
	set.Options.LStripBlocks = true

	return &Renderer{
		opts:   opts,
		set:    set,
		logger: logging.GetLogger("render"),
	}, nil
}

// Render resolves name, renders it with vars and computes the output path.
// A non-empty filename replaces the derived output name.
func (r *Renderer) Render(name string, vars map[string]interface{}, filename string) (*Result, error) {
	path, err := r.resolve(name)
	if err != nil {
		return nil, err
	}

	out := OutputPath(r.opts.OutDir, name, r.opts.Suffix, filename)
	if out == path {
		return nil, errors.Newf(errors.ErrTemplateRender,
			"output path %s is the template itself; set a template suffix or a different output directory", path).
			WithDetail("template", path)
	}

	tpl, err := r.set.FromFile(name)
	if err != nil {
		e := errors.Wrapf(err, errors.ErrTemplateCompile, "error in the template file %s", path).
			WithDetail("template", path)
		var perr *pongo2.Error
		if stderrors.As(err, &perr) {
			e.WithDetail("line", perr.Line).WithDetail("column", perr.Column)
		}
		return nil, e
	}

	text, err := tpl.Execute(r.context(vars))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateRender, "error during rendering of %s", path).
			WithDetail("template", path)
	}

	r.logger.Debug().
		Str("template", path).
		Str("output", out).
		Int("bytes", len(text)).
		Msg("Rendered template")

	return &Result{
		Template:     name,
		TemplatePath: path,
		OutputPath:   out,
		Text:         text,
	}, nil
}

// resolve maps a template name to a file inside the template directory
func (r *Renderer) resolve(name string) (string, error) {
	if !filepath.IsLocal(name) {
		return "", errors.Newf(errors.ErrTemplateNotFound,
			"template %s is outside the template directory %s", name, r.opts.TemplateDir).
			WithDetail("template", name)
	}

	path := filepath.Join(r.opts.TemplateDir, name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Newf(errors.ErrTemplateNotFound, "template %s not found", path).
				WithDetail("template", path)
		}
		return "", errors.Wrapf(err, errors.ErrTemplateNotFound, "cannot access template %s", path).
			WithDetail("template", path)
	}
	if info.IsDir() {
		return "", errors.Newf(errors.ErrTemplateNotFound, "template %s is a directory", path).
			WithDetail("template", path)
	}
	return path, nil
}

// context drops keys pongo2 would reject as identifiers. Those values are
// still reachable through nested mappings. The key order travels with it.
func (r *Renderer) context(vars map[string]interface{}) pongo2.Context {
	ctx := make(pongo2.Context, len(vars))
	var skipped []string
	for k, v := range vars {
		if !identifier.MatchString(k) {
			skipped = append(skipped, k)
			continue
		}
		ctx[k] = v
	}
	if len(skipped) > 0 {
		sort.Strings(skipped)
		r.logger.Warn().Strs("keys", skipped).Msg("Keys are not valid template identifiers and were skipped")
	}
	ctx[orderVar] = &ordering{keys: r.opts.KeyOrder}
	return ctx
}
