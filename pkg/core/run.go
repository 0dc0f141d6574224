package core

import (
	"context"
	"fmt"
	"io"

	"github.com/arthur-debert/yaml2config/pkg/config"
	"github.com/arthur-debert/yaml2config/pkg/document"
	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
	"github.com/arthur-debert/yaml2config/pkg/output"
	"github.com/arthur-debert/yaml2config/pkg/render"
	"github.com/arthur-debert/yaml2config/pkg/templatesync"
)

// Reporter shows run progress to the user
type Reporter interface {
	output.Reporter
	Warn(msg string)
	Error(msg string)
}

// Options configures a run
type Options struct {
	// Config must already be validated
	Config *config.Config

	// Input is the document path, or "-" for Stdin
	Input string
	Stdin io.Reader

	Reporter Reporter
}

// TemplateResult is what happened to one template
type TemplateResult struct {
	Template   string
	OutputPath string
	Err        error
}

// Outcome aggregates the per-template results of a run
type Outcome struct {
	Results []TemplateResult
}

// Failed returns the number of templates that failed
func (o *Outcome) Failed() int {
	n := 0
	for _, r := range o.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// OK reports whether every template was written
func (o *Outcome) OK() bool {
	return o.Failed() == 0
}

// Err summarizes the failures, or returns nil when there were none
func (o *Outcome) Err() error {
	failed := o.Failed()
	if failed == 0 {
		return nil
	}
	return errors.Newf(errors.ErrRunFailed, "%d of %d templates failed", failed, len(o.Results)).
		WithDetail("failed", failed).
		WithDetail("total", len(o.Results))
}

// Run executes one run. The returned error is either fatal, in which case
// the outcome is nil and no further file is written, or the RUN_FAILED
// summary of the outcome. Fatal errors found before rendering leave the
// output directory untouched; a cancelled context stops the run between
// templates and keeps the files already written.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	logger := logging.GetLogger("core")
	done := logging.LogOperationStart(logger, "run")
	defer done()

	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrInternal, "run started without configuration")
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = discard{}
	}

	var syncer *templatesync.Syncer
	if cfg.UpdateTemplates {
		s, err := templatesync.New(cfg.TemplateDir, templatesync.Options{
			Remote: cfg.Sync.Remote,
			Branch: cfg.Sync.Branch,
		})
		if err != nil {
			return nil, err
		}
		syncer = s
	}

	doc, err := document.LoadFile(opts.Input, opts.Stdin)
	if err != nil {
		return nil, err
	}

	if syncer != nil {
		if err := syncer.Sync(ctx); err != nil {
			return nil, err
		}
	}

	renderer, err := render.New(render.Options{
		TemplateDir: cfg.TemplateDir,
		OutDir:      cfg.OutDir,
		Suffix:      cfg.TemplateSuffix,
		KeyOrder:    doc.KeyOrder,
	})
	if err != nil {
		return nil, err
	}
	writer := output.NewWriter(reporter)

	templates := doc.Templates()
	filename, hasFilename := doc.Filename()
	if hasFilename && len(templates) > 1 {
		msg := fmt.Sprintf("%q is ignored when %d templates are requested", document.KeyFilename, len(templates))
		logger.Info().Str("filename", filename).Int("templates", len(templates)).Msg("Output filename override ignored")
		reporter.Warn(msg)
		filename = ""
	}

	outcome := &Outcome{Results: make([]TemplateResult, 0, len(templates))}
	for _, name := range templates {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "run interrupted")
		}

		result := TemplateResult{Template: name}
		rendered, err := renderer.Render(name, doc.Vars(), filename)
		if err == nil {
			result.OutputPath = rendered.OutputPath
			err = writer.Write(ctx, rendered.OutputPath, rendered.Text)
		}
		if err != nil {
			if errors.IsFatal(err) {
				return nil, err
			}
			result.Err = err
			logger.Info().
				Str("template", name).
				Str("code", string(errors.GetErrorCode(err))).
				Interface("details", errors.GetErrorDetails(err)).
				Msg("Template failed")
			reporter.Error(errors.Message(err))
		}
		outcome.Results = append(outcome.Results, result)
	}

	logger.Info().
		Int("templates", len(outcome.Results)).
		Int("failed", outcome.Failed()).
		Msg("Run finished")

	return outcome, outcome.Err()
}

type discard struct{}

func (discard) Created(string) {}
func (discard) Warn(string)    {}
func (discard) Error(string)   {}
