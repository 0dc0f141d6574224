// Package document loads the YAML configuration document that drives a run.
//
// A document is a mapping. Its "template" key names one template or a list
// of templates, the optional "filename" key overrides the output name of a
// single-template run, and every key (those two included) is handed to the
// template engine as a variable.
package document

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
)

const (
	// KeyTemplate names the template(s) to render
	KeyTemplate = "template"

	// KeyFilename overrides the output filename
	KeyFilename = "filename"

	// StdinSource is the path that selects standard input
	StdinSource = "-"

	stdinName = "<stdin>"
)

// Document is a parsed configuration document. It is read-only once loaded.
type Document struct {
	// Source names where the document came from, for error messages
	Source string

	// Values holds every top-level key
	Values map[string]interface{}

	templates []string
	filename  string
	order     keyOrder
}

// Templates returns the requested template names in document order. The
// slice is never empty.
func (d *Document) Templates() []string {
	out := make([]string, len(d.templates))
	copy(out, d.templates)
	return out
}

// Filename returns the explicit output filename, if the document has one.
func (d *Document) Filename() (string, bool) {
	return d.filename, d.filename != ""
}

// Vars returns the template variables.
func (d *Document) Vars() map[string]interface{} {
	return d.Values
}

// LoadFile reads the document at path; "-" reads from stdin.
func LoadFile(path string, stdin io.Reader) (*Document, error) {
	if path == StdinSource {
		return Load(stdin, stdinName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputRead, "cannot read config file %s", path).
			WithDetail("source", path)
	}
	defer func() { _ = f.Close() }()

	return Load(f, path)
}

// Load parses a document from r. source is used in error messages.
func Load(r io.Reader, source string) (*Document, error) {
	logger := logging.GetLogger("document")

	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, errors.Newf(errors.ErrInputInvalid, "config file %s is empty", source).
				WithDetail("source", source)
		}
		return nil, errors.Wrapf(err, errors.ErrInputParse, "error in config file %s", source).
			WithDetail("source", source)
	}

	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Newf(errors.ErrInputInvalid,
			"config file %s must contain a mapping at the top level, found %s", source, kindName(root)).
			WithDetail("source", source)
	}

	values := make(map[string]interface{})
	if err := root.Decode(&values); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInputParse, "error in config file %s", source).
			WithDetail("source", source)
	}

	doc := &Document{Source: source, Values: values, order: make(keyOrder)}
	doc.order.record(root, values)

	templates, err := normalizeTemplates(values[KeyTemplate], source)
	if err != nil {
		return nil, err
	}
	doc.templates = templates

	if raw, ok := values[KeyFilename]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok || strings.TrimSpace(name) == "" {
			return nil, errors.Newf(errors.ErrInputInvalid,
				"config file %s: %q must be a non-empty string", source, KeyFilename).
				WithDetail("source", source)
		}
		doc.filename = name
	}

	logger.Debug().
		Str("source", source).
		Int("keys", len(values)).
		Strs("templates", templates).
		Msg("Loaded configuration document")

	return doc, nil
}

// normalizeTemplates turns the template value into a non-empty list of names
func normalizeTemplates(raw interface{}, source string) ([]string, error) {
	invalid := func(format string, args ...interface{}) error {
		return errors.Newf(errors.ErrInputInvalid, "config file %s: "+format, append([]interface{}{source}, args...)...).
			WithDetail("source", source)
	}

	switch v := raw.(type) {
	case nil:
		return nil, invalid("missing required key %q", KeyTemplate)
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, invalid("%q cannot be empty", KeyTemplate)
		}
		return []string{v}, nil
	case []interface{}:
		if len(v) == 0 {
			return nil, invalid("%q list cannot be empty", KeyTemplate)
		}
		names := make([]string, 0, len(v))
		for i, item := range v {
			name, ok := item.(string)
			if !ok || strings.TrimSpace(name) == "" {
				return nil, invalid("%q entry %d must be a non-empty string", KeyTemplate, i+1)
			}
			names = append(names, name)
		}
		return names, nil
	default:
		return nil, invalid("%q must be a string or a list of strings, got %T", KeyTemplate, raw)
	}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "an empty document"
	default:
		return "nothing"
	}
}
