package render

import (
	"bytes"
	"io"

	"github.com/flosch/pongo2/v6"
)

// sourceLoader drops the single newline that ends a template file, so a
// template's last line break is not copied into the output.
type sourceLoader struct {
	pongo2.TemplateLoader
}

func (l sourceLoader) Get(path string) (io.Reader, error) {
	r, err := l.TemplateLoader.Get(path)
	if err != nil {
		return nil, err
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(trimFinalNewline(src)), nil
}

func trimFinalNewline(src []byte) []byte {
	switch {
	case bytes.HasSuffix(src, []byte("\r\n")):
		return src[:len(src)-2]
	case bytes.HasSuffix(src, []byte("\n")), bytes.HasSuffix(src, []byte("\r")):
		return src[:len(src)-1]
	}
	return src
}
