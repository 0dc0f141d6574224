package cli

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// renderGuide writes the document format guide. Styled output goes through
// glamour; plain output is the markdown source.
func renderGuide(w io.Writer, styled bool) error {
	content := MsgFormatHelp
	if styled {
		if rendered, err := renderMarkdown(content); err == nil {
			content = rendered
		}
	}
	_, err := io.WriteString(w, content)
	return err
}

func renderMarkdown(content string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}
