package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/yaml2config/pkg/ui"
)

func TestPrinterText(t *testing.T) {
	var out, errOut bytes.Buffer
	p := ui.NewPrinter(&out, &errOut, ui.FormatText)

	p.Created("/srv/out/app.conf")
	p.Warn("filename ignored")
	p.Error("template /t/x.j2 not found")

	assert.Equal(t, "created config file at /srv/out/app.conf\n", out.String())
	assert.Equal(t, "Warning: filename ignored\nError: template /t/x.j2 not found\n", errOut.String())
}

func TestPrinterAutoWithBufferIsText(t *testing.T) {
	var out, errOut bytes.Buffer
	p := ui.NewPrinter(&out, &errOut, ui.FormatAuto)

	p.Success("done")
	assert.Equal(t, "done\n", out.String())
}

func TestPrinterTerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	p := ui.NewPrinter(&out, &errOut, ui.FormatTerminal)

	p.Created("/srv/out/app.conf")
	p.Error("boom")

	assert.Contains(t, out.String(), "✓")
	assert.Contains(t, out.String(), "created config file at")
	assert.Contains(t, out.String(), "/srv/out/app.conf")
	assert.Contains(t, errOut.String(), "✗ Error:")
	assert.Contains(t, errOut.String(), "boom")
}
