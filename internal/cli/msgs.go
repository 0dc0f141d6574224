package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Render configuration files from a YAML document and templates"
	MsgRootUse   = "yaml2config [flags] <yaml-file|->"

	// Flag descriptions
	MsgFlagOutDir          = "Directory rendered files are written to (default \".\")"
	MsgFlagTemplateDir     = "Directory templates are looked up in (default \"./template\")"
	MsgFlagUpdateTemplates = "Pull the template repository before rendering"
	MsgFlagVerbose         = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig          = "Read settings from this file instead of the user config"
	MsgFlagSuffix          = "Template suffix stripped to derive output names (default \".j2\")"
	MsgFlagRemote          = "Remote pulled by --update-templates (default \"origin\")"
	MsgFlagBranch          = "Branch pulled by --update-templates (default \"master\")"
	MsgFlagFormat          = "Output style: auto, term or text"
	MsgFlagNoColor         = "Disable colored output (same as --format text)"
	MsgFlagPrintConfig     = "Print the effective settings as TOML and exit"
	MsgFlagFormatHelp      = "Describe the YAML document and template syntax and exit"

	// Error messages
	MsgErrMissingInput = "missing input: pass a YAML file, or - to read from stdin"
	MsgErrPrintConfig  = "failed to print configuration: %w"
)

var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/format-help.md
	MsgFormatHelp string
)
