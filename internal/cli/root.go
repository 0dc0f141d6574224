// Package cli implements the yaml2config command line.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/yaml2config/internal/version"
	"github.com/arthur-debert/yaml2config/pkg/config"
	"github.com/arthur-debert/yaml2config/pkg/core"
	"github.com/arthur-debert/yaml2config/pkg/errors"
	"github.com/arthur-debert/yaml2config/pkg/logging"
	"github.com/arthur-debert/yaml2config/pkg/ui"
)

// IO bundles the streams a command reads from and writes to
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

type rootFlags struct {
	verbosity       int
	outDir          string
	templateDir     string
	updateTemplates bool
	configFile      string
	suffix          string
	remote          string
	branch          string
	noColor         bool
	format          string
	printConfig     bool
	formatHelp      bool
}

// flagKeys maps flags to the configuration keys they override
var flagKeys = map[string]string{
	"out-dir":          config.KeyOutDir,
	"template-dir":     config.KeyTemplateDir,
	"update-templates": config.KeyUpdateTemplates,
	"suffix":           config.KeyTemplateSuffix,
	"remote":           config.KeySyncRemote,
	"branch":           config.KeySyncBranch,
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:     MsgRootUse,
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Strs("args", args).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, &flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	f := rootCmd.Flags()
	f.SortFlags = false
	f.StringVarP(&flags.outDir, "out-dir", "d", "", MsgFlagOutDir)
	f.StringVarP(&flags.templateDir, "template-dir", "t", "", MsgFlagTemplateDir)
	f.BoolVarP(&flags.updateTemplates, "update-templates", "u", false, MsgFlagUpdateTemplates)
	f.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	f.StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	f.StringVar(&flags.suffix, "suffix", "", MsgFlagSuffix)
	f.StringVar(&flags.remote, "remote", "", MsgFlagRemote)
	f.StringVar(&flags.branch, "branch", "", MsgFlagBranch)
	f.StringVar(&flags.format, "format", ui.FormatAuto.String(), MsgFlagFormat)
	f.BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)
	f.BoolVar(&flags.printConfig, "print-config", false, MsgFlagPrintConfig)
	f.BoolVar(&flags.formatHelp, "format-help", false, MsgFlagFormatHelp)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetVersionTemplate("yaml2config " + version.Info() + "\n")

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string, flags *rootFlags) error {
	format, err := outputFormat(flags)
	if err != nil {
		return err
	}

	if flags.formatHelp {
		styled := format == ui.FormatTerminal || (format == ui.FormatAuto && stdoutIsTerminal())
		return renderGuide(cmd.OutOrStdout(), styled)
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: flags.configFile,
		Overrides:  overrides(cmd),
	})
	if err != nil {
		return err
	}

	if flags.printConfig {
		out, err := config.Dump(cfg)
		if err != nil {
			return fmt.Errorf(MsgErrPrintConfig, err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}

	if len(args) == 0 {
		return errors.New(errors.ErrInvalidInput, MsgErrMissingInput)
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if cfg.Log.File {
		// Failure is logged by AttachLogFile and is not fatal
		_, _ = logging.AttachLogFile()
	}

	_, err = core.Run(cmd.Context(), core.Options{
		Config:   cfg,
		Input:    args[0],
		Stdin:    cmd.InOrStdin(),
		Reporter: ui.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), format),
	})
	return err
}

// overrides collects the flags the user set explicitly
func overrides(cmd *cobra.Command) map[string]interface{} {
	out := make(map[string]interface{})
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if name == "update-templates" {
			v, _ := cmd.Flags().GetBool(name)
			out[key] = v
			continue
		}
		out[key] = flag.Value.String()
	}
	return out
}

// outputFormat resolves --format; --no-color always wins
func outputFormat(flags *rootFlags) (ui.Format, error) {
	if flags.noColor {
		return ui.FormatText, nil
	}
	return ui.ParseFormat(flags.format)
}

// Execute runs the command line with args and returns the process exit code.
// Errors are printed to streams.Err.
func Execute(ctx context.Context, args []string, streams IO) int {
	// Errors raised before PersistentPreRun still need a configured logger
	logging.SetupLogger(0)

	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(streams.In)
	rootCmd.SetOut(streams.Out)
	rootCmd.SetErr(streams.Err)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	log.Info().
		Str("code", string(errors.GetErrorCode(err))).
		Interface("details", errors.GetErrorDetails(err)).
		Err(err).
		Msg("Command failed")

	noColor, _ := rootCmd.Flags().GetBool("no-color")
	name, _ := rootCmd.Flags().GetString("format")
	format, ferr := outputFormat(&rootFlags{noColor: noColor, format: name})
	if ferr != nil {
		format = ui.FormatAuto
	}
	ui.NewPrinter(streams.Out, streams.Err, format).Error(errors.Message(err))
	return 1
}
