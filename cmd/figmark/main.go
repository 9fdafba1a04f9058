package main

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"figmark/common"
	"figmark/config"
	"figmark/convert"
	"figmark/misc"
	"figmark/state"
)

// runner owns command line hooks. Subcommands return plain errors, cli.Exit
// is not used, so runner remembers whether error already reached the log.
type runner struct {
	errLogged bool
}

// setup runs after command line has been parsed and before any subcommand.
func (r *runner) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	configFile := cmd.String("config")

	cfg, err := config.LoadConfiguration(configFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Cfg = cfg

	if cmd.Bool("debug") {
		if err := openReport(env, configFile); err != nil {
			return ctx, err
		}
	}

	if env.Log, err = cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	switch {
	case env.Rpt != nil:
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	case len(configFile) == 0:
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// openReport starts debug report, processed configuration goes in first.
func openReport(env *state.LocalEnv, configFile string) (err error) {
	if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
		return fmt.Errorf("unable to prepare debug report: %w", err)
	}
	if len(configFile) == 0 {
		return nil
	}
	if data, err := config.Dump(env.Cfg); err == nil {
		env.Rpt.StoreData("config/"+filepath.Base(configFile), data)
	}
	return nil
}

// teardown summarizes processed scenes and releases everything setup
// acquired. Once log is synced errors may only be returned.
func (r *runner) teardown(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if total, failed := env.Summary(); total > 0 {
		env.Logger().Info("Scenes processed", zap.Int("total", total), zap.Int("failed", failed))
		if env.Rpt != nil {
			if data, er := env.MarshalOutcomes(); er == nil {
				env.Rpt.StoreData("scenes.yaml", data)
			} else {
				env.Logger().Warn("Unable to store scene outcomes", zap.Error(er))
			}
		}
	}
	env.Logger().Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))

	env.RestoreStdLog()

	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	if env.Cfg != nil {
		err = multierr.Append(err, removeEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

// removeEmptyPanicLog deletes crash output file when nothing crashed.
func removeEmptyPanicLog(destination string) error {
	if len(destination) == 0 {
		return nil
	}
	debug.SetCrashOutput(nil, debug.CrashOptions{})
	fname := config.PanicLogName(destination)
	if fi, err := os.Stat(fname); err != nil || fi.Size() != 0 {
		return nil
	}
	if err := os.Remove(fname); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, err)
	}
	return nil
}

// logExitError runs before teardown, so subcommand error still gets logged.
func (r *runner) logExitError(ctx context.Context, _ *cli.Command, err error) {
	if env := state.EnvFromContext(ctx); env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		r.errLogged = true
	}
}

func passUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func warnUnknownCommand(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Logger().Warn("Unknown command, nothing to do", zap.String("command", name))
}

const generateHelp = `%s
SOURCE:
    path to exported scene file(s) to process:
        path to a file: "[path_to_file]scene.json" - JSON or YAML scene document
        path to a directory: "[path_to_directory]directory" - recursively process all .json, .yaml and .yml files under directory

DESTINATION:
    always a path, output file name(s) and extension will be derived from configuration
    if absent - current working directory
`

const dumpConfigHelp = `%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`

func (r *runner) app() *cli.Command {
	return &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "generates markup and stylesheets from exported design scenes",
		Version:         fmt.Sprintf("%s (%s) : %s", misc.GetVersion(), runtime.Version(), misc.GetGitHash()),
		HideHelpCommand: true,
		Before:          r.setup,
		After:           r.teardown,
		OnUsageError:    passUsageError,
		ExitErrHandler:  r.logExitError,
		CommandNotFound: warnUnknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		Commands: []*cli.Command{
			{
				Name:         "generate",
				Usage:        "Generates markup and stylesheet for scene file(s)",
				OnUsageError: passUsageError,
				Action:       convert.Run,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "node", Aliases: []string{"n"},
						Usage: "generate only for container with node `ID` (may be repeated), by default all scene roots are used"},
					&cli.StringFlag{Name: "format",
						Usage: "markup `TYPE` (supported types: " + strings.Join(common.MarkupFormatNames(), ", ") + "), overrides configuration"},
					&cli.BoolFlag{Name: "stdout", Usage: "print generated markup and stylesheet instead of writing files"},
					&cli.BoolFlag{Name: "nodirs", Aliases: []string{"nd"}, Usage: "when producing output do not keep input directory structure"},
					&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				},
				ArgsUsage:          "SOURCE [DESTINATION]",
				CustomHelpTemplate: fmt.Sprintf(generateHelp, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError:       passUsageError,
				Action:             outputConfiguration,
				ArgsUsage:          "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(dumpConfigHelp, cli.CommandHelpTemplate),
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	r := &runner{}
	err := r.app().Run(ctx, os.Args)
	stop()

	if err != nil {
		// log is either not ready yet or already closed
		if !r.errLogged {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}

// outputConfiguration writes default or effective configuration to file or
// to application writer.
func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	log := env.Logger()

	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	kind, data := "actual", []byte(nil)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	fname := cmd.Args().Get(0)
	log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", cmp.Or(fname, "STDOUT")))

	if len(fname) > 0 {
		if err := os.WriteFile(fname, data, 0644); err != nil {
			return fmt.Errorf("unable to write configuration to '%s': %w", fname, err)
		}
		return nil
	}

	out := cmd.Root().Writer
	if out == nil {
		out = os.Stdout
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
