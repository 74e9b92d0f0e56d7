package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	githubadapter "github.com/ericfisherdev/ghbots/internal/adapter/driven/github"
	"github.com/ericfisherdev/ghbots/internal/application"
	"github.com/ericfisherdev/ghbots/internal/config"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

const version = "0.3.0"

// Exit codes. ExitFindings is the CI gate signal of codeclimate2github.
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

// legacyFlags were accepted with a single dash by the scripts these
// commands replace.
var legacyFlags = []string{"token"}

// app carries per-invocation state shared by a command's hooks.
type app struct {
	v        *viper.Viper
	cfgFile  string
	stdin    io.Reader
	stderr   io.Writer
	exitCode int
}

func newApp(stdin io.Reader, stderr io.Writer) *app {
	return &app{
		v:        config.NewViper(),
		stdin:    stdin,
		stderr:   stderr,
		exitCode: ExitSuccess,
	}
}

// execute runs cmd with args and returns the exit code.
func (a *app) execute(ctx context.Context, cmd *cobra.Command, args []string) int {
	cmd.SetArgs(normalizeArgs(args))
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stderr)
	cmd.SetErr(a.stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return ExitUsageError
	}
	return a.exitCode
}

// addCommonFlags registers the flags both bots share and binds every flag of
// cmd into viper.
func (a *app) addCommonFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String(config.KeyURL, "", "GitHub API base URL (e.g. https://api.github.com)")
	flags.String(config.KeyToken, "", "GitHub token (env GHBOTS_TOKEN or GITHUB_TOKEN)")
	flags.Bool(config.KeyDryRun, false, "Compute everything but don't write to GitHub")
	flags.String(config.KeyLogLevel, "debug", "Log level: debug, info, warn, error")
	flags.StringVar(&a.cfgFile, "config", "", "Config file (default .ghbots.yaml if present)")

	cmd.Version = version
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.initConfig(cmd.Flags())
	}
}

func (a *app) initConfig(flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || f.Name == "version" {
			return
		}
		if err := a.v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}
	return config.ReadFile(a.v, a.cfgFile)
}

// fail logs err and records the runtime-error exit code.
func (a *app) fail(logger *slog.Logger, msg string, err error) error {
	logger.Error(msg, "error", err)
	a.exitCode = ExitRuntimeError
	return nil
}

// usage reports a configuration error the way cobra reports flag errors.
func (a *app) usage(cmd *cobra.Command, err error) error {
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	fmt.Fprintln(a.stderr, cmd.UsageString())
	a.exitCode = ExitUsageError
	return nil
}

// newLogger builds the text logger passed to every component.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newGitHub builds the read port and the write port for common settings.
// In dry-run mode writes are logged instead of sent.
func newGitHub(cfg config.Common, logger *slog.Logger) (driven.GitHubClient, driven.GitHubWriter, error) {
	client, err := githubadapter.NewClient(cfg.URL, cfg.Token, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.DryRun {
		return client, application.NewDryRunWriter(logger), nil
	}
	return client, client, nil
}

// normalizeArgs rewrites single-dash long flags ("-token") to the
// double-dash form pflag understands.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		for _, name := range legacyFlags {
			if arg == "-"+name || strings.HasPrefix(arg, "-"+name+"=") {
				arg = "-" + arg
				break
			}
		}
		out = append(out, arg)
	}
	return out
}
