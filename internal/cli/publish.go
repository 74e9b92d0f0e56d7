package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/ghbots/internal/adapter/driven/codeclimate"
	"github.com/ericfisherdev/ghbots/internal/application"
	"github.com/ericfisherdev/ghbots/internal/config"
	"github.com/ericfisherdev/ghbots/internal/domain/model"
)

// RunPublisher executes codeclimate2github with args and returns the exit
// code: 0 for an empty report, 1 when the report holds any defect.
func RunPublisher(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) int {
	a := newApp(stdin, stderr)
	return a.execute(ctx, newPublishCommand(a), args)
}

func newPublishCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codeclimate2github",
		Short: "Post Code Climate defects as GitHub pull request comments",
		Long: "Adds defects from a Code Climate JSON report to a GitHub pull request as inline review comments.\n" +
			"Comments already present at the same file and line are not posted again.\n" +
			"Exits 1 whenever the report contains defects so CI can gate on it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPublish(cmd)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyProjectID, "", "GitHub repository full name or ID")
	flags.Int(config.KeyPullRequestID, 0, "Pull request number")
	flags.String(config.KeyInput, "-", "File with Code Climate report (- for stdin)")
	a.addCommonFlags(cmd)

	return cmd
}

func (a *app) runPublish(cmd *cobra.Command) error {
	cfg, err := config.LoadPublisher(a.v)
	if err != nil {
		return a.usage(cmd, err)
	}

	logger := newLogger(a.stderr, cfg.LogLevel)

	defects, err := codeclimate.LoadFile(cfg.Input, a.stdin)
	if err != nil {
		if errors.Is(err, model.ErrInvalidReport) {
			return a.usage(cmd, err)
		}
		return a.fail(logger, "loading report failed", err)
	}

	client, writer, err := newGitHub(cfg.Common, logger)
	if err != nil {
		return a.usage(cmd, err)
	}

	publisher := application.NewDefectPublisher(client, writer, logger)
	if _, err := publisher.Publish(cmd.Context(), cfg.Project, cfg.PullRequest, defects); err != nil {
		return a.fail(logger, "publishing defects failed", err)
	}

	if len(defects) != 0 {
		a.exitCode = ExitFindings
	}
	return nil
}
