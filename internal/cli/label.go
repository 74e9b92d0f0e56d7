package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	gitadapter "github.com/ericfisherdev/ghbots/internal/adapter/driven/git"
	githubadapter "github.com/ericfisherdev/ghbots/internal/adapter/driven/github"
	"github.com/ericfisherdev/ghbots/internal/application"
	"github.com/ericfisherdev/ghbots/internal/config"
	"github.com/ericfisherdev/ghbots/internal/domain/port/driven"
)

// RunLabeler executes ghbot with args and returns the exit code.
func RunLabeler(ctx context.Context, args []string, stdin io.Reader, stderr io.Writer) int {
	a := newApp(stdin, stderr)
	return a.execute(ctx, newLabelCommand(a), args)
}

func newLabelCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghbot",
		Short: "Label GitHub pull requests from the files they change",
		Long: "Computes labels from the files changed since a base revision (api, api:<name>, ci, sql, java, python)\n" +
			"and adds them to the pull request. Labels set by people or other tools are kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runLabel(cmd)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyBaseSHA, "", "Base revision")
	flags.String(config.KeyProjectName, "", "Full project name (owner/repo)")
	flags.Int(config.KeyPullRequestNumber, 0, "Pull request number")
	flags.String(config.KeyRepoDir, ".", "Repository checkout to diff")
	flags.String(config.KeyDiffSource, config.DiffSourceGit, "Where to read changed files from: git or api")
	a.addCommonFlags(cmd)

	return cmd
}

func (a *app) runLabel(cmd *cobra.Command) error {
	cfg, err := config.LoadLabeler(a.v)
	if err != nil {
		return a.usage(cmd, err)
	}

	logger := newLogger(a.stderr, cfg.LogLevel)

	client, writer, err := newGitHub(cfg.Common, logger)
	if err != nil {
		return a.usage(cmd, err)
	}

	var files driven.ChangedFilesSource = gitadapter.NewDiffer(cfg.RepoDir)
	if cfg.DiffSource == config.DiffSourceAPI {
		files = &githubadapter.PRFiles{Client: client, Project: cfg.Project, PRNumber: cfg.PullRequest}
	}

	bot := application.NewLabelBot(client, writer, files, logger)
	if _, err := bot.Update(cmd.Context(), cfg.Project, cfg.PullRequest, cfg.BaseSHA); err != nil {
		return a.fail(logger, "updating labels failed", err)
	}

	return nil
}
