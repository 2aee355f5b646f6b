// Command prh stages every change in the working copy,
// commits it with a prompted message, pushes the
// current branch and opens a GitHub pull request
// against the repository's default branch.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/byte4ever/prh/gitpr/config"
	"github.com/byte4ever/prh/gitpr/exec"
	"github.com/byte4ever/prh/gitpr/git"
	"github.com/byte4ever/prh/gitpr/git/github"
	"github.com/byte4ever/prh/gitpr/logging"
	"github.com/byte4ever/prh/gitpr/prh"
	"github.com/byte4ever/prh/gitpr/prompt"
)

// errStageFailed reports a pipeline stage failure that
// was already logged by the stage.
var errStageFailed = errors.New("pipeline stage failed")

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errStageFailed) {
			slog.Error("fatal", "error", err)
		}

		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// options holds the command line flags. Flags left
// unset keep the configuration file values.
type options struct {
	configPath     string
	remote         string
	dryRun         bool
	logLevel       string
	logFile        string
	reportPath     string
	apiURL         string
	enterpriseHost string
	dir            string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "prh",
		Short: "Stage, commit, push and open a pull request",
		Long: `prh automates the usual end of a change:

  1. stage every modification in the working tree (git add .)
  2. ask for a commit message and commit
  3. push the current branch to the remote
  4. open a pull request into the repository's default branch

The GitHub token is read from $GITHUB_TOKEN (see token_env in
the configuration file) or asked for interactively.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), opts, cmd.Flags())
		},
	}

	f := cmd.Flags()
	f.StringVar(
		&opts.configPath, "config", "",
		"configuration file (default "+config.DefaultFile+
			" when present)",
	)
	f.StringVar(
		&opts.remote, "remote", git.DefaultRemote,
		"git remote to push to and open the pull "+
			"request on",
	)
	f.BoolVar(
		&opts.dryRun, "dry-run", false,
		"stage and commit but skip push and pull "+
			"request creation",
	)
	f.StringVar(
		&opts.logLevel, "log-level", "info",
		"log level: debug, info, warn or error",
	)
	f.StringVar(
		&opts.logFile, "log-file", "",
		"also log to this rotating file",
	)
	f.StringVar(
		&opts.reportPath, "report", "",
		"write a JSON run report to this file",
	)
	f.StringVar(
		&opts.apiURL, "api-url", "",
		"GitHub REST API base URL",
	)
	f.StringVar(
		&opts.enterpriseHost, "enterprise-host", "",
		"GitHub Enterprise hostname",
	)
	f.StringVar(
		&opts.dir, "dir", "",
		"working copy directory (default current "+
			"directory)",
	)

	return cmd
}

// applyFlags overrides cfg with every flag the user
// set explicitly.
func applyFlags(
	cfg *config.Config,
	opts options,
	flags *pflag.FlagSet,
) {
	if flags.Changed("remote") {
		cfg.Remote = opts.remote
	}

	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}

	if flags.Changed("log-file") {
		cfg.Log.File = opts.logFile
	}

	// api-url and enterprise-host select the same
	// endpoint; the one given on the command line wins.
	if flags.Changed("api-url") {
		cfg.GitHub.APIURL = opts.apiURL
		if !flags.Changed("enterprise-host") {
			cfg.GitHub.EnterpriseHost = ""
		}
	}

	if flags.Changed("enterprise-host") {
		cfg.GitHub.EnterpriseHost = opts.enterpriseHost
		if !flags.Changed("api-url") {
			cfg.GitHub.APIURL = ""
		}
	}
}

func execute(
	ctx context.Context,
	opts options,
	flags *pflag.FlagSet,
) (retErr error) {
	const errCtx = "running prh"

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	applyFlags(cfg, opts, flags)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	logger, closer, err := logging.New(
		os.Stderr, cfg.Log.Level, cfg.Log.File,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		retErr = errors.Join(retErr, closer.Close())
	}()

	slog.SetDefault(logger)

	ghCfg := github.Config{
		APIURL:         cfg.GitHub.APIURL,
		EnterpriseHost: cfg.GitHub.EnterpriseHost,
	}

	rep, runErr := prh.Run(ctx, prh.Config{
		Repo:          git.Open(opts.dir, cfg.Remote, exec.Default),
		Input:         prompt.NewConsole(os.Stdin, os.Stdout),
		Out:           os.Stdout,
		NewProvider:   github.Factory(ghCfg),
		ForgeHost:     ghCfg.Host(),
		TokenEnv:      cfg.TokenEnv,
		FallbackBase:  cfg.FallbackBase,
		TitleTemplate: cfg.PR.TitleTemplate,
		BodyTemplate:  cfg.PR.BodyTemplate,
		DryRun:        opts.dryRun,
	})

	var saveErr error

	if opts.reportPath != "" {
		saveErr = rep.SaveJSON(opts.reportPath)
		if saveErr != nil {
			slog.Error("cannot write report", "error", saveErr)
		} else {
			slog.Info("wrote report", "path", opts.reportPath)
		}
	}

	if err := errors.Join(
		pipelineError(rep, runErr), saveErr,
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if rep.PullRequestURL != "" {
		fmt.Println(rep.PullRequestURL) //nolint:forbidigo // command output
	}

	return nil
}

// pipelineError maps the result of prh.Run to the error
// returned by the command. Failures logged by a stage
// become errStageFailed; other errors are kept.
func pipelineError(rep *prh.Report, err error) error {
	if err == nil {
		return nil
	}

	if rep != nil && rep.Failed() {
		return errStageFailed
	}

	return err
}
