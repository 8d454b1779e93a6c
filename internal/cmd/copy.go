package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/techdocs/internal/config"
	"github.com/harrison/techdocs/internal/copier"
	"github.com/harrison/techdocs/internal/detectors"
	"github.com/harrison/techdocs/internal/filelock"
	"github.com/harrison/techdocs/internal/history"
	"github.com/harrison/techdocs/internal/index"
	"github.com/harrison/techdocs/internal/logger"
	"github.com/harrison/techdocs/internal/render"
	"github.com/harrison/techdocs/internal/vfs"
)

// copyOptions holds the copy subcommand's flag values.
type copyOptions struct {
	indexRepo  string
	from       string
	to         string
	configPath string
	branch     string
	author     string
	dryRun     bool
	settings   string
}

// NewCopyCommand builds the copy subcommand: sync a source repo's matched
// files into a destination docs tree.
func NewCopyCommand() *cobra.Command {
	opts := &copyOptions{}

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Sync matched files from a source repo into a destination docs tree",
		Long: `copy scans --from for files matching --config's document rules and
mirrors them into --to, enriching Markdown frontmatter, rendering PlantUML
diagrams to SVG, and bundling OpenAPI specs to JSON along the way. A
per-repo index under --to/.index tracks what this run previously produced,
so files no longer matched are removed on the next run.

Exit codes: 0 on success or nothing to do; 1 on a config load error; a
non-zero code on any other runtime error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.indexRepo, "index", "", "repo label recorded in index items and used to scope deletions")
	flags.StringVar(&opts.from, "from", "", "source root")
	flags.StringVar(&opts.to, "to", "", "destination root (must contain projects.json)")
	flags.StringVar(&opts.configPath, "config", "", "JSON documents configuration file")
	flags.StringVar(&opts.branch, "branch", "master", "branch used in custom_edit_url")
	flags.StringVar(&opts.author, "author", "unknown author", "author used in last_update")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print planned operations without mutating the filesystem or persisting the index")
	flags.StringVar(&opts.settings, "settings", "", "YAML settings file for ambient tool configuration")

	for _, required := range []string{"index", "from", "to", "config"} {
		cmd.MarkFlagRequired(required)
	}

	return cmd
}

func runCopy(opts *copyOptions, out, errOut io.Writer) error {
	settings, err := config.LoadSettings(opts.settings)
	if err != nil {
		fmt.Fprintf(out, "Config file load error: %s\n", err)
		return errExitCode(1)
	}

	log := logger.NewAutoLogger(errOut, settings.LogLevel)
	if settings.Color {
		log = logger.NewLogger(errOut, settings.LogLevel, true)
	}

	fs := vfs.NewOSFilesystem()
	registry := config.NewProjectRegistry(opts.to, fs)
	loader := config.NewLoader(fs, registry)

	cfg, warnings, err := loader.Load(opts.configPath, opts.from)
	if err != nil {
		fmt.Fprintf(out, "Config file load error: %s\n", err)
		return errExitCode(1)
	}
	for _, warning := range warnings {
		log.Warn(warning)
	}

	indexRoot := filepath.Join(opts.to, ".index")
	repoLock, err := filelock.LockRepoSlice(indexRoot, opts.indexRepo)
	if err != nil {
		return err
	}
	defer repoLock.Unlock()

	ix, err := index.Load(indexRoot, fs)
	if err != nil {
		return err
	}

	plantumlGenerator := render.NewPlantUMLGenerator(settings.PlantUML.Command, settings.PlantUML.TimeoutSeconds)
	openapiBundler := render.NewOpenAPIBundler(settings.OpenAPI.TimeoutSeconds)

	chain := detectors.NewChain(
		detectors.NewCopyDetector(opts.from, opts.to, opts.author, opts.branch, registry, cfg),
		detectors.NewPlantUMLDetector(plantumlGenerator),
		detectors.NewOpenAPIDetector(openapiBundler),
		detectors.NewDeleteDetector(opts.indexRepo, ix, opts.from, opts.to),
		detectors.NewFilterDetector(),
	)

	operations, err := chain.Run(fs)
	if err != nil {
		return err
	}

	formatter := copier.NewRelativeFormatter(opts.from, opts.to)

	var executor copier.Executor
	if opts.dryRun {
		executor = copier.NewPrintingExecutor(formatter, out)
	} else {
		fsExecutor := copier.NewFilesystemExecutor(fs, formatter, out)
		if settings.HistoryDBPath != "" {
			store, err := history.Open(settings.HistoryDBPath)
			if err != nil {
				log.Warnf("history store unavailable: %s", err)
			} else {
				defer store.Close()
				fsExecutor = fsExecutor.WithHistory(store, uuid.NewString(), opts.indexRepo)
			}
		}
		executor = fsExecutor
	}

	c := copier.New(operations, fs, executor, errOut)
	if err := c.Execute(); err != nil {
		return err
	}

	if !opts.dryRun {
		if err := index.Save(ix, indexRoot, fs); err != nil {
			return err
		}
	}

	return nil
}

// errExitCode is a sentinel error cobra.Execute's caller can translate into
// a specific process exit code via os.Exit, matching the original tool's
// `print(...); sys.exit(1)` shape for config errors.
type errExitCode int

func (e errExitCode) Error() string { return fmt.Sprintf("exit code %d", int(e)) }

// ExitCode extracts the process exit code a command's error should map to.
// Errors that are not an errExitCode map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if code, ok := err.(errExitCode); ok {
		return int(code)
	}
	return 1
}

// IsExitSentinel reports whether err is the sentinel used for a config
// load failure, whose message was already printed to stdout by runCopy —
// the caller should exit with its code without printing err again.
func IsExitSentinel(err error) bool {
	_, ok := err.(errExitCode)
	return ok
}
