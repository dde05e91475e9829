package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apibook/pkg/book"
	"github.com/matzehuels/apibook/pkg/config"
	apperr "github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/pipeline"
)

// buildFlags holds the flags shared by build, watch and serve.
type buildFlags struct {
	config   string
	input    string
	out      string
	module   string
	readme   string
	examples string
	glob     string
	refs     map[string]string
	noCache  bool
	refresh  bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "", "config file (default: ./"+config.DefaultFile+" if present)")
	fl.StringVarP(&f.input, "input", "i", "", "reflection JSON file (default: "+pipeline.DefaultInput+")")
	fl.StringVarP(&f.out, "out", "o", "", "book directory (default: "+pipeline.DefaultBookDir+")")
	fl.StringVar(&f.module, "module", "", "name of the documented module (default: "+pipeline.DefaultModule+")")
	fl.StringVar(&f.readme, "readme", "", "README copied as the Quick Start page (default: "+pipeline.DefaultReadme+")")
	fl.StringVar(&f.examples, "examples", "", "examples directory (default: <out>/"+pipeline.DefaultExamplesSubdir+")")
	fl.StringVar(&f.glob, "glob", "", "glob selecting example files (default: "+book.DefaultExamplesGlob+")")
	fl.StringToStringVar(&f.refs, "ref", nil, "extra reference NAME=TARGET (repeatable)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable the build cache")
	fl.BoolVar(&f.refresh, "refresh", false, "ignore cached compile results")
}

// configPath is the config file to read, and whether it must exist.
func (f *buildFlags) configPath() (string, bool) {
	if f.config != "" {
		return f.config, true
	}
	return config.DefaultFile, false
}

// options merges the flags over the config file and validates the result.
func (f *buildFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Input:        f.input,
		BookDir:      f.out,
		Module:       f.module,
		Readme:       f.readme,
		ExamplesDir:  f.examples,
		ExamplesGlob: f.glob,
		References:   f.refs,
		Refresh:      f.refresh,
	}

	path, required := f.configPath()
	var cfg *config.File
	var err error
	if required {
		cfg, err = config.Load(path)
	} else {
		cfg, _, err = config.LoadOptional(path)
	}
	if err != nil {
		return opts, err
	}
	if cfg != nil {
		cfg.Apply(&opts)
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var flags buildFlags
	var check bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the reflection JSON into a Markdown book",
		Long: `Compile the reflection JSON into a Markdown book.

With --check nothing is written: the generated book is compared with the one
on disk and the command fails with a diff if they differ.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			opts.Check = check

			runner, err := c.newRunner(flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			_, err = c.runBuild(cmd.Context(), runner, opts)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&check, "check", false, "fail if the book on disk is out of date instead of writing it")

	return cmd
}

// runBuild executes one build and prints its outcome.
func (c *CLI) runBuild(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	result, err := runner.Execute(ctx, opts)

	var stale *apperr.OutOfDateError
	if errors.As(err, &stale) {
		printError("Book in %s is out of date", opts.BookDir)
		for _, p := range stale.Paths {
			printDetail("%s", p)
			printDiff(stale.Diffs[p])
		}
		return result, err
	}
	if err != nil {
		return nil, err
	}

	if opts.Check {
		printSuccess("Book in %s is up to date", opts.BookDir)
		printDetail("%d files checked", len(result.Files))
		return result, nil
	}

	printSuccess("Built book in %s", opts.BookDir)
	for _, f := range result.Files {
		if f.Status == pipeline.StatusWritten {
			printFile(f)
		}
	}
	printStats(result.Stats, result.CacheInfo.CompileHit)
	return result, nil
}
