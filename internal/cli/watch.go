package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/apibook/pkg/errors"
	"github.com/matzehuels/apibook/pkg/watch"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build the book and rebuild it whenever an input changes",
		Long: `Build the book, then rebuild it whenever the reflection JSON, the README,
the config file or an example changes. Failed rebuilds are reported and the
watch continues.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), &flags)
		},
	}

	flags.register(cmd)
	return cmd
}

// runWatch builds once, then rebuilds on every change until ctx is done.
// Options are re-resolved for every rebuild so config edits take effect.
func (c *CLI) runWatch(ctx context.Context, flags *buildFlags) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if _, err := c.runBuild(ctx, runner, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		printError("%s", apperr.UserMessage(err))
	}

	cfgPath, _ := flags.configPath()
	w, err := watch.New(
		[]string{opts.Input, opts.Readme, cfgPath},
		[]string{opts.ExamplesDir},
		c.Logger,
	)
	if err != nil {
		return err
	}

	printInfo("Watching for changes (Ctrl+C to stop)")
	return w.Run(ctx, func(ctx context.Context, changed []string) {
		c.Logger.Debug("rebuild", "changed", changed)
		prog := newProgress(c.Logger)

		next, err := flags.options()
		if err != nil {
			printError("%s", apperr.UserMessage(err))
			return
		}
		if _, err := c.runBuild(ctx, runner, next); err != nil {
			if !errors.Is(err, context.Canceled) {
				printError("%s", apperr.UserMessage(err))
			}
			return
		}
		prog.done("Rebuilt book")
	})
}
