package cli

import (
	"context"
	"errors"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/apibook/pkg/preview"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var flags buildFlags
	var addr string
	var watching bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the book as HTML",
		Long: `Serve the book directory as HTML. Pages are rendered from the Markdown on
every request. With --watch the book is also rebuilt whenever an input changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			if _, err := os.Stat(opts.BookDir); os.IsNotExist(err) && !watching {
				printWarning("%s does not exist yet, run apibook build first", opts.BookDir)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			watchErr := make(chan error, 1)
			if watching {
				go func() {
					err := c.runWatch(ctx, &flags)
					if err != nil && !errors.Is(err, context.Canceled) {
						cancel()
					}
					watchErr <- err
				}()
			}

			srv := preview.New(opts.BookDir, c.Logger)
			err = srv.ListenAndServe(ctx, addr, func(a net.Addr) {
				printSuccess("Serving %s at %s", opts.BookDir, StyleLink.Render("http://"+a.String()))
			})

			if watching {
				cancel()
				if werr := <-watchErr; werr != nil && !errors.Is(werr, context.Canceled) {
					return werr
				}
			}
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", preview.DefaultAddr, "listen address")
	cmd.Flags().BoolVarP(&watching, "watch", "w", false, "rebuild the book when inputs change")

	return cmd
}
