package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/attendpay/internal/buildinfo"
	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/infra/logger"
	"github.com/aalvaropc/attendpay/internal/infra/workspacefinder"
	"github.com/aalvaropc/attendpay/internal/ui/format"
	"github.com/aalvaropc/attendpay/internal/ui/tui"
)

type globalOpts struct {
	workspace string
	debug     bool
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorLine(err))
		os.Exit(1)
	}
}

// errorLine prefers the short operator message for classified errors and
// falls back to the raw text for flag and argument errors from cobra.
func errorLine(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		return format.UserMessage(err)
	}
	return err.Error()
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	cmd := &cobra.Command{
		Use:           "attendpay",
		Short:         "attendpay — employee attendance and salary tracking",
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				if !domain.IsKind(err, domain.KindNotFound) {
					return err
				}
				// No workspace yet: the dashboard explains how to create one.
				return tui.Run(tui.Deps{
					WorkspaceLocator: workspacefinder.NewFinder(),
					Logger:           logger.L(),
					Debug:            opts.debug,
				})
			}
			defer ws.close()

			return tui.Run(tui.Deps{
				WorkspaceLocator: workspacefinder.NewFinder(),
				WorkspaceRoot:    ws.root,
				Source:           ws.repo,
				Logger:           ws.log,
				Debug:            opts.debug,
				LogPath:          logger.Path(),
			})
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .attendpay/logs/attendpay.log")

	cmd.AddCommand(
		initCmd(opts),
		employeeCmd(opts),
		attendanceCmd(opts),
		salaryCmd(opts),
		reportCmd(opts),
		profileCmd(opts),
		dataCmd(opts),
	)
	return cmd
}
