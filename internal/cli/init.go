package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/infra/fsworkspace"
	"github.com/aalvaropc/attendpay/internal/usecase"
)

func initCmd(opts *globalOpts) *cobra.Command {
	var force bool
	var name, email string

	c := &cobra.Command{
		Use:   "init",
		Short: "Create an attendpay workspace (defaults to the current directory)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := strings.TrimSpace(opts.workspace)
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid workspace path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workspace ready at %s\n", root)

			ws, err := openWorkspace(&globalOpts{workspace: root, debug: opts.debug}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			seeded, err := uc.SeedProfile(ws.repo, domain.Identity{Name: name, Email: email}, ws.cfg.Defaults.Role)
			if err != nil {
				return err
			}
			if seeded {
				p := ws.repo.UserProfile()
				fmt.Fprintf(out, "Profile set for %s (%s)\n", orDash(p.Name), p.Role)
			}
			return nil
		},
	}

	c.Flags().BoolVar(&force, "force", false, "Overwrite attendpay.yaml with the template")
	c.Flags().StringVar(&name, "name", "", "Operator name for a fresh profile")
	c.Flags().StringVar(&email, "email", "", "Operator email for a fresh profile")
	return c
}
