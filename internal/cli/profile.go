package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func profileCmd(opts *globalOpts) *cobra.Command {
	c := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit the operator profile",
	}

	c.AddCommand(profileShowCmd(opts), profileSetCmd(opts))
	return c
}

func profileShowCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			p := ws.repo.UserProfile()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", orDash(p.Name))
			fmt.Fprintf(out, "Email:   %s\n", orDash(p.Email))
			fmt.Fprintf(out, "Role:    %s\n", orDash(string(p.Role)))
			fmt.Fprintf(out, "Company: %s\n", orDash(p.Company))
			return nil
		},
	}
}

func profileSetCmd(opts *globalOpts) *cobra.Command {
	var name, email, role, company string

	c := &cobra.Command{
		Use:   "set",
		Short: "Change profile fields (only the given flags change)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changed := cmd.Flags().Changed
			if !changed("name") && !changed("email") && !changed("role") && !changed("company") {
				return invalidInput("cli.profile.set", "nothing to update; pass --name, --email, --role or --company")
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			ws.announce(cmd.OutOrStdout())

			p := ws.repo.UserProfile()
			if changed("name") {
				p.Name = name
			}
			if changed("email") {
				p.Email = email
			}
			if changed("role") {
				r, err := parseRole(role)
				if err != nil {
					return err
				}
				p.Role = r
			}
			if changed("company") {
				p.Company = company
			}
			return ws.repo.UpdateUserProfile(p)
		},
	}

	c.Flags().StringVar(&name, "name", "", "Display name")
	c.Flags().StringVar(&email, "email", "", "Email address")
	c.Flags().StringVar(&role, "role", "", "admin, manager or user")
	c.Flags().StringVar(&company, "company", "", "Company name")
	return c
}
