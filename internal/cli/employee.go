package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/ui/format"
)

func employeeCmd(opts *globalOpts) *cobra.Command {
	c := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"employees", "emp"},
		Short:   "Manage employees",
	}

	c.AddCommand(
		employeeAddCmd(opts),
		employeeListCmd(opts),
		employeeUpdateCmd(opts),
		employeeDeleteCmd(opts),
	)
	return c
}

type employeeFlags struct {
	name, position, email, phone, joined, idNumber string
	salary                                         float64
}

func (f *employeeFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.name, "name", "", "Full name")
	c.Flags().StringVar(&f.position, "position", "", "Job title")
	c.Flags().StringVar(&f.email, "email", "", "Email address")
	c.Flags().StringVar(&f.phone, "phone", "", "Phone number")
	c.Flags().Float64Var(&f.salary, "salary", 0, "Daily salary")
	c.Flags().StringVar(&f.joined, "joined", "", "Joining date (YYYY-MM-DD)")
	c.Flags().StringVar(&f.idNumber, "id-number", "", "Company employee number")
}

func employeeAddCmd(opts *globalOpts) *cobra.Command {
	var f employeeFlags

	c := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.salary < 0 {
				return invalidInput("cli.employee.add", "--salary must not be negative")
			}
			joined, err := parseDateFlag("joined", f.joined)
			if err != nil {
				return err
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			ws.announce(cmd.OutOrStdout())

			e, err := ws.repo.AddEmployee(domain.EmployeeInput{
				Name:             f.name,
				Position:         f.position,
				Email:            f.email,
				PhoneNumber:      f.phone,
				DailySalary:      f.salary,
				JoiningDate:      joined,
				EmployeeIDNumber: f.idNumber,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", e.ID)
			return nil
		},
	}

	f.register(c)
	_ = c.MarkFlagRequired("name")
	return c
}

func employeeListCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			employees := ws.repo.Employees()
			rows := make([][]string, 0, len(employees))
			for _, e := range employees {
				rows = append(rows, []string{
					e.ID,
					e.Name,
					orDash(e.Position),
					orDash(e.Email),
					orDash(e.PhoneNumber),
					format.Money(e.DailySalary),
					orDash(e.JoiningDate.String()),
				})
			}
			printTable(cmd.OutOrStdout(),
				[]string{"ID", "Name", "Position", "Email", "Phone", "Daily Salary", "Joined"},
				rows, "(no employees yet; add one with `attendpay employee add --name ...`)")
			return nil
		},
	}
}

func employeeUpdateCmd(opts *globalOpts) *cobra.Command {
	var f employeeFlags

	c := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an employee (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := f.patch(cmd)
			if err != nil {
				return err
			}
			if patch.IsEmpty() {
				return invalidInput("cli.employee.update", "nothing to update; pass at least one field flag")
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			ws.announce(cmd.OutOrStdout())

			ok, err := ws.repo.UpdateEmployee(args[0], patch)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No employee with id %q; nothing changed.\n", args[0])
			}
			return nil
		},
	}

	f.register(c)
	return c
}

func (f *employeeFlags) patch(cmd *cobra.Command) (domain.EmployeePatch, error) {
	var p domain.EmployeePatch
	changed := cmd.Flags().Changed

	if changed("name") {
		p.Name = &f.name
	}
	if changed("position") {
		p.Position = &f.position
	}
	if changed("email") {
		p.Email = &f.email
	}
	if changed("phone") {
		p.PhoneNumber = &f.phone
	}
	if changed("salary") {
		if f.salary < 0 {
			return p, invalidInput("cli.employee.update", "--salary must not be negative")
		}
		p.DailySalary = &f.salary
	}
	if changed("joined") {
		d, err := parseDateFlag("joined", f.joined)
		if err != nil {
			return p, err
		}
		p.JoiningDate = &d
	}
	if changed("id-number") {
		p.EmployeeIDNumber = &f.idNumber
	}
	return p, nil
}

func employeeDeleteCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an employee and their attendance records",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			ws.announce(cmd.OutOrStdout())

			ok, err := ws.repo.DeleteEmployee(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No employee with id %q; nothing deleted.\n", args[0])
			}
			return nil
		},
	}
}
