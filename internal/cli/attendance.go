package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/attendpay/internal/domain"
	"github.com/aalvaropc/attendpay/internal/usecase"
)

// now is replaced in tests.
var now = time.Now

func attendanceCmd(opts *globalOpts) *cobra.Command {
	c := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "Record and review attendance",
	}

	c.AddCommand(
		attendanceMarkCmd(opts),
		attendanceDayCmd(opts),
		attendanceUpdateCmd(opts),
		attendanceDeleteCmd(opts),
		attendanceListCmd(opts),
	)
	return c
}

func attendanceMarkCmd(opts *globalOpts) *cobra.Command {
	var employeeID, date, status, notes string

	c := &cobra.Command{
		Use:   "mark",
		Short: "Mark one employee for one day (replaces an existing mark)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDayFlag("date", date, now())
			if err != nil {
				return err
			}
			st, err := parseStatus(status)
			if err != nil {
				return err
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			if _, ok := ws.repo.Employee(employeeID); !ok {
				return invalidInput("cli.attendance.mark", "no employee with id %q", employeeID)
			}
			ws.announce(cmd.OutOrStdout())

			in := domain.AttendanceInput{EmployeeID: employeeID, Date: d, Status: st}
			if cmd.Flags().Changed("notes") {
				in.Notes = &notes
			}
			_, err = ws.repo.AddAttendanceRecord(in)
			return err
		},
	}

	c.Flags().StringVarP(&employeeID, "employee", "e", "", "Employee id (required)")
	c.Flags().StringVarP(&date, "date", "d", "", "Day to mark (YYYY-MM-DD, default today)")
	c.Flags().StringVarP(&status, "status", "s", "", "present, absent, half-day or leave (required)")
	c.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = c.MarkFlagRequired("employee")
	_ = c.MarkFlagRequired("status")
	return c
}

func attendanceDayCmd(opts *globalOpts) *cobra.Command {
	var date string
	var marks map[string]string

	c := &cobra.Command{
		Use:     "day",
		Short:   "Record a whole day: everyone is absent unless marked otherwise",
		Example: "  attendpay attendance day --date 2024-01-15 --mark <id>=present --mark <id>=half-day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := parseDayFlag("date", date, now())
			if err != nil {
				return err
			}

			sheet := make(map[string]usecase.Mark, len(marks))
			for id, raw := range marks {
				st, err := parseStatus(raw)
				if err != nil {
					return err
				}
				sheet[strings.TrimSpace(id)] = usecase.Mark{Status: st}
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			res, err := usecase.NewMarkDay(ws.repo).Execute(d, sheet)
			out := cmd.OutOrStdout()
			for _, id := range res.Ignored {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: no employee with id %q; mark ignored\n", id)
			}
			if err != nil {
				return err
			}

			counts := map[domain.AttendanceStatus]int{}
			for _, rec := range res.Records {
				counts[rec.Status]++
			}
			fmt.Fprintf(out, "Attendance saved for %s: %s\n", d, summarizeCounts(counts))
			return nil
		},
	}

	c.Flags().StringVarP(&date, "date", "d", "", "Day to record (YYYY-MM-DD, default today)")
	c.Flags().StringToStringVar(&marks, "mark", nil, "Explicit status per employee id (id=status), repeatable")
	return c
}

func summarizeCounts(counts map[domain.AttendanceStatus]int) string {
	parts := make([]string, 0, len(counts))
	for _, s := range domain.Statuses() {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "no employees"
	}
	return strings.Join(parts, ", ")
}

func attendanceUpdateCmd(opts *globalOpts) *cobra.Command {
	var employeeID, date, status, notes string

	c := &cobra.Command{
		Use:   "update <record-id>",
		Short: "Change an attendance record (only the given flags change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.AttendancePatch
			changed := cmd.Flags().Changed

			if changed("employee") {
				patch.EmployeeID = &employeeID
			}
			if changed("date") {
				d, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				patch.Date = &d
			}
			if changed("status") {
				st, err := parseStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if changed("notes") {
				patch.Notes = &notes
			}
			if patch == (domain.AttendancePatch{}) {
				return invalidInput("cli.attendance.update", "nothing to update; pass --employee, --date, --status or --notes")
			}

			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			ws.announce(cmd.OutOrStdout())

			ok, err := ws.repo.UpdateAttendanceRecord(args[0], patch)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No attendance record with id %q; nothing changed.\n", args[0])
			}
			return nil
		},
	}

	c.Flags().StringVarP(&employeeID, "employee", "e", "", "Move the record to another employee")
	c.Flags().StringVarP(&date, "date", "d", "", "Move the record to another day (YYYY-MM-DD)")
	c.Flags().StringVarP(&status, "status", "s", "", "present, absent, half-day or leave")
	c.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return c
}

func attendanceDeleteCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <record-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an attendance record",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()
			ws.announce(cmd.OutOrStdout())

			ok, err := ws.repo.DeleteAttendanceRecord(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "No attendance record with id %q; nothing deleted.\n", args[0])
			}
			return nil
		},
	}
}

func attendanceListCmd(opts *globalOpts) *cobra.Command {
	var employeeID, date string

	c := &cobra.Command{
		Use:   "list",
		Short: "List attendance by employee or by day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			var records []domain.AttendanceRecord
			switch {
			case cmd.Flags().Changed("employee"):
				records = ws.repo.AttendanceByEmployee(employeeID)
			case cmd.Flags().Changed("date"):
				d, err := parseDayFlag("date", date, now())
				if err != nil {
					return err
				}
				records = ws.repo.AttendanceByDate(d)
			default:
				records = ws.repo.AttendanceRecords()
			}

			sort.SliceStable(records, func(i, j int) bool {
				return records[i].Date.String() < records[j].Date.String()
			})

			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				notes := ""
				if rec.Notes != nil {
					notes = *rec.Notes
				}
				rows = append(rows, []string{
					rec.ID,
					ws.employeeName(rec.EmployeeID),
					rec.Date.String(),
					string(rec.Status),
					orDash(notes),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "Employee", "Date", "Status", "Notes"}, rows, "(no attendance records)")
			return nil
		},
	}

	c.Flags().StringVarP(&employeeID, "employee", "e", "", "Only this employee")
	c.Flags().StringVarP(&date, "date", "d", "", "Only this day (YYYY-MM-DD or today)")
	c.MarkFlagsMutuallyExclusive("employee", "date")
	return c
}
