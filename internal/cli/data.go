package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func dataCmd(opts *globalOpts) *cobra.Command {
	c := &cobra.Command{
		Use:   "data",
		Short: "Export, import and activate whole-state JSON documents",
	}

	c.AddCommand(
		dataExportCmd(opts),
		dataImportCmd(opts),
		dataDiffCmd(opts),
		dataActivateCmd(opts),
		dataDiscardCmd(opts),
	)
	return c
}

func dataExportCmd(opts *globalOpts) *cobra.Command {
	var outDir string

	c := &cobra.Command{
		Use:   "export",
		Short: "Write all data to attendpay-export-YYYY-MM-DD.json (use --out - for stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			if outDir == "-" {
				return ws.transfer.Export(cmd.OutOrStdout())
			}

			dir := outDir
			if dir == "" {
				dir = ws.exportsDir()
			}
			path, err := ws.transfer.ExportToDir(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data exported to %s\n", path)
			return nil
		},
	}

	c.Flags().StringVarP(&outDir, "out", "o", "", "Target directory (default: the exports dir)")
	return c
}

func dataImportCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Stage an export document; nothing changes until `data activate`",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return invalidInput("cli.data.import", "cannot open %s: %v", filepath.Base(args[0]), err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			sum, err := ws.transfer.Import(r)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Staged %d employee(s), %d attendance record(s), %d salary report(s).\n",
				sum.Employees, sum.AttendanceRecords, sum.SalaryReports)
			if sum.Duplicates > 0 {
				fmt.Fprintf(out, "%d duplicate attendance record(s) will be collapsed on activation.\n", sum.Duplicates)
			}
			fmt.Fprintln(out, faint.Render("Review with `attendpay data diff`, then `attendpay data activate` to replace the current data."))
			return nil
		},
	}
}

func dataDiffCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Show what activating the staged import would change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			patch, err := ws.transfer.Diff()
			if err != nil {
				return err
			}
			printPatch(cmd.OutOrStdout(), patch)
			return nil
		},
	}
}

func dataActivateCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Replace the current data with the staged import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			sum, err := ws.transfer.Activate()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d employee(s), %d attendance record(s), %d salary report(s).\n",
				sum.Employees, sum.AttendanceRecords, sum.SalaryReports)
			return nil
		},
	}
}

func dataDiscardCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "discard",
		Short: "Drop the staged import",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := openWorkspace(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer ws.close()

			ok, err := ws.transfer.Discard()
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Staged import discarded.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing staged.")
			}
			return nil
		},
	}
}
