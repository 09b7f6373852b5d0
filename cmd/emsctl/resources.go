package main

import (
	"github.com/spf13/cobra"
)

func newEmployeesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employees",
	}

	var active bool
	status := &cobra.Command{
		Use:   "status ID",
		Short: "Activate or deactivate an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printResponse(c.svc.Employees.SetStatus(cmd.Context(), args[0], active))
		},
	}
	status.Flags().BoolVar(&active, "active", true, "whether the employee is active")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all employees",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.printResponse(c.svc.Employees.List(cmd.Context()))
			},
		},
		&cobra.Command{
			Use:   "get ID",
			Short: "Show one employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.printResponse(c.svc.Employees.Get(cmd.Context(), args[0]))
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete an employee",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.printResponse(c.svc.Employees.Delete(cmd.Context(), args[0]))
			},
		},
		status,
	)
	return cmd
}

func newLeaveCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Apply for and review leave",
	}

	var employeeID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List leave requests, optionally of one employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if employeeID != "" {
				return c.printResponse(c.svc.Leave.ListByEmployee(cmd.Context(), employeeID))
			}
			return c.printResponse(c.svc.Leave.List(cmd.Context()))
		},
	}
	list.Flags().StringVar(&employeeID, "employee", "", "employee ID")

	var data string
	apply := &cobra.Command{
		Use:   "apply",
		Short: "Submit a leave request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readData(data)
			if err != nil {
				return err
			}
			return c.printResponse(c.svc.Leave.Apply(cmd.Context(), payload))
		},
	}
	apply.Flags().StringVar(&data, "data", "", "JSON payload, inline or @file")

	var leaveStatus string
	status := &cobra.Command{
		Use:   "status ID",
		Short: "Approve or reject a leave request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printResponse(c.svc.Leave.UpdateStatus(cmd.Context(), args[0], leaveStatus))
		},
	}
	status.Flags().StringVar(&leaveStatus, "status", "", "new status [Pending | Approved | Rejected]")
	_ = status.MarkFlagRequired("status")

	cmd.AddCommand(list, apply, status)
	return cmd
}

func newAttendanceCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Record and list attendance",
	}

	var data string
	mark := &cobra.Command{
		Use:   "mark",
		Short: "Mark attendance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readData(data)
			if err != nil {
				return err
			}
			return c.printResponse(c.svc.Attendance.Mark(cmd.Context(), payload))
		},
	}
	mark.Flags().StringVar(&data, "data", "", "JSON payload, inline or @file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List attendance records",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.printResponse(c.svc.Attendance.List(cmd.Context()))
			},
		},
		mark,
	)
	return cmd
}

func newTimesheetsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheets",
		Short: "Record and list timesheets",
	}

	var employeeID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List timesheets, optionally of one employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if employeeID != "" {
				body, err := c.svc.Timesheets.ListByEmployee(cmd.Context(), employeeID)
				if err != nil {
					return err
				}
				return c.printRaw(body)
			}
			body, err := c.svc.Timesheets.List(cmd.Context())
			if err != nil {
				return err
			}
			return c.printRaw(body)
		},
	}
	list.Flags().StringVar(&employeeID, "employee", "", "employee ID")

	var data string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a timesheet entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readData(data)
			if err != nil {
				return err
			}
			body, err := c.svc.Timesheets.Add(cmd.Context(), payload)
			if err != nil {
				return err
			}
			return c.printRaw(body)
		},
	}
	add.Flags().StringVar(&data, "data", "", "JSON payload, inline or @file")

	cmd.AddCommand(list, add)
	return cmd
}

func newPayrollsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payrolls",
		Short: "Create and list payrolls",
	}

	var data string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a payroll",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readData(data)
			if err != nil {
				return err
			}
			return c.printResponse(c.svc.Payrolls.Create(cmd.Context(), payload))
		},
	}
	create.Flags().StringVar(&data, "data", "", "JSON payload, inline or @file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List payrolls",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.printResponse(c.svc.Payrolls.List(cmd.Context()))
			},
		},
		create,
	)
	return cmd
}
