package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/presence/internal/attendance"
	"github.com/MrJamesThe3rd/presence/internal/dashboard"
)

func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().String("scope", "today", "Date range: today or all")
	cmd.Flags().Bool("checkin", false, "Show check-ins")
	cmd.Flags().Bool("checkout", false, "Show check-outs")
	cmd.Flags().String("department", "", "Only employees of this department")
	cmd.Flags().StringP("query", "q", "", "Match employee name or ID")
	cmd.Flags().String("status", "", "Only punches with this status: ontime, late or early")
}

func queryFromFlags(cmd *cobra.Command) (dashboard.Query, error) {
	scope, err := attendance.ParseScope(mustGetString(cmd, "scope"))
	if err != nil {
		return dashboard.Query{}, err
	}

	status, err := attendance.ParseStatus(mustGetString(cmd, "status"))
	if err != nil {
		return dashboard.Query{}, err
	}

	return dashboard.Query{
		Scope: scope,
		Facets: attendance.Facets{
			CheckIn:  mustGetBool(cmd, "checkin"),
			CheckOut: mustGetBool(cmd, "checkout"),
		},
		Filter: attendance.Filter{
			Department: mustGetString(cmd, "department"),
			Query:      mustGetString(cmd, "query"),
			Status:     status,
		},
	}, nil
}
