package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/walletsavior/walletsavior/internal/adapter/http/dto"
)

func savingsCmd(opts *options) *cobra.Command {
	now := time.Now()
	var (
		year  int
		month int
		tz    string
	)

	cmd := &cobra.Command{
		Use:   "savings ACCOUNT_ID",
		Short: "Show net savings for a month",
		Long:  "Income minus expenses for one calendar month. --month is 1-12.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if month < 1 || month > 12 {
				return fmt.Errorf("--month must be between 1 and 12, got %d", month)
			}

			query := url.Values{}
			query.Set("year", fmt.Sprint(year))
			query.Set("month", fmt.Sprint(month-1))
			if tz != "" {
				query.Set("tz", tz)
			}
			path := "/api/v1/accounts/" + url.PathEscape(args[0]) + "/savings?" + query.Encode()

			var resp dto.SavingsResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "Month (1-12)")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA time zone, server default when empty")
	return cmd
}
