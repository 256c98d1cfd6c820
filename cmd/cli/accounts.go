package main

import (
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/walletsavior/walletsavior/internal/adapter/http/dto"
)

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Bank account operations",
	}

	cmd.AddCommand(createAccountCmd(opts), listAccountsCmd(opts), getAccountCmd(opts))
	return cmd
}

func createAccountCmd(opts *options) *cobra.Command {
	var (
		currency  string
		overdraft string
		balance   string
	)

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateBankAccountRequest{Name: args[0], Currency: currency}

			var err error
			if req.Overdraft, err = decimal.NewFromString(overdraft); err != nil {
				return err
			}
			if req.Balance, err = decimal.NewFromString(balance); err != nil {
				return err
			}

			var account dto.BankAccountResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/accounts", req, &account); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "USD", "ISO currency code")
	cmd.Flags().StringVar(&overdraft, "overdraft", "0", "Overdraft limit")
	cmd.Flags().StringVar(&balance, "balance", "0", "Opening balance")
	return cmd
}

func listAccountsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your bank accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListBankAccountsResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/api/v1/accounts", nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func getAccountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.BankAccountResponse
			path := "/api/v1/accounts/" + url.PathEscape(args[0])
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &account); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}
}
