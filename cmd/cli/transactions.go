package main

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/walletsavior/walletsavior/internal/adapter/http/dto"
)

func transactionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Transaction operations",
	}

	cmd.AddCommand(addTransactionCmd(opts), listTransactionsCmd(opts), renameTransactionCmd(opts))
	return cmd
}

func addTransactionCmd(opts *options) *cobra.Command {
	var (
		accountID string
		category  string
		txType    string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Record an income or expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			req := dto.CreateTransactionRequest{
				BankAccountID: accountID,
				Name:          args[0],
				Category:      category,
				Type:          txType,
				Amount:        amount,
				Date:          date,
			}

			var tx dto.TransactionResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/api/v1/transactions", req, &tx); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tx)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Bank account ID")
	cmd.Flags().StringVar(&category, "category", "General", "Category")
	cmd.Flags().StringVar(&txType, "type", "EXPENSE", "INCOME or EXPENSE")
	cmd.Flags().StringVar(&date, "date", time.Now().UTC().Format(time.RFC3339), "RFC 3339 timestamp or YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func listTransactionsCmd(opts *options) *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list ACCOUNT_ID",
		Short: "List an account's transactions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("limit", fmt.Sprint(limit))
			query.Set("offset", fmt.Sprint(offset))
			path := "/api/v1/accounts/" + url.PathEscape(args[0]) + "/transactions?" + query.Encode()

			var resp dto.ListTransactionsResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size (max 100)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	return cmd
}

func renameTransactionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tx dto.TransactionResponse
			path := "/api/v1/transactions/" + url.PathEscape(args[0])
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPatch, path, dto.RenameTransactionRequest{Name: args[1]}, &tx); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tx)
		},
	}
}
