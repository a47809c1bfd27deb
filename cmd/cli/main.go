package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// tokenEnv supplies the session token when --token is not given.
const tokenEnv = "GOSPLIT_TOKEN"

type options struct {
	baseURL string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "gosplit-cli",
		Short:         "GoSplit CLI tool",
		Long:          `A command line interface for interacting with the GoSplit API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the GoSplit API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv(tokenEnv), "Session token (defaults to $"+tokenEnv+")")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	rootCmd.AddCommand(settlementCmds(opts)...)
	rootCmd.AddCommand(
		sessionCmd(opts),
		groupCmd(opts),
		memberCmd(opts),
		expenseCmd(opts),
		summaryCmd(opts),
		payCmd(opts),
		exportCmd(opts),
		personalCmd(opts),
	)

	return rootCmd
}

func sessionCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a session and print its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodPost, "/api/v1/sessions", nil)
		},
	}, &cobra.Command{
		Use:   "end",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodDelete, "/api/v1/sessions/current", nil)
		},
	})

	return cmd
}

func groupCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create NAME",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodPost, "/api/v1/groups/", map[string]string{"name": args[0]})
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodGet, "/api/v1/groups/", nil)
		},
	}, &cobra.Command{
		Use:   "show NAME",
		Short: "Show a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodGet, groupPath(args[0], ""), nil)
		},
	})

	return cmd
}

func memberCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Member operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add GROUP NAME",
		Short: "Add a member to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodPost, groupPath(args[0], "members"), map[string]string{"name": args[1]})
		},
	})

	var unpaid bool
	paidCmd := &cobra.Command{
		Use:   "paid GROUP MEMBER",
		Short: "Mark a member as paid (or unpaid with --unset)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := groupPath(args[0], "members/"+url.PathEscape(args[1])+"/paid")
			return opts.call(cmd, http.MethodPut, path, map[string]bool{"paid": !unpaid})
		},
	}
	paidCmd.Flags().BoolVar(&unpaid, "unset", false, "Clear the paid flag")
	cmd.AddCommand(paidCmd)

	return cmd
}

func expenseCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Expense operations",
	}

	var (
		description  string
		payer        string
		participants []string
	)
	addCmd := &cobra.Command{
		Use:   "add GROUP AMOUNT",
		Short: "Record a shared expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			return opts.call(cmd, http.MethodPost, groupPath(args[0], "expenses"), map[string]any{
				"description":  description,
				"amount":       amount,
				"payer":        payer,
				"participants": participants,
			})
		},
	}
	addCmd.Flags().StringVarP(&description, "description", "d", "", "What the expense was for")
	addCmd.Flags().StringVarP(&payer, "payer", "p", "", "Member who paid")
	addCmd.Flags().StringSliceVar(&participants, "participants", nil, "Members sharing the expense (comma separated)")
	_ = addCmd.MarkFlagRequired("payer")
	_ = addCmd.MarkFlagRequired("participants")

	cmd.AddCommand(addCmd, &cobra.Command{
		Use:   "list GROUP",
		Short: "List expenses of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodGet, groupPath(args[0], "expenses"), nil)
		},
	})

	return cmd
}

func settlementCmds(opts *options) []*cobra.Command {
	views := []struct {
		name  string
		short string
	}{
		{"balances", "Show net balances"},
		{"leaderboard", "Rank members by balance"},
		{"payees", "List members who are owed money"},
		{"transfers", "Suggest transfers that settle the group"},
		{"consistency", "Check that balances sum to zero"},
	}

	cmds := make([]*cobra.Command, 0, len(views))
	for _, v := range views {
		cmds = append(cmds, &cobra.Command{
			Use:   v.name + " GROUP",
			Short: v.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return opts.call(cmd, http.MethodGet, groupPath(args[0], v.name), nil)
			},
		})
	}

	return cmds
}

func summaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary GROUP",
		Short: "Generate a written summary of a group's expenses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.do(cmd.Context(), http.MethodPost, groupPath(args[0], "summary"), nil)
			if err != nil {
				return err
			}

			var resp struct {
				Summary string `json:"summary"`
			}
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Summary)
			return nil
		},
	}
}

func payCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "pay GROUP PAYEE AMOUNT",
		Short: "Open a payment order towards a member who is owed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[2], err)
			}
			return opts.call(cmd, http.MethodPost, groupPath(args[0], "payments"), map[string]any{
				"payee":  args[1],
				"amount": amount,
			})
		},
	}
}

func exportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:       "export GROUP expenses|balances|report",
		Short:     "Download a group export",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"expenses", "balances", "report"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			switch args[1] {
			case "expenses":
				file = "expenses.csv"
			case "balances":
				file = "balances.csv"
			case "report":
				file = "report.xlsx"
			default:
				return fmt.Errorf("unknown export %q", args[1])
			}
			if output == "" {
				output = file
			}
			return opts.download(cmd, groupPath(args[0], "export/"+file), output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (- for stdout)")

	return cmd
}

func personalCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personal",
		Short: "Personal expense tracker",
	}

	var date string
	addCmd := &cobra.Command{
		Use:   "add ITEM AMOUNT",
		Short: "Log a personal expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			return opts.call(cmd, http.MethodPost, "/api/v1/personal/expenses", map[string]any{
				"date":   date,
				"item":   args[0],
				"amount": amount,
			})
		},
	}
	addCmd.Flags().StringVar(&date, "date", time.Now().Format(time.DateOnly), "Date of the expense (YYYY-MM-DD)")

	cmd.AddCommand(addCmd, &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "Show the expenses and total of a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd, http.MethodGet, monthPath(args[0], args[1]), nil)
		},
	})

	var output string
	exportMonthCmd := &cobra.Command{
		Use:   "export YEAR MONTH",
		Short: "Download a month as CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				output = fmt.Sprintf("expenses-%s-%s.csv", args[0], args[1])
			}
			return opts.download(cmd, monthPath(args[0], args[1])+"/export.csv", output)
		},
	}
	exportMonthCmd.Flags().StringVarP(&output, "output", "o", "", "Destination file (- for stdout)")
	cmd.AddCommand(exportMonthCmd)

	return cmd
}

func groupPath(group, suffix string) string {
	return "/api/v1/groups/" + url.PathEscape(group) + "/" + suffix
}

func monthPath(year, month string) string {
	return "/api/v1/personal/months/" + url.PathEscape(year) + "/" + url.PathEscape(month)
}

// call sends a request and pretty-prints the JSON response.
func (o *options) call(cmd *cobra.Command, method, path string, payload any) error {
	body, err := o.do(cmd.Context(), method, path, payload)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	}

	return printJSON(cmd.OutOrStdout(), body)
}

// download saves a response body to output, or writes it to stdout for "-".
func (o *options) download(cmd *cobra.Command, path, output string) error {
	body, err := o.do(cmd.Context(), http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = cmd.OutOrStdout().Write(body)
		return err
	}
	if err := os.WriteFile(output, body, 0o644); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(body), output)
	return nil
}

// do performs one API request and returns the body of a 2xx response.
func (o *options) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(o.baseURL, "/")+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

func apiError(status int, body []byte) error {
	var e struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err != nil || e.Error == "" {
		return fmt.Errorf("request failed (status %d): %s", status, truncate(string(body), 200))
	}
	if e.Message != "" {
		return fmt.Errorf("request failed (status %d): %s: %s", status, e.Error, e.Message)
	}
	return fmt.Errorf("request failed (status %d): %s", status, e.Error)
}

func printJSON(w io.Writer, body []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		_, err = w.Write(body)
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
