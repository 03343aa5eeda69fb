package main

import (
	"fmt"

	service "github.com/okian/rentals/internal/app"
	"github.com/spf13/cobra"
)

func newStatementCmd(c *cli) *cobra.Command {
	var customer string
	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Print rental statements for the dataset's customers",
		Long: `Render the billing statement of every customer in the dataset, or of a
single customer with --customer. Without --data the built-in sample is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, err := c.service(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			var results []service.Result
			if customer != "" {
				cust, ok := svc.Customer(customer)
				if !ok {
					return fmt.Errorf("unknown customer %q", customer)
				}
				res, err := svc.Statement(ctx, cust)
				if err != nil {
					return err
				}
				results = append(results, res)
			} else {
				results, err = svc.Statements(ctx)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, res.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&c.dataPath, "data", "d", "", "YAML dataset file (default built-in sample)")
	cmd.Flags().StringVarP(&customer, "customer", "c", "", "render only this customer")
	return cmd
}

// service builds and starts a Service over the selected dataset and the
// configured pricing rules.
func (c *cli) service(cmd *cobra.Command) (*service.Service, error) {
	ctx := cmd.Context()

	ds, err := c.dataset(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := c.cfg.Rules()
	if err != nil {
		return nil, err
	}

	svc := service.New(
		service.WithDataset(ds),
		service.WithRules(rules),
		service.WithLogger(c.log),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("start service: %w", err)
	}
	return svc, nil
}
