package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type selectOptions struct {
	conditionFlags
	fields []string
	orders []string
	offset int
	dryRun bool
}

func newSelectCmd(root *rootOptions) *cobra.Command {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:     "select",
		Short:   "Print a SELECT statement and the rows it returns",
		Example: `  bozsql select --from posts --select ID,post_title --where "post_status = 'publish'" --order post_date:desc --limit 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelect(cmd, root, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringSliceVar(&opts.fields, "select", nil, "columns to select (default *)")
	cmd.Flags().StringArrayVar(&opts.orders, "order", nil, "ordering as col[:asc|desc], repeatable")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "rows to skip, needs --limit")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the statement without running it")
	return cmd
}

func runSelect(cmd *cobra.Command, root *rootOptions, opts *selectOptions) error {
	db, err := root.open()
	if err != nil {
		return err
	}
	defer db.Close()

	q := opts.apply(db.Builder()).Select(opts.fields...)
	for _, o := range opts.orders {
		q.OrderBy(parseOrder(o))
	}
	if opts.limit > 0 {
		q.Limit(opts.limit, opts.offset)
	}

	query, err := q.CompileSelect()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, query)
	if opts.dryRun {
		return nil
	}

	enc := json.NewEncoder(out)
	for row, err := range q.Each(cmd.Context()) {
		if err != nil {
			return err
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
