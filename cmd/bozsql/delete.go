package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type deleteOptions struct {
	conditionFlags
	dryRun bool
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	opts := &deleteOptions{}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete rows matching the given conditions",
		Long: `Delete rows matching the given conditions.

A DELETE without --where, or over more than one table, is refused.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDelete(cmd, root, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the statement without running it")
	return cmd
}

func runDelete(cmd *cobra.Command, root *rootOptions, opts *deleteOptions) error {
	db, err := root.open()
	if err != nil {
		return err
	}
	defer db.Close()

	q := opts.apply(db.Builder())
	if opts.limit > 0 {
		q.Limit(opts.limit)
	}

	out := cmd.OutOrStdout()
	if opts.dryRun {
		query, err := q.CompileDelete()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, query)
		return nil
	}

	res, err := q.Delete(cmd.Context())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d rows deleted\n", n)
	return nil
}
