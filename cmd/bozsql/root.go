package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/boz"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "bozsql",
		Short:         "Build and run SQL statements from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default ./config.yaml)")

	cmd.AddCommand(newSelectCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	return cmd
}

func (o *rootOptions) open() (*boz.DB, error) {
	cfg, err := boz.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	return boz.OpenConfig(cfg)
}

// conditionFlags are the filters shared by select and delete.
type conditionFlags struct {
	from  []string
	where []string
	limit int
}

func (f *conditionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.from, "from", nil, "table to read from, repeatable")
	cmd.Flags().StringArrayVar(&f.where, "where", nil, "raw condition, repeatable; conditions are joined with AND")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum number of rows")
	_ = cmd.MarkFlagRequired("from")
}

func (f *conditionFlags) apply(q *boz.Query) *boz.Query {
	q.From(f.from...)
	for _, w := range f.where {
		q.Where(w)
	}
	return q
}

// parseOrder splits "col[:dir]".
func parseOrder(s string) (string, string) {
	col, dir, _ := strings.Cut(s, ":")
	return col, dir
}
