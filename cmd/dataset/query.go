package dataset

import (
	"strings"

	"github.com/caesium-cloud/slate/internal/dataset"
	"github.com/caesium-cloud/slate/internal/search"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func productionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "productions",
		Short: "List the job codes in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return opts.write(cmd, st.Productions())
		},
	}
}

func getCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "get [pointer]",
		Short:   "Print the value a JSON Pointer selects",
		Example: "slate dataset get /rows/0/rows/1/sequence\nslate dataset get --versions /3/status",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			v, err := st.Resolve(opts.table(), firstArg(args))
			if err != nil {
				return err
			}
			return opts.write(cmd, v)
		},
	}
}

func rowsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rows [pointer]",
		Short: "Print how many children the pointer's target has",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			n, err := st.RowCount(opts.table(), firstArg(args))
			if err != nil {
				return err
			}
			return opts.write(cmd, n)
		},
	}
}

func searchCmd(opts *options) *cobra.Command {
	var (
		level   string
		branch  string
		matches []string
		globs   []string
	)

	cmd := &cobra.Command{
		Use:     "search",
		Short:   "Find nodes at a level under ancestors matching the given fields",
		Example: "slate dataset search --level shot --match job=ABC123 --glob sequence='abc_1*'",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := dataset.ParseLevel(level)
			if err != nil {
				return err
			}

			var fields []search.Field
			for _, m := range matches {
				f, err := parseMatch(m, false)
				if err != nil {
					return err
				}
				fields = append(fields, f)
			}
			for _, g := range globs {
				f, err := parseMatch(g, true)
				if err != nil {
					return err
				}
				fields = append(fields, f)
			}

			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			nodes, err := st.Search(fields, lvl, branch)
			if err != nil {
				return err
			}
			return opts.write(cmd, nodes)
		},
	}

	cmd.Flags().StringVar(&level, "level", string(dataset.LevelShot), "level of the nodes to collect")
	cmd.Flags().StringVar(&branch, "branch", "", "pointer to the node to search under")
	cmd.Flags().StringArrayVar(&matches, "match", nil, "field=value to match (repeatable)")
	cmd.Flags().StringArrayVar(&globs, "glob", nil, "field=pattern to match with a glob (repeatable)")
	return cmd
}

func parseMatch(raw string, glob bool) (search.Field, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || name == "" {
		return search.Field{}, errors.Errorf("expected field=value, got %q", raw)
	}
	return search.Field{Name: name, Value: parseValue(value, glob), Glob: glob}, nil
}

func selectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "select pointer...",
		Short:   "List the versions belonging to the selected shot nodes",
		Example: "slate dataset select /rows/0/rows/0/rows/0 /rows/0/rows/0/rows/2",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			versions, err := st.SelectVersions(args)
			if err != nil {
				return err
			}
			return opts.write(cmd, versions)
		},
	}
}

func versionCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version uuid",
		Short: "Print the version with the given uuid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			v, err := st.FindVersion(args[0])
			if err != nil {
				return err
			}
			return opts.write(cmd, v)
		},
	}
}

func fingerprintCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint",
		Short: "Print the BLAKE3 fingerprint of the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			fp, err := st.Fingerprint()
			if err != nil {
				return err
			}
			return writeCmdOut(cmd, "%s\n", fp)
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
