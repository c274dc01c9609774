package dataset

import (
	"os"

	"github.com/caesium-cloud/slate/internal/store"
	"github.com/caesium-cloud/slate/internal/timeline"
	"github.com/caesium-cloud/slate/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type setResult struct {
	Changed bool `json:"changed" yaml:"changed"`
	Version any  `json:"version" yaml:"version"`
}

func setCmd(opts *options) *cobra.Command {
	var (
		literal bool
		save    string
	)

	cmd := &cobra.Command{
		Use:     "set uuid field value",
		Short:   "Write one field of a version",
		Example: "slate dataset set 1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed status approved --save edited.yaml",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}

			changed, err := st.SetField(args[0], args[1], parseValue(args[2], literal))
			if err != nil {
				return err
			}

			v, err := st.FindVersion(args[0])
			if err != nil {
				return err
			}

			if save != "" {
				if err := saveFixture(st, save); err != nil {
					return err
				}
				log.Info("saved dataset", "path", save)
			}

			return opts.write(cmd, setResult{Changed: changed, Version: v})
		},
	}

	cmd.Flags().BoolVar(&literal, "string", false, "treat the value as a string even if it looks like a number or boolean")
	cmd.Flags().StringVar(&save, "save", "", "write the edited dataset to this YAML file")
	return cmd
}

func saveFixture(st *store.Store, path string) error {
	buf, err := yaml.Marshal(st.Snapshot())
	if err != nil {
		return errors.Wrap(err, "failed to encode dataset")
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func timelineCmd(opts *options) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:     "timeline pointer...",
		Short:   "Lay the selected shots out as an OTIO timeline",
		Example: "slate dataset timeline /rows/0/rows/0/rows/0 /rows/0/rows/0/rows/1",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			tl, err := st.BuildTimeline(name, args)
			if err != nil {
				return err
			}
			doc, err := tl.Encode()
			if err != nil {
				return err
			}
			return writeCmdOut(cmd, "%s\n", doc)
		},
	}

	cmd.Flags().StringVar(&name, "name", timeline.DefaultName, "timeline name")
	return cmd
}

func loadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "load uuid...",
		Short: "Build and hand off the sequence timeline of each version",
		Long: "Builds the timeline of every shot under each version's sequence and hands it " +
			"to $SLATE_TIMELINE_URL, or logs it when no consumer is configured.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.open(cmd)
			if err != nil {
				return err
			}
			loaded, err := st.LoadSequences(cmd.Context(), args)
			if err != nil {
				return err
			}
			return opts.write(cmd, loaded)
		},
	}
}
