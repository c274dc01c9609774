package dataset

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/caesium-cloud/slate/internal/generator"
	"github.com/caesium-cloud/slate/internal/store"
	"github.com/caesium-cloud/slate/internal/timeline"
	"github.com/caesium-cloud/slate/pkg/env"
	"github.com/caesium-cloud/slate/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd is the parent command for in-process dataset operations.
var Cmd = NewCmd()

type options struct {
	fixture  string
	seed     int64
	versions bool
	output   string
}

// NewCmd builds the dataset command tree. Every invocation opens a fresh
// dataset, so writes last only for the life of the command unless saved.
func NewCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "dataset",
		Aliases: []string{"ds"},
		Short:   "Query and edit a production dataset in-process",
		Long: "Opens the dataset named by --fixture (or generated from --seed) and runs " +
			"one query or write against it.",
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.fixture, "fixture", "", "YAML dataset to load instead of generating one (default $SLATE_FIXTURE_PATH)")
	flags.Int64Var(&opts.seed, "seed", generator.DefaultSeed, "seed for the generated dataset (default $SLATE_SEED)")
	flags.BoolVar(&opts.versions, "versions", false, "address the versions table instead of the job tree")
	flags.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")

	cmd.AddCommand(
		productionsCmd(opts),
		getCmd(opts),
		rowsCmd(opts),
		searchCmd(opts),
		selectCmd(opts),
		versionCmd(opts),
		setCmd(opts),
		timelineCmd(opts),
		loadCmd(opts),
		fingerprintCmd(opts),
	)

	return cmd
}

func (o *options) table() store.Table {
	if o.versions {
		return store.TableVersions
	}
	return store.TableJobs
}

// open loads the dataset, letting explicit flags win over the environment.
func (o *options) open(cmd *cobra.Command) (*store.Store, error) {
	vars := env.Variables()
	if o.fixture != "" {
		vars.FixturePath = o.fixture
	}
	if cmd.Flags().Changed("seed") || vars.Seed == 0 {
		vars.Seed = o.seed
	}

	d, err := store.Open(vars)
	if err != nil {
		return nil, err
	}

	consumer := timeline.NewLogConsumer()
	if vars.TimelineURL != "" {
		consumer = timeline.NewHTTPConsumer(timeline.HTTPConsumerConfig{
			URL:     vars.TimelineURL,
			Timeout: vars.TimelineTimeout,
		})
	}
	return store.New(d, nil, store.WithConsumer(consumer)), nil
}

func (o *options) write(cmd *cobra.Command, v any) error {
	var (
		buf []byte
		err error
	)

	switch strings.ToLower(o.output) {
	case "json", "":
		buf, err = json.MarshalIndent(v, "", "  ")
	case "yaml", "yml":
		buf, err = yaml.Marshal(v)
	default:
		return errors.Errorf("unknown output format %q", o.output)
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}

	return writeCmdOut(cmd, "%s\n", strings.TrimRight(string(buf), "\n"))
}

func writeCmdOut(cmd *cobra.Command, format string, args ...any) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		log.Error("write output", "error", err)
		return err
	}
	return nil
}

// parseValue reads a command-line value the way YAML reads a scalar, so
// "3" is a number, "false" a boolean and anything else a string.
func parseValue(raw string, literal bool) any {
	if literal {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	switch v.(type) {
	case string, bool, int, float64:
		return v
	}
	return raw
}
