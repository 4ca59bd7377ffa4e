package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/tmplpatch/internal/logging"
	"github.com/yaklabco/tmplpatch/pkg/config"
)

type dataFlags struct {
	lookup string
	seed   uint64
	format string
}

func newDataCommand() *cobra.Command {
	flags := &dataFlags{}

	cmd := &cobra.Command{
		Use:   "data FILE",
		Short: "Print the sample data generated for a template",
		Long: `Generate a sample value for every placeholder in a template and print
the result. Dotted paths such as ${user.address.city} become nested maps.

The table lookup picks fixed values by field name (quantity, price, date,
name, ...). The faker lookup generates realistic values that depend only
on the seed and the field name.

Examples:
  tmplpatch data mail.ftl
  tmplpatch data --lookup faker --seed 42 mail.ftl
  tmplpatch data --format json mail.ftl`,
		Args: exactlyOneFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runData(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.lookup, "lookup", "", "sample values: table or faker")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "seed for the faker lookup")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: json, yaml")

	return cmd
}

// sampleOverrides returns the CLI config layer for --lookup and --seed.
func sampleOverrides(cmd *cobra.Command, lookup string, seed uint64) (*config.Config, error) {
	cfg := &config.Config{}
	if cmd.Flags().Changed("lookup") {
		cfg.Sample.Lookup = config.SampleLookup(lookup)
		if !cfg.Sample.Lookup.IsValid() {
			return nil, fmt.Errorf("%w: invalid lookup %q; must be table or faker", ErrUsage, lookup)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.Sample.Seed = config.Ptr(seed)
	}
	return cfg, nil
}

func runData(cmd *cobra.Command, path string, flags *dataFlags) error {
	format, err := parseFormat(flags.format)
	if err != nil {
		return err
	}
	if !format.IsStructured() {
		return fmt.Errorf("%w: data prints json or yaml, not %q", ErrUsage, format)
	}

	overrides, err := sampleOverrides(cmd, flags.lookup, flags.seed)
	if err != nil {
		return err
	}

	sess, err := newSession(cmd, overrides)
	if err != nil {
		return err
	}

	source, _, err := sess.readInput(path)
	if err != nil {
		return err
	}

	data := sess.resolver().GenerateDummyData(source, sess.lookup())
	sess.logger.Debug("generated sample data",
		logging.FieldLookup, sess.cfg.Sample.Lookup,
		logging.FieldNames, len(data),
	)

	return printStructured(sess.out(), format, data)
}
