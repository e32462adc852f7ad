package main

import (
	"fmt"
	"io"

	"gemvault/internal/measure"
	"gemvault/internal/sizing"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

type ringEntryView struct {
	Region          string `json:"region" yaml:"region"`
	Label           string `json:"label" yaml:"label"`
	DiameterMM      string `json:"diameter_mm" yaml:"diameter_mm"`
	CircumferenceMM string `json:"circumference_mm" yaml:"circumference_mm"`
}

func entryView(e sizing.Entry) ringEntryView {
	return ringEntryView{
		Region:          string(e.Region),
		Label:           e.Label,
		DiameterMM:      e.DiameterMM.StringFixed(2),
		CircumferenceMM: e.CircumferenceMM().StringFixed(2),
	}
}

type ringSizeView struct {
	DiameterMM      string          `json:"diameter_mm" yaml:"diameter_mm"`
	CircumferenceMM string          `json:"circumference_mm" yaml:"circumference_mm"`
	USSize          string          `json:"us_size" yaml:"us_size"`
	USLabel         string          `json:"us_label,omitempty" yaml:"us_label,omitempty"`
	Class           string          `json:"class" yaml:"class"`
	Source          *ringEntryView  `json:"source,omitempty" yaml:"source,omitempty"`
	Matches         []ringEntryView `json:"matches" yaml:"matches"`
}

func newRingSizeView(size measure.RingSize, source *sizing.Entry, targets []sizing.Region) ringSizeView {
	class, _ := size.Classify()
	v := ringSizeView{
		DiameterMM:      size.DiameterMM().StringFixed(2),
		CircumferenceMM: size.CircumferenceMM().StringFixed(2),
		USSize:          size.USSize().String(),
		Class:           class,
	}
	if label, ok := size.USDisplay(); ok {
		v.USLabel = label
	}
	if source != nil {
		src := entryView(*source)
		v.Source = &src
	}
	for _, region := range targets {
		if e, ok := size.Nearest(region); ok {
			v.Matches = append(v.Matches, entryView(e))
		}
	}
	return v
}

func (v ringSizeView) writeText(w io.Writer) error {
	if v.Source != nil {
		if _, err := fmt.Fprintf(w, "%s %s\n", v.Source.Region, v.Source.Label); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "diameter %s mm, circumference %s mm, US %s (%s)\n",
		v.DiameterMM, v.CircumferenceMM, v.USSize, v.Class); err != nil {
		return err
	}
	for _, m := range v.Matches {
		if _, err := fmt.Fprintf(w, "  %-5s %-8s %s mm\n", m.Region, m.Label, m.DiameterMM); err != nil {
			return err
		}
	}
	return nil
}

func newRingCmd(a *app) *cobra.Command {
	ring := &cobra.Command{
		Use:   "ring",
		Short: "Convert and match ring sizes",
	}
	ring.AddCommand(newRingConvertCmd(a), newRingNearestCmd(a))
	return ring
}

func newRingConvertCmd(a *app) *cobra.Command {
	var (
		from string
		size string
		to   []string
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a labelled ring size to other regional charts",
		Long: `Convert a labelled ring size to the nearest size of other regional charts.

Examples:
  # US 7 in the EU chart
  gemvault ring convert --region us --size 7 --to eu

  # UK N 1/2 in every other chart
  gemvault ring convert --region uk --size "N 1/2"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			region, err := a.region(from)
			if err != nil {
				return err
			}
			targets, err := targetRegions(region, to)
			if err != nil {
				return err
			}

			_, end := a.span(cmd, "ring.convert",
				attribute.String("region", string(region)),
				attribute.String("size", size),
			)
			defer func() { end(err) }()

			entry, ok := sizing.Lookup(region, size)
			if !ok {
				return fmt.Errorf("no %s ring size labelled %q", region, size)
			}
			rs, err := measure.RingSizeFromDiameter(entry.DiameterMM)
			if err != nil {
				return err
			}
			a.logger.Debug("ring size resolved", "region", region, "label", entry.Label, "diameter_mm", entry.DiameterMM)
			return a.render(cmd, newRingSizeView(rs, &entry, targets))
		},
	}
	cmd.Flags().StringVarP(&from, "region", "r", "", "source chart (default GEMVAULT_DEFAULT_REGION)")
	cmd.Flags().StringVarP(&size, "size", "s", "", "size label in the source chart, e.g. 7, \"7 1/2\", \"N 1/2\"")
	cmd.Flags().StringSliceVar(&to, "to", nil, "target charts (default all others)")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newRingNearestCmd(a *app) *cobra.Command {
	var (
		in            []string
		diameter      string
		circumference string
		us            string
	)
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "Find the closest labelled sizes for a measured ring",
		Long: `Find the closest labelled size in each chart for a measured ring.
Exactly one of --diameter, --circumference or --us is required.

Examples:
  gemvault ring nearest --diameter 17.3 --region uk
  gemvault ring nearest --circumference 54.4
  gemvault ring nearest --us 7.25 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			_, end := a.span(cmd, "ring.nearest")
			defer func() { end(err) }()

			rs, err := measuredRing(diameter, circumference, us)
			if err != nil {
				return err
			}
			targets := sizing.Regions()
			if len(in) > 0 {
				targets = targets[:0]
				for _, raw := range in {
					region, err := sizing.ParseRegion(raw)
					if err != nil {
						return err
					}
					targets = append(targets, region)
				}
			}
			return a.render(cmd, newRingSizeView(rs, nil, targets))
		},
	}
	cmd.Flags().StringSliceVarP(&in, "region", "r", nil, "charts to match (default all)")
	cmd.Flags().StringVar(&diameter, "diameter", "", "inner diameter in mm")
	cmd.Flags().StringVar(&circumference, "circumference", "", "inner circumference in mm")
	cmd.Flags().StringVar(&us, "us", "", "numeric US size, e.g. 7.25")
	cmd.MarkFlagsMutuallyExclusive("diameter", "circumference", "us")
	cmd.MarkFlagsOneRequired("diameter", "circumference", "us")
	return cmd
}

func measuredRing(diameter, circumference, us string) (measure.RingSize, error) {
	switch {
	case diameter != "":
		d, err := decimal.NewFromString(diameter)
		if err != nil {
			return measure.RingSize{}, fmt.Errorf("invalid diameter %q: %w", diameter, err)
		}
		return measure.RingSizeFromDiameter(d)
	case circumference != "":
		c, err := decimal.NewFromString(circumference)
		if err != nil {
			return measure.RingSize{}, fmt.Errorf("invalid circumference %q: %w", circumference, err)
		}
		return measure.RingSizeFromCircumference(c)
	default:
		s, err := decimal.NewFromString(us)
		if err != nil {
			return measure.RingSize{}, fmt.Errorf("invalid US size %q: %w", us, err)
		}
		return measure.RingSizeFromUS(s)
	}
}

// region parses raw, falling back to the configured default.
func (a *app) region(raw string) (sizing.Region, error) {
	if raw == "" {
		return a.cfg.Region()
	}
	return sizing.ParseRegion(raw)
}

func targetRegions(source sizing.Region, raw []string) ([]sizing.Region, error) {
	if len(raw) == 0 {
		var out []sizing.Region
		for _, r := range sizing.Regions() {
			if r != source {
				out = append(out, r)
			}
		}
		return out, nil
	}
	out := make([]sizing.Region, 0, len(raw))
	for _, s := range raw {
		r, err := sizing.ParseRegion(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
