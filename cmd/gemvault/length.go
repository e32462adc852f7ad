package main

import (
	"fmt"
	"io"
	"strings"

	"gemvault/internal/catalog"
	"gemvault/internal/measure"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

type lengthView struct {
	Kind      string `json:"kind" yaml:"kind"`
	Value     string `json:"value" yaml:"value"`
	Canonical string `json:"canonical" yaml:"canonical"`
	Class     string `json:"class" yaml:"class"`
}

func (v lengthView) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s (%s): %s\n", v.Kind, v.Value, v.Canonical, v.Class)
	return err
}

// classifier measures a value and reports its canonical form and class.
type classifier func(v decimal.Decimal, u measure.Unit) (canonical, class string, err error)

var classifiers = map[catalog.Kind]classifier{
	catalog.KindNecklace: func(v decimal.Decimal, u measure.Unit) (string, string, error) {
		n, err := measure.NecklaceLengthOf(v, u)
		if err != nil {
			return "", "", err
		}
		class, _ := n.Classify()
		return n.Inches().StringFixed(2) + " in", class, nil
	},
	catalog.KindAnklet: func(v decimal.Decimal, u measure.Unit) (string, string, error) {
		n, err := measure.AnkletLengthOf(v, u)
		if err != nil {
			return "", "", err
		}
		class, _ := n.Classify()
		return n.Inches().StringFixed(2) + " in", class, nil
	},
	catalog.KindEarring: func(v decimal.Decimal, u measure.Unit) (string, string, error) {
		e, err := measure.EarringSizeOf(v, u, "")
		if err != nil {
			return "", "", err
		}
		class, _ := e.Classify()
		return e.Millimeters().StringFixed(2) + " mm", class, nil
	},
	catalog.KindRing: func(v decimal.Decimal, u measure.Unit) (string, string, error) {
		r, err := measure.RingSizeOf(v, u)
		if err != nil {
			return "", "", err
		}
		class, _ := r.Classify()
		return r.DiameterMM().StringFixed(2) + " mm", class, nil
	},
	catalog.KindHairAccessory: func(v decimal.Decimal, u measure.Unit) (string, string, error) {
		mm, err := measure.Diameter.ToCanonical(v, u)
		if err != nil {
			return "", "", err
		}
		h, err := measure.NewHairAccessorySize(mm, decimal.NullDecimal{}, "")
		if err != nil {
			return "", "", err
		}
		class, _ := h.Classify()
		return h.LengthMM().StringFixed(2) + " mm", class, nil
	},
}

func parseKind(raw string) (catalog.Kind, error) {
	k := catalog.Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "-", "_"))
	if k == "hair" {
		k = catalog.KindHairAccessory
	}
	if _, ok := classifiers[k]; !ok {
		return "", fmt.Errorf("unknown kind %q: want necklace, anklet, earring, ring or hair_accessory", raw)
	}
	return k, nil
}

func newLengthCmd(a *app) *cobra.Command {
	length := &cobra.Command{
		Use:   "length",
		Short: "Classify lengths and sizes",
	}

	var kind, unit string
	classify := &cobra.Command{
		Use:   "classify VALUE",
		Short: "Name the length class of a measurement",
		Long: `Name the length class of a necklace, anklet, earring, ring or hair accessory.

Examples:
  gemvault length classify 18 --kind necklace --unit in
  gemvault length classify 45 --kind necklace --unit cm
  gemvault length classify 30 --kind earring --unit mm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, end := a.span(cmd, "length.classify",
				attribute.String("kind", kind),
				attribute.String("unit", unit),
			)
			defer func() { end(err) }()

			k, err := parseKind(kind)
			if err != nil {
				return err
			}
			v, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			u, err := measure.ParseUnit(unit)
			if err != nil {
				return err
			}

			canonical, class, err := classifiers[k](v, u)
			if err != nil {
				return err
			}
			return a.render(cmd, lengthView{
				Kind:      k.String(),
				Value:     v.String() + " " + u.Code(),
				Canonical: canonical,
				Class:     class,
			})
		},
	}
	classify.Flags().StringVarP(&kind, "kind", "k", "necklace", "necklace, anklet, earring, ring or hair_accessory")
	classify.Flags().StringVarP(&unit, "unit", "u", "in", "unit of VALUE: in, cm or mm")

	length.AddCommand(classify)
	return length
}
