package main

import (
	"fmt"
	"io"

	"gemvault/internal/measure"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

type weightView struct {
	Amount string `json:"amount" yaml:"amount"`
	From   string `json:"from" yaml:"from"`
	Result string `json:"result" yaml:"result"`
	To     string `json:"to" yaml:"to"`
	Grams  string `json:"grams" yaml:"grams"`
	Class  string `json:"class" yaml:"class"`
}

func (v weightView) writeText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s %s = %s %s (%s)\n", v.Amount, v.From, v.Result, v.To, v.Class)
	return err
}

func newWeightCmd(a *app) *cobra.Command {
	weight := &cobra.Command{
		Use:   "weight",
		Short: "Convert jewelry weights",
	}

	var from, to string
	convert := &cobra.Command{
		Use:   "convert AMOUNT",
		Short: "Convert a weight between g, mg, kg, oz, ozt, ct and dwt",
		Long: `Convert a weight between units. Results are rounded half-up to four decimals.

Examples:
  gemvault weight convert 1 --from oz --to g
  gemvault weight convert 2.5 --from ct --to g
  gemvault weight convert 10 --from g --to dwt -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			_, end := a.span(cmd, "weight.convert",
				attribute.String("from", from),
				attribute.String("to", to),
			)
			defer func() { end(err) }()

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			fromUnit, err := measure.ParseUnit(from)
			if err != nil {
				return err
			}
			toUnit, err := measure.ParseUnit(to)
			if err != nil {
				return err
			}

			w, err := measure.WeightOf(amount, fromUnit)
			if err != nil {
				return err
			}
			result, err := w.In(toUnit)
			if err != nil {
				return err
			}
			class, _ := w.Classify()

			return a.render(cmd, weightView{
				Amount: amount.String(),
				From:   fromUnit.Code(),
				Result: result.StringFixed(measure.Mass.Scale()),
				To:     toUnit.Code(),
				Grams:  w.Grams().StringFixed(measure.Mass.Scale()),
				Class:  class,
			})
		},
	}
	convert.Flags().StringVar(&from, "from", "g", "source unit")
	convert.Flags().StringVar(&to, "to", "g", "target unit")

	weight.AddCommand(convert)
	return weight
}
