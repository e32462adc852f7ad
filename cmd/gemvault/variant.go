package main

import (
	"fmt"
	"io"
	"strings"

	"gemvault/internal/catalog"
	"gemvault/internal/composition"
	"gemvault/internal/eventlog"
	"gemvault/internal/measure"
	"gemvault/internal/money"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type variantFlags struct {
	kind        string
	region      string
	size        string
	length      string
	weight      string
	price       string
	currency    string
	discount    string
	materials   []string
	styles      []string
	gems        []string
	care        string
	description string
	activate    bool
}

// variantInput is the parsed, category-independent part of a variant.
type variantInput struct {
	price     money.Money
	materials []composition.MaterialComposition
	gemstones []composition.Gemstone
	care      catalog.CareInstructions
	discount  *money.Percentage
}

type variantView struct {
	Product      string   `json:"product" yaml:"product"`
	SKU          string   `json:"sku" yaml:"sku"`
	Kind         string   `json:"kind" yaml:"kind"`
	Status       string   `json:"status" yaml:"status"`
	Dimension    string   `json:"dimension" yaml:"dimension"`
	Weight       string   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Styles       []string `json:"styles" yaml:"styles"`
	Materials    []string `json:"materials" yaml:"materials"`
	Gemstones    []string `json:"gemstones,omitempty" yaml:"gemstones,omitempty"`
	BasePrice    string   `json:"base_price" yaml:"base_price"`
	CurrentPrice string   `json:"current_price" yaml:"current_price"`
	Events       []string `json:"events" yaml:"events"`
}

func newVariantView(p catalog.Product, v catalog.Variant, history []eventlog.Event) variantView {
	view := variantView{
		Product:      p.Description().String(),
		SKU:          v.SKU(),
		Kind:         v.Kind().String(),
		Status:       v.Status().String(),
		Dimension:    v.Dimension(),
		Styles:       v.Style().Tags(),
		BasePrice:    v.BasePrice().String(),
		CurrentPrice: v.CurrentPrice().String(),
	}
	if w, ok := v.Weight(); ok {
		view.Weight = w.String()
	}
	for _, m := range v.Materials() {
		view.Materials = append(view.Materials, m.String())
	}
	for _, g := range v.Gemstones() {
		view.Gemstones = append(view.Gemstones, g.String())
	}
	for _, e := range history {
		view.Events = append(view.Events, fmt.Sprintf("%d %s", e.Version, e.EventType))
	}
	return view
}

func (v variantView) writeText(w io.Writer) error {
	lines := []string{
		fmt.Sprintf("%s  %s (%s)", v.SKU, v.Product, v.Status),
		"  size:      " + v.Dimension,
	}
	if v.Weight != "" {
		lines = append(lines, "  weight:    "+v.Weight)
	}
	if len(v.Styles) > 0 {
		lines = append(lines, "  styles:    "+strings.Join(v.Styles, ", "))
	}
	lines = append(lines, "  materials: "+strings.Join(v.Materials, ", "))
	if len(v.Gemstones) > 0 {
		lines = append(lines, "  gemstones: "+strings.Join(v.Gemstones, ", "))
	}
	price := v.CurrentPrice
	if v.CurrentPrice != v.BasePrice {
		price += " (was " + v.BasePrice + ")"
	}
	lines = append(lines, "  price:     "+price)
	for _, e := range v.Events {
		lines = append(lines, "  event:     "+e)
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

func newVariantCmd(a *app) *cobra.Command {
	variant := &cobra.Command{
		Use:   "variant",
		Short: "Work with catalog variants",
	}

	var f variantFlags
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Build a variant through the catalog and show the result",
		Long: `Build a product with one variant through the in-memory catalog and print
the variant together with the events the catalog recorded.

Materials are NAME:ROLE, gemstones are TYPE[:GRADE[:CARATS]].

Examples:
  gemvault variant preview --kind ring --size 7 --price 1200 \
    --material gold:band --material platinum:prongs --gem diamond:VVS1:1.5 \
    --style solitaire --discount 15 --activate

  gemvault variant preview --kind necklace --length 18 --price 340 \
    --material silver:chain --style pendant -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx, end := a.span(cmd, "variant.preview")
			defer func() { end(err) }()

			kind, err := parseKind(f.kind)
			if err != nil {
				return err
			}
			in, err := a.parseVariantInput(f)
			if err != nil {
				return err
			}
			drafted, finish, err := a.draftVariant(kind, f, in)
			if err != nil {
				return err
			}

			desc, err := catalog.NewDescription(f.description)
			if err != nil {
				return err
			}
			svc, err := catalog.NewService(eventlog.NewStore(), catalog.WithLogger(a.logger))
			if err != nil {
				return err
			}
			product, err := svc.CreateProduct(ctx, desc)
			if err != nil {
				return err
			}
			if _, err = svc.AddVariant(ctx, product.ID(), drafted); err != nil {
				return err
			}
			if _, err = svc.UpdateVariant(ctx, product.ID(), drafted.ID(), finish); err != nil {
				return err
			}
			if f.activate {
				if _, err = svc.ChangeStatus(ctx, product.ID(), drafted.ID(), catalog.StatusActive); err != nil {
					return err
				}
			}

			product, err = svc.GetProduct(ctx, product.ID())
			if err != nil {
				return err
			}
			stored, err := svc.FindVariant(ctx, product.ID(), drafted.ID())
			if err != nil {
				return err
			}
			history, err := svc.History(ctx, product.ID())
			if err != nil {
				return err
			}
			return a.render(cmd, newVariantView(product, stored, history))
		},
	}

	fl := preview.Flags()
	fl.StringVarP(&f.kind, "kind", "k", "ring", "ring, necklace, anklet, earring or hair_accessory")
	fl.StringVarP(&f.region, "region", "r", "", "ring size chart (default GEMVAULT_DEFAULT_REGION)")
	fl.StringVarP(&f.size, "size", "s", "", "ring size label in --region")
	fl.StringVar(&f.length, "length", "", "length: inches for necklaces and anklets, mm for earrings and hair accessories")
	fl.StringVar(&f.weight, "weight", "", "weight in grams (rings, necklaces and anklets)")
	fl.StringVar(&f.price, "price", "", "base price")
	fl.StringVar(&f.currency, "currency", "", "ISO 4217 currency (default GEMVAULT_DEFAULT_CURRENCY)")
	fl.StringVar(&f.discount, "discount", "", "discount in percent, e.g. 15")
	fl.StringArrayVarP(&f.materials, "material", "m", nil, "material as NAME:ROLE (repeatable)")
	fl.StringSliceVar(&f.styles, "style", nil, "style tags")
	fl.StringArrayVar(&f.gems, "gem", nil, "gemstone as TYPE[:GRADE[:CARATS]] (repeatable)")
	fl.StringVar(&f.care, "care", "Clean with a soft dry cloth and store separately.", "care instructions")
	fl.StringVar(&f.description, "description", "Preview product", "product description")
	fl.BoolVar(&f.activate, "activate", false, "activate the variant")
	_ = preview.MarkFlagRequired("price")
	_ = preview.MarkFlagRequired("material")

	variant.AddCommand(preview)
	return variant
}

func (a *app) parseVariantInput(f variantFlags) (variantInput, error) {
	var in variantInput

	code := f.currency
	if code == "" {
		code = a.cfg.DefaultCurrency
	}
	price, err := money.Parse(f.price, code)
	if err != nil {
		return in, err
	}
	in.price = price

	for _, raw := range f.materials {
		m, err := parseMaterial(raw)
		if err != nil {
			return in, err
		}
		in.materials = append(in.materials, m)
	}
	for _, raw := range f.gems {
		g, err := parseGemstone(raw)
		if err != nil {
			return in, err
		}
		in.gemstones = append(in.gemstones, g)
	}

	if in.care, err = catalog.NewCareInstructions(f.care); err != nil {
		return in, err
	}
	if f.discount != "" {
		d, err := decimal.NewFromString(f.discount)
		if err != nil {
			return in, fmt.Errorf("invalid discount %q: %w", f.discount, err)
		}
		pct, err := money.PercentOf(d)
		if err != nil {
			return in, err
		}
		in.discount = &pct
	}
	return in, nil
}

func parseMaterial(raw string) (composition.MaterialComposition, error) {
	name, role, ok := strings.Cut(raw, ":")
	if !ok {
		return composition.MaterialComposition{}, fmt.Errorf("material %q: want NAME:ROLE", raw)
	}
	n, err := composition.ParseMaterialName(name)
	if err != nil {
		return composition.MaterialComposition{}, err
	}
	m, err := composition.NewMaterial(n, "")
	if err != nil {
		return composition.MaterialComposition{}, err
	}
	return composition.NewMaterialComposition(m, role)
}

func parseGemstone(raw string) (composition.Gemstone, error) {
	parts := strings.SplitN(raw, ":", 3)
	kind, err := composition.ParseGemstoneType(parts[0])
	if err != nil {
		return composition.Gemstone{}, err
	}
	var grade string
	if len(parts) > 1 {
		grade = parts[1]
	}
	var carat decimal.NullDecimal
	if len(parts) > 2 {
		c, err := decimal.NewFromString(parts[2])
		if err != nil {
			return composition.Gemstone{}, fmt.Errorf("gemstone %q: invalid carats: %w", raw, err)
		}
		carat = decimal.NewNullDecimal(c)
	}
	return composition.NewGemstone(kind, grade, carat, false, false)
}

func (a *app) draftVariant(kind catalog.Kind, f variantFlags, in variantInput) (catalog.Variant, catalog.VariantMutation, error) {
	styles, err := catalog.NewStyleSet(kind, f.styles...)
	if err != nil {
		return nil, nil, err
	}
	mass, err := optionalGrams(f.weight)
	if err != nil {
		return nil, nil, err
	}
	length, err := optionalDecimal("length", f.length, kind != catalog.KindRing)
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case catalog.KindRing:
		region, err := a.region(f.region)
		if err != nil {
			return nil, nil, err
		}
		size, err := measure.RingSizeFromRegional(region, f.size)
		if err != nil {
			return nil, nil, err
		}
		return draft(catalog.RingSpec{Size: size, Styles: styles, Mass: mass}, in)
	case catalog.KindNecklace:
		n, err := measure.NecklaceLengthFromInches(length)
		if err != nil {
			return nil, nil, err
		}
		return draft(catalog.NecklaceSpec{Length: n, Styles: styles, Mass: mass}, in)
	case catalog.KindAnklet:
		n, err := measure.AnkletLengthFromInches(length)
		if err != nil {
			return nil, nil, err
		}
		return draft(catalog.AnkletSpec{Length: n, Styles: styles, Mass: mass}, in)
	case catalog.KindEarring:
		e, err := measure.EarringSizeFromMillimeters(length, "")
		if err != nil {
			return nil, nil, err
		}
		return draft(catalog.EarringSpec{Size: e, Styles: styles}, in)
	default:
		h, err := measure.NewHairAccessorySize(length, decimal.NullDecimal{}, "")
		if err != nil {
			return nil, nil, err
		}
		return draft(catalog.HairAccessorySpec{Size: h, Styles: styles}, in)
	}
}

// draft creates the variant and the mutation that adds its gemstones and discount.
func draft[S catalog.Spec[S]](spec S, in variantInput) (catalog.Variant, catalog.VariantMutation, error) {
	v, err := catalog.Create(catalog.UUIDGenerator{}, spec, in.price, in.materials, in.care)
	if err != nil {
		return nil, nil, err
	}
	finish := catalog.Mutate(func(v catalog.VariantOf[S]) (catalog.VariantOf[S], error) {
		for _, g := range in.gemstones {
			next, err := v.AddGemstone(g)
			if err != nil {
				return v, err
			}
			v = next
		}
		if in.discount != nil {
			return v.ApplyDiscount(*in.discount)
		}
		return v, nil
	})
	return v, finish, nil
}

func optionalGrams(raw string) (measure.Weight, error) {
	if raw == "" {
		return measure.Weight{}, nil
	}
	g, err := decimal.NewFromString(raw)
	if err != nil {
		return measure.Weight{}, fmt.Errorf("invalid weight %q: %w", raw, err)
	}
	return measure.WeightFromGrams(g)
}

func optionalDecimal(name, raw string, required bool) (decimal.Decimal, error) {
	if raw == "" {
		if required {
			return decimal.Decimal{}, fmt.Errorf("--%s is required for this kind", name)
		}
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return d, nil
}
