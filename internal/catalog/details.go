package catalog

import (
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"gemvault/internal/domainerr"
)

const (
	maxDescriptionLen = 5000
	maxCareLen        = 2000
)

// Description is the marketing copy of a product.
type Description struct {
	text string
}

func NewDescription(text string) (Description, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Description{}, domainerr.InvalidArgument("description is required")
	}
	if utf8.RuneCountInString(text) > maxDescriptionLen {
		return Description{}, domainerr.InvalidArgument("description exceeds %d characters", maxDescriptionLen)
	}
	return Description{text: text}, nil
}

func (d Description) String() string { return d.text }

func (d Description) IsZero() bool { return d.text == "" }

// CareInstructions tell the owner how to clean and store a piece.
type CareInstructions struct {
	text string
}

func NewCareInstructions(text string) (CareInstructions, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return CareInstructions{}, domainerr.InvalidArgument("care instructions are required")
	}
	if utf8.RuneCountInString(text) > maxCareLen {
		return CareInstructions{}, domainerr.InvalidArgument("care instructions exceed %d characters", maxCareLen)
	}
	return CareInstructions{text: text}, nil
}

func MustCareInstructions(text string) CareInstructions {
	c, err := NewCareInstructions(text)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CareInstructions) String() string { return c.text }

func (c CareInstructions) IsZero() bool { return c.text == "" }

// ImageURL is an absolute http or https image location.
type ImageURL struct {
	raw string
}

func NewImageURL(raw string) (ImageURL, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ImageURL{}, domainerr.InvalidArgument("image URL %q must be an absolute http(s) URL", raw)
	}
	return ImageURL{raw: u.String()}, nil
}

func (i ImageURL) String() string { return i.raw }

// Gallery is an ordered set of product images.
type Gallery struct {
	images []ImageURL
}

// Add appends an image; an image already present is not added twice.
func (g Gallery) Add(img ImageURL) Gallery {
	if slices.Contains(g.images, img) {
		return g
	}
	return Gallery{images: append(slices.Clone(g.images), img)}
}

func (g Gallery) Images() []ImageURL { return slices.Clone(g.images) }

func (g Gallery) Len() int { return len(g.images) }
