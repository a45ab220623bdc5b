package site

import (
	"encoding/json"

	"git.home.luguber.info/inful/notesite/internal/normalization"
)

// BrokenLinkPolicy tells the generator what to do with a link it cannot resolve.
type BrokenLinkPolicy string

const (
	PolicyThrow  BrokenLinkPolicy = "throw"  // fail the build
	PolicyWarn   BrokenLinkPolicy = "warn"   // report and continue
	PolicyIgnore BrokenLinkPolicy = "ignore" // stay silent
)

var policyNormalizer = normalization.NewEnum("broken link policy", map[string]BrokenLinkPolicy{
	"throw":  PolicyThrow,
	"warn":   PolicyWarn,
	"ignore": PolicyIgnore,
}, PolicyThrow)

// ParseBrokenLinkPolicy parses raw case-insensitively.
func ParseBrokenLinkPolicy(raw string) (BrokenLinkPolicy, error) {
	return policyNormalizer.Parse(raw)
}

// Valid reports whether p is a known policy.
func (p BrokenLinkPolicy) Valid() bool { return policyNormalizer.Valid(p) }

func (p *BrokenLinkPolicy) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseBrokenLinkPolicy(raw)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Position is the navbar side an item renders on.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

var positionNormalizer = normalization.NewEnum("navbar position", map[string]Position{
	"left":  PositionLeft,
	"right": PositionRight,
}, PositionLeft)

// Valid reports whether p is left or right.
func (p Position) Valid() bool { return positionNormalizer.Valid(p) }

func (p *Position) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := positionNormalizer.Parse(raw)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// FooterStyle is the footer's color scheme.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

var footerStyleNormalizer = normalization.NewEnum("footer style", map[string]FooterStyle{
	"dark":  FooterDark,
	"light": FooterLight,
}, FooterLight)

// Valid reports whether s is dark or light.
func (s FooterStyle) Valid() bool { return footerStyleNormalizer.Valid(s) }

func (s *FooterStyle) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := footerStyleNormalizer.Parse(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// prismThemes lists the theme names shipped by the highlighter.
var prismThemes = map[string]bool{
	"dracula": true, "duotoneDark": true, "duotoneLight": true, "github": true,
	"gruvboxMaterialDark": true, "gruvboxMaterialLight": true, "jettwaveDark": true,
	"jettwaveLight": true, "nightOwl": true, "nightOwlLight": true, "oceanicNext": true,
	"okaidia": true, "oneDark": true, "oneLight": true, "palenight": true,
	"shadesOfPurple": true, "synthwave84": true, "ultramin": true, "vsDark": true, "vsLight": true,
}
