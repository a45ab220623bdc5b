package site

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"git.home.luguber.info/inful/notesite/internal/errors"
)

// LoadFile reads a site configuration from a JSON file. Comments and trailing
// commas are allowed. Unknown fields are rejected so typos surface early.
func LoadFile(path string) (*SiteConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read site config").
			WithContext("path", path).Fatal().Build()
	}
	return Decode(data)
}

// Decode parses JSON or JSONC bytes into a SiteConfig. Omitted footer link
// lists decode as empty, never nil, so they marshal as [].
func Decode(data []byte) (*SiteConfig, error) {
	var cfg SiteConfig
	if err := unmarshalStrict(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to decode site config").Fatal().Build()
	}
	footer := &cfg.ThemeConfig.Footer
	if footer.Links == nil {
		footer.Links = []FooterLinkGroup{}
	}
	for i := range footer.Links {
		if footer.Links[i].Items == nil {
			footer.Links[i].Items = []FooterLink{}
		}
	}
	return &cfg, nil
}

// unmarshalStrict decodes data into v, rejecting unknown fields. Custom
// UnmarshalJSON methods use it for their nested values too, since a
// decoder's settings do not reach them.
func unmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
