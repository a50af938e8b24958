package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/typ.v4/slices"
	"gopkg.in/yaml.v3"

	"github.com/jilleJr/fuzzytime/pkg/fuzzytime"
)

// Line formats understood by the normalizer.
const (
	FormatJSON   = "json"
	FormatLogFmt = "logfmt"
	FormatKlog   = "klog"
	FormatZap    = "zap"
	FormatPlain  = "plain"
)

// LineFormats lists every line format, in the order they are tried.
var LineFormats = []string{FormatJSON, FormatLogFmt, FormatKlog, FormatZap, FormatPlain}

// OffsetLocal selects the offset of the local zone at resolution time.
const OffsetLocal = "local"

type Config struct {
	// DateOrder is "month-first" or "day-first".
	DateOrder string `yaml:"dateOrder"`
	// Offset is applied to inputs without one: "local" or "±hh:mm".
	Offset      string       `yaml:"offset"`
	Descriptors []Descriptor `yaml:"descriptors"`
	Normalize   Normalize    `yaml:"normalize"`
}

// Descriptor is an extra layout added on top of the built-in catalog.
type Descriptor struct {
	ID       string `yaml:"id"`
	Family   string `yaml:"family"`
	Priority int    `yaml:"priority"`
	Pattern  string `yaml:"pattern"`
}

type Normalize struct {
	// Formats are the line formats to recognize.
	Formats []string `yaml:"formats"`
	// TimeKeys are the JSON and logfmt keys holding a timestamp, in order
	// of preference.
	TimeKeys []string `yaml:"timeKeys"`
	// MaxPrefixWords bounds how many leading words of a plain line are
	// tried as a timestamp.
	MaxPrefixWords int `yaml:"maxPrefixWords"`
}

func Default() Config {
	return Config{
		DateOrder: fuzzytime.DefaultDateOrder.String(),
		Offset:    OffsetLocal,
		Normalize: Normalize{
			Formats:        append([]string(nil), LineFormats...),
			TimeKeys:       []string{"time", "timestamp", "@timestamp", "ts", "t", "datetime", "date"},
			MaxPrefixWords: 6,
		},
	}
}

// Load reads a YAML config file over the defaults. Unknown keys are
// rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotenv loads environment variables from the given files, or from
// ".env" in the working directory if none are given. A missing default
// file is not an error.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		err := godotenv.Load()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(paths...)
}

func (c Config) Validate() error {
	if _, err := c.Order(); err != nil {
		return err
	}
	if _, err := c.LocalOffset(time.Now()); err != nil {
		return err
	}
	for _, format := range c.Normalize.Formats {
		if !slices.Contains(LineFormats, format) {
			return fmt.Errorf("unknown line format %q, want one of: %s", format, strings.Join(LineFormats, ", "))
		}
	}
	if c.Normalize.MaxPrefixWords < 0 {
		return fmt.Errorf("maxPrefixWords must not be negative")
	}
	_, err := c.ExtraDescriptors()
	return err
}

// Order parses DateOrder. Empty means the default order.
func (c Config) Order() (fuzzytime.DateOrder, error) {
	if c.DateOrder == "" {
		return fuzzytime.DefaultDateOrder, nil
	}
	return fuzzytime.ParseDateOrder(c.DateOrder)
}

// LocalOffset returns the offset in seconds to apply to inputs without
// one, as observed at now.
func (c Config) LocalOffset(now time.Time) (int, error) {
	if c.Offset == "" || strings.EqualFold(c.Offset, OffsetLocal) {
		_, offset := now.Zone()
		return offset, nil
	}
	return fuzzytime.ParseOffset(c.Offset)
}

// ExtraDescriptors compiles the configured descriptors.
func (c Config) ExtraDescriptors() ([]*fuzzytime.Descriptor, error) {
	var ids []string
	out := make([]*fuzzytime.Descriptor, 0, len(c.Descriptors))
	for i, d := range c.Descriptors {
		if d.ID == "" {
			return nil, fmt.Errorf("descriptors[%d]: missing id", i)
		}
		if slices.Contains(ids, d.ID) {
			return nil, fmt.Errorf("descriptors[%d]: duplicate id %q", i, d.ID)
		}
		ids = append(ids, d.ID)
		family, err := fuzzytime.ParseFamily(d.Family)
		if err != nil {
			return nil, fmt.Errorf("descriptors[%d]: %w", i, err)
		}
		desc, err := fuzzytime.NewDescriptor(d.ID, family, d.Priority, d.Pattern)
		if err != nil {
			return nil, fmt.Errorf("descriptors[%d]: %w", i, err)
		}
		out = append(out, desc)
	}
	return out, nil
}

// Catalog returns the built-in catalog for the configured date order,
// extended with the configured descriptors.
func (c Config) Catalog() (*fuzzytime.Catalog, error) {
	order, err := c.Order()
	if err != nil {
		return nil, err
	}
	catalog := fuzzytime.BuiltinCatalog(order)
	extra, err := c.ExtraDescriptors()
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return catalog, nil
	}
	return catalog.With(extra...)
}

// HasFormat reports whether the normalizer should recognize format.
func (n Normalize) HasFormat(format string) bool {
	return slices.Contains(n.Formats, format)
}
