package profile

import (
	"record-mapper/internal/mapper"
	"record-mapper/internal/record"
)

// CurrentVersion is the only profile schema version understood.
const CurrentVersion = "1"

// Profile represents the root of a YAML mapping profile.
type Profile struct {
	// Version of the profile schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Style selects the result record: "structural" or "typed".
	Style string `yaml:"style,omitempty"`

	// NaN selects the NaN policy: "propagate" or "reject".
	NaN string `yaml:"nan,omitempty"`

	// Workers is the number of mapping goroutines.
	Workers int `yaml:"workers,omitempty"`

	// Fields names the document keys read by the accessors.
	Fields record.Fields `yaml:"fields,omitempty"`
}

// Settings is a validated profile in the form the pipeline consumes.
type Settings struct {
	Style   mapper.Style
	NaN     mapper.NaNPolicy
	Workers int
	Fields  record.Fields
}

// Default returns a profile with every default applied.
func Default() *Profile {
	p := &Profile{}
	applyDefaults(p)

	return p
}

// DefaultSettings returns the settings of Default.
func DefaultSettings() Settings {
	return Settings{
		Style:   mapper.StyleStructural,
		NaN:     mapper.NaNPropagate,
		Workers: 1,
		Fields:  record.DefaultFields,
	}
}

// Options returns the mapper options for these settings.
func (s Settings) Options() mapper.Options {
	return mapper.Options{Workers: s.Workers, NaN: s.NaN}
}
