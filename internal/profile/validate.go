package profile

import (
	"fmt"
	"runtime"

	"record-mapper/internal/diagnostic"
	"record-mapper/internal/mapper"
	"record-mapper/internal/match"
)

var (
	styleNames  = []string{mapper.StyleStructural.String(), mapper.StyleTyped.String()}
	policyNames = []string{mapper.NaNPropagate.String(), mapper.NaNReject.String()}
)

// Validate checks a profile. source names the profile in diagnostics and may
// be empty.
func Validate(p *Profile, source string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if p == nil {
		res.AddError("profile_is_nil", "profile is nil", source, "")
		return res
	}

	if p.Version != CurrentVersion {
		res.AddError("unsupported_version",
			fmt.Sprintf("unsupported profile version %q, want %q", p.Version, CurrentVersion), source, "version")
	}

	if _, err := mapper.ParseStyle(p.Style); err != nil {
		res.AddError("unknown_style", err.Error()+match.Hint(p.Style, styleNames), source, "style")
	}

	if _, err := mapper.ParseNaNPolicy(p.NaN); err != nil {
		res.AddError("unknown_nan_policy", err.Error()+match.Hint(p.NaN, policyNames), source, "nan")
	}

	switch {
	case p.Workers < 0:
		res.AddError("negative_workers", fmt.Sprintf("workers must not be negative, got %d", p.Workers), source, "workers")
	case p.Workers > runtime.NumCPU():
		res.AddWarning("workers_exceed_cpus",
			fmt.Sprintf("%d workers on %d CPUs", p.Workers, runtime.NumCPU()), source, "workers")
	}

	validateFields(res, p, source)

	return res
}

// validateFields checks the accessor keys.
func validateFields(res *diagnostic.Diagnostics, p *Profile, source string) {
	named := []struct {
		key, value string
	}{
		{"fields.el1", p.Fields.El1},
		{"fields.el2", p.Fields.El2},
		{"fields.i", p.Fields.I},
	}

	seen := map[string]string{}

	for _, n := range named {
		if n.value == "" {
			res.AddError("empty_field_key", "field key is empty", source, n.key)
			continue
		}

		if prev, ok := seen[n.value]; ok {
			res.AddWarning("shared_field_key",
				fmt.Sprintf("key %q is also read by %s", n.value, prev), source, n.key)
			continue
		}

		seen[n.value] = n.key
	}
}

// Resolve validates p and converts it into Settings.
func Resolve(p *Profile, source string) (Settings, error) {
	if d := Validate(p, source); d.HasErrors() {
		return Settings{}, d.Error()
	}

	style, err := mapper.ParseStyle(p.Style)
	if err != nil {
		return Settings{}, err
	}

	policy, err := mapper.ParseNaNPolicy(p.NaN)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Style:   style,
		NaN:     policy,
		Workers: max(p.Workers, 1),
		Fields:  p.Fields,
	}, nil
}
