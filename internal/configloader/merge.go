package configloader

import (
	"slices"

	"github.com/yaklabco/textorize/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Nested structs: merged field by field
//   - Slices: override replaces base entirely if override is non-nil
//   - Booleans: only true in override is visible, a layer cannot unset them
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.MaxFileSize != 0 {
		result.MaxFileSize = override.MaxFileSize
	}
	if override.Output.Extension != "" {
		result.Output.Extension = override.Output.Extension
	}
	if override.Output.Dir != "" {
		result.Output.Dir = override.Output.Dir
	}
	if override.Watch.Debounce != 0 {
		result.Watch.Debounce = override.Watch.Debounce
	}
	if override.Report != "" {
		result.Report = override.Report
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.DryRun {
		result.DryRun = true
	}
	if override.Stdout {
		result.Stdout = true
	}

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
