package configloader

import (
	"slices"

	"github.com/yaklabco/mdlive/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Classes and glyphs: merged field by field
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil pointers in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.DetectCodeLanguage != nil {
		detect := *override.DetectCodeLanguage
		result.DetectCodeLanguage = &detect
	}

	result.Classes = mergeClasses(result.Classes, override.Classes)

	if override.Glyphs.Bullets != nil {
		result.Glyphs.Bullets = slices.Clone(override.Glyphs.Bullets)
	}
	if override.Glyphs.Checked != "" {
		result.Glyphs.Checked = override.Glyphs.Checked
	}
	if override.Glyphs.Unchecked != "" {
		result.Glyphs.Unchecked = override.Glyphs.Unchecked
	}

	return result
}

// mergeClasses overlays the non-empty class names of override onto base.
func mergeClasses(base, override config.ClassesConfig) config.ClassesConfig {
	pick := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}

	pick(&base.Heading, override.Heading)
	pick(&base.Emphasis, override.Emphasis)
	pick(&base.Strong, override.Strong)
	pick(&base.InlineCode, override.InlineCode)
	pick(&base.Strikethrough, override.Strikethrough)
	pick(&base.ListMarker, override.ListMarker)
	pick(&base.Task, override.Task)
	pick(&base.TaskChecked, override.TaskChecked)
	pick(&base.CodeBlock, override.CodeBlock)
	pick(&base.Marker, override.Marker)
	pick(&base.Hidden, override.Hidden)

	return base
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
