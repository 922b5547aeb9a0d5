package model

import "regexp"

// RandomFont is the sentinel font value asking the backend to pick a font.
const RandomFont = "random"

// RandomFontLabel is the label of the RandomFont option.
const RandomFontLabel = "عشوائي (تلقائي)"

var fontExtension = regexp.MustCompile(`(?i)\.(ttf|otf)$`)

// FontOption is one entry of the font selector.
type FontOption struct {
	Value string
	Label string
}

// DefaultFontOptions returns the option set shown before the backend's font
// list is known.
func DefaultFontOptions() []FontOption {
	return []FontOption{{Value: RandomFont, Label: RandomFontLabel}}
}

// FontOptions builds the selector contents for a font list: the random
// sentinel followed by one option per font, labelled without its .ttf/.otf
// extension. It returns nil for an empty list so callers keep their current
// options.
func FontOptions(fonts []string) []FontOption {
	if len(fonts) == 0 {
		return nil
	}

	options := make([]FontOption, 0, len(fonts)+1)
	options = append(options, FontOption{Value: RandomFont, Label: RandomFontLabel})
	for _, font := range fonts {
		options = append(options, FontOption{
			Value: font,
			Label: fontExtension.ReplaceAllString(font, ""),
		})
	}
	return options
}
