package form

import (
	"maps"
	"slices"

	"github.com/handiism/quran-reels/internal/catalog"
	"github.com/handiism/quran-reels/internal/model"
)

// defaultEndAyah is the end ayah chosen after a surah change, clamped to the
// surah's verse count.
const defaultEndAyah = 5

// Choice is a selectable value with its display label.
type Choice struct {
	Value string
	Label string
}

// Select is a single-choice field.
type Select struct {
	options  []Choice
	selected int
}

// NewSelect creates a select over options with the first one selected.
func NewSelect(options []Choice) *Select {
	return &Select{options: options}
}

// Options returns the current options.
func (s *Select) Options() []Choice { return s.options }

// Index returns the selected position.
func (s *Select) Index() int { return s.selected }

// Value returns the selected value, or "" when there are no options.
func (s *Select) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.selected].Value
}

// Label returns the selected label, or "".
func (s *Select) Label() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.selected].Label
}

// Next moves the selection forward, wrapping around.
func (s *Select) Next() {
	if len(s.options) > 0 {
		s.selected = (s.selected + 1) % len(s.options)
	}
}

// Prev moves the selection backward, wrapping around.
func (s *Select) Prev() {
	if len(s.options) > 0 {
		s.selected = (s.selected - 1 + len(s.options)) % len(s.options)
	}
}

// SelectValue selects the option with the given value. It reports whether
// the value was found.
func (s *Select) SelectValue(value string) bool {
	for i, opt := range s.options {
		if opt.Value == value {
			s.selected = i
			return true
		}
	}
	return false
}

// Replace swaps the option set, keeping the current value selected if it is
// still present.
func (s *Select) Replace(options []Choice) {
	current := s.Value()
	s.options = options
	s.selected = 0
	s.SelectValue(current)
}

// Form holds the generation parameters the user edits.
type Form struct {
	surah     int
	StartAyah *Counter
	EndAyah   *Counter

	Reciter  *Select
	Quality  *Select
	Template *Select
	Format   *Select
	Font     *Select

	PersonName string
}

// New creates a form on Al-Fatiha with the built-in presets.
func New() *Form {
	f := &Form{
		StartAyah: NewCounter(1, 1),
		EndAyah:   NewCounter(1, 1),
		Reciter:   NewSelect(reciterChoices()),
		Quality:   NewSelect(valueChoices(catalog.QualityPresets())),
		Template:  NewSelect(valueChoices(catalog.Templates())),
		Format:    NewSelect(valueChoices(catalog.OutputFormats())),
		Font:      NewSelect(FontChoices(model.DefaultFontOptions())),
	}
	f.Quality.SelectValue(catalog.QualityMedium)
	f.Template.SelectValue(catalog.TemplateNormal)
	f.SelectSurah(1)
	return f
}

// Surah returns the selected surah index.
func (f *Form) Surah() int { return f.surah }

// SelectSurah selects a surah and clamps both ayah counters to its verse
// count, resetting start to 1 and end to min(5, count). It reports false and
// leaves the form untouched for an index outside the catalog.
func (f *Form) SelectSurah(index int) bool {
	count, ok := catalog.VerseCount(index)
	if !ok {
		return false
	}
	f.surah = index
	f.StartAyah.SetMax(count)
	f.EndAyah.SetMax(count)
	f.StartAyah.Set(1)
	f.EndAyah.Set(min(defaultEndAyah, count))
	return true
}

// NextSurah selects the following surah, wrapping after the last one.
func (f *Form) NextSurah() {
	f.SelectSurah(f.surah%catalog.SurahCount + 1)
}

// PrevSurah selects the preceding surah, wrapping before the first one.
func (f *Form) PrevSurah() {
	f.SelectSurah((f.surah+catalog.SurahCount-2)%catalog.SurahCount + 1)
}

// SetFontOptions replaces the font choices. A nil or empty set is ignored so
// the current options stay in place.
func (f *Form) SetFontOptions(options []model.FontOption) bool {
	if len(options) == 0 {
		return false
	}
	f.Font.Replace(FontChoices(options))
	return true
}

// GenerationRequest builds the request for the current values. It does not
// validate; see model.GenerationRequest.Validate.
func (f *Form) GenerationRequest() *model.GenerationRequest {
	return &model.GenerationRequest{
		Reciter:      f.Reciter.Value(),
		Surah:        f.surah,
		StartAyah:    f.StartAyah.Value(),
		EndAyah:      f.EndAyah.Value(),
		Quality:      f.Quality.Value(),
		Template:     f.Template.Value(),
		PersonName:   f.PersonName,
		Format:       f.Format.Value(),
		SelectedFont: f.Font.Value(),
	}
}

// PreviewRequest builds a single-ayah preview of the start ayah.
func (f *Form) PreviewRequest() *model.PreviewRequest {
	return &model.PreviewRequest{
		Reciter:  f.Reciter.Value(),
		Surah:    f.surah,
		Ayah:     f.StartAyah.Value(),
		Template: f.Template.Value(),
	}
}

// FontChoices converts font options to select choices.
func FontChoices(options []model.FontOption) []Choice {
	out := make([]Choice, len(options))
	for i, opt := range options {
		out[i] = Choice{Value: opt.Value, Label: opt.Label}
	}
	return out
}

func reciterChoices() []Choice {
	reciters := catalog.Reciters()
	out := make([]Choice, len(reciters))
	for i, r := range reciters {
		out[i] = Choice{Value: r.ID, Label: r.Label}
	}
	return out
}

func valueChoices(values []string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Value: v, Label: v}
	}
	return out
}

// ApplyServerConfig replaces the preset choices with the lists the backend
// advertises. Empty lists keep the built-in presets.
func (f *Form) ApplyServerConfig(cfg *model.ServerConfig) {
	if cfg == nil {
		return
	}
	if len(cfg.Reciters) > 0 {
		labels := slices.Sorted(maps.Keys(cfg.Reciters))
		choices := make([]Choice, 0, len(labels))
		for _, label := range labels {
			choices = append(choices, Choice{Value: cfg.Reciters[label], Label: label})
		}
		f.Reciter.Replace(choices)
	}
	if len(cfg.QualityPresets) > 0 {
		f.Quality.Replace(valueChoices(cfg.QualityPresets))
	}
	if len(cfg.Templates) > 0 {
		f.Template.Replace(valueChoices(cfg.Templates))
	}
	if len(cfg.OutputFormats) > 0 {
		f.Format.Replace(valueChoices(cfg.OutputFormats))
	}
}
