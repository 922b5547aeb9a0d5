package form

import (
	"testing"

	"github.com/handiism/quran-reels/internal/catalog"
	"github.com/handiism/quran-reels/internal/model"
)

func TestForm_SelectSurahClampsAyat(t *testing.T) {
	f := New()

	for _, s := range catalog.Surahs() {
		if !f.SelectSurah(s.Index) {
			t.Fatalf("SelectSurah(%d) = false", s.Index)
		}
		if f.StartAyah.Max() != s.VerseCount || f.EndAyah.Max() != s.VerseCount {
			t.Errorf("surah %d: max = %d/%d, want %d", s.Index, f.StartAyah.Max(), f.EndAyah.Max(), s.VerseCount)
		}
		if f.StartAyah.Value() != 1 {
			t.Errorf("surah %d: start = %d, want 1", s.Index, f.StartAyah.Value())
		}
		if want := min(5, s.VerseCount); f.EndAyah.Value() != want {
			t.Errorf("surah %d: end = %d, want %d", s.Index, f.EndAyah.Value(), want)
		}
	}
}

func TestForm_SelectSurahOutOfRange(t *testing.T) {
	f := New()
	f.SelectSurah(2)

	for _, index := range []int{0, 115, -1} {
		if f.SelectSurah(index) {
			t.Errorf("SelectSurah(%d) = true", index)
		}
	}
	if f.Surah() != 2 || f.EndAyah.Max() != 286 {
		t.Errorf("form changed after invalid selection: surah=%d max=%d", f.Surah(), f.EndAyah.Max())
	}
}

func TestForm_SurahNavigationWraps(t *testing.T) {
	f := New()
	f.PrevSurah()
	if f.Surah() != 114 {
		t.Errorf("PrevSurah from 1 = %d, want 114", f.Surah())
	}
	f.NextSurah()
	if f.Surah() != 1 {
		t.Errorf("NextSurah from 114 = %d, want 1", f.Surah())
	}
	f.NextSurah()
	if f.Surah() != 2 {
		t.Errorf("NextSurah from 1 = %d, want 2", f.Surah())
	}
}

func TestCounter_Bounds(t *testing.T) {
	c := NewCounter(1, 3)

	if c.Decrement() {
		t.Error("Decrement at 1 should not change value")
	}
	if c.Value() != 1 {
		t.Errorf("value = %d, want 1", c.Value())
	}

	for i := 0; i < 10; i++ {
		c.Increment()
	}
	if c.Value() != 3 {
		t.Errorf("value = %d, want max 3", c.Value())
	}

	for i := 0; i < 10; i++ {
		c.Decrement()
	}
	if c.Value() != 1 {
		t.Errorf("value = %d, want 1", c.Value())
	}
}

func TestCounter_NotifiesOnlyOnChange(t *testing.T) {
	c := NewCounter(2, 3)

	var seen []int
	c.OnChange(func(v int) { seen = append(seen, v) })

	c.Increment() // 3
	c.Increment() // at max, no change
	c.Decrement() // 2
	c.Decrement() // 1
	c.Decrement() // at 1, no change
	c.Set(1)      // same value, no change
	c.Set(0)      // clamps to 1, no change
	c.Set(9)      // clamps to 3

	want := []int{3, 2, 1, 3}
	if len(seen) != len(want) {
		t.Fatalf("notifications = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notifications = %v, want %v", seen, want)
			break
		}
	}
}

func TestCounter_ClampOnCreate(t *testing.T) {
	if c := NewCounter(9, 4); c.Value() != 4 {
		t.Errorf("NewCounter(9, 4).Value() = %d", c.Value())
	}
	if c := NewCounter(0, 4); c.Value() != 1 {
		t.Errorf("NewCounter(0, 4).Value() = %d", c.Value())
	}
	if c := NewCounter(1, 0); c.Max() != 1 {
		t.Errorf("NewCounter(1, 0).Max() = %d", c.Max())
	}
}

func TestForm_Requests(t *testing.T) {
	f := New()
	f.SelectSurah(36)
	f.StartAyah.Set(4)
	f.EndAyah.Set(9)
	f.Reciter.SelectValue("Alafasy_64kbps")
	f.Format.SelectValue(catalog.FormatStory)
	f.PersonName = "Fatima"

	req := f.GenerationRequest()
	if req.Surah != 36 || req.StartAyah != 4 || req.EndAyah != 9 {
		t.Errorf("unexpected range %+v", req)
	}
	if req.Reciter != "Alafasy_64kbps" || req.Format != "story" || req.PersonName != "Fatima" {
		t.Errorf("unexpected fields %+v", req)
	}
	if req.Quality != catalog.QualityMedium || req.Template != catalog.TemplateNormal {
		t.Errorf("unexpected defaults %+v", req)
	}
	if req.SelectedFont != model.RandomFont {
		t.Errorf("SelectedFont = %q, want %q", req.SelectedFont, model.RandomFont)
	}

	prev := f.PreviewRequest()
	if prev.Surah != 36 || prev.Ayah != 4 || prev.Reciter != "Alafasy_64kbps" || prev.Template != catalog.TemplateNormal {
		t.Errorf("unexpected preview %+v", prev)
	}
}

func TestForm_SetFontOptions(t *testing.T) {
	f := New()
	before := f.Font.Options()

	if f.SetFontOptions(nil) {
		t.Error("SetFontOptions(nil) = true")
	}
	if len(f.Font.Options()) != len(before) {
		t.Errorf("options changed on empty list: %v", f.Font.Options())
	}

	f.SetFontOptions(model.FontOptions([]string{"Amiri.ttf", "Dubai.ttf"}))
	opts := f.Font.Options()
	if len(opts) != 3 || opts[0].Value != model.RandomFont || opts[2].Label != "Dubai" {
		t.Errorf("unexpected options %v", opts)
	}
	if f.Font.Value() != model.RandomFont {
		t.Errorf("selection = %q, want random kept", f.Font.Value())
	}
}

func TestForm_ApplyServerConfig(t *testing.T) {
	f := New()
	f.ApplyServerConfig(&model.ServerConfig{
		Reciters:  map[string]string{"B reciter": "b_id", "A reciter": "a_id"},
		Templates: []string{"normal", "night"},
	})

	opts := f.Reciter.Options()
	if len(opts) != 2 || opts[0].Value != "a_id" || opts[1].Value != "b_id" {
		t.Errorf("reciters = %v", opts)
	}
	if f.Template.Value() != "normal" {
		t.Errorf("template selection = %q, want normal kept", f.Template.Value())
	}
	if len(f.Quality.Options()) != 3 {
		t.Errorf("quality presets replaced by empty list: %v", f.Quality.Options())
	}
}

func TestSelect_Cycle(t *testing.T) {
	s := NewSelect([]Choice{{"a", "A"}, {"b", "B"}})
	s.Prev()
	if s.Value() != "b" {
		t.Errorf("Prev from first = %q", s.Value())
	}
	s.Next()
	if s.Value() != "a" || s.Label() != "A" {
		t.Errorf("Next = %q/%q", s.Value(), s.Label())
	}

	empty := NewSelect(nil)
	empty.Next()
	if empty.Value() != "" {
		t.Errorf("empty select value = %q", empty.Value())
	}
}
