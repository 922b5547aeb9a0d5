package catalog

// Reciter pairs a display label with the audio source identifier the
// backend expects in the "reciter" field.
type Reciter struct {
	Label string
	ID    string
}

var reciters = []Reciter{
	{"الشيخ عبدالباسط عبدالصمد", "AbdulSamad_64kbps_QuranExplorer.Com"},
	{"الشيخ عبدالباسط عبدالصمد (مرتل)", "Abdul_Basit_Murattal_64kbps"},
	{"الشيخ عبدالرحمن السديس", "Abdurrahmaan_As-Sudais_64kbps"},
	{"الشيخ ماهر المعيقلي", "Maher_AlMuaiqly_64kbps"},
	{"الشيخ محمد صديق المنشاوي (مجود)", "Minshawy_Mujawwad_64kbps"},
	{"الشيخ سعود الشريم", "Saood_ash-Shuraym_64kbps"},
	{"الشيخ مشاري العفاسي", "Alafasy_64kbps"},
	{"الشيخ محمود خليل الحصري", "Husary_64kbps"},
	{"الشيخ عبدالله الحذيفي", "Hudhaify_64kbps"},
	{"الشيخ أبو بكر الشاطري", "Abu_Bakr_Ash-Shaatree_128kbps"},
	{"الشيخ محمود علي البنا", "mahmoud_ali_al_banna_32kbps"},
}

// Quality presets accepted by the backend.
const (
	QualityLow    = "low"
	QualityMedium = "medium"
	QualityHigh   = "high"
)

// Output formats accepted by the backend.
const (
	FormatReels = "reels"
	FormatStory = "story"
	FormatPost  = "post"
)

// Visual templates accepted by the backend.
const (
	TemplateRamadan = "ramadan"
	TemplateNormal  = "normal"
	TemplateKids    = "kids"
)

// Reciters returns the built-in reciter list.
func Reciters() []Reciter {
	out := make([]Reciter, len(reciters))
	copy(out, reciters)
	return out
}

// QualityPresets returns the built-in quality preset names.
func QualityPresets() []string {
	return []string{QualityLow, QualityMedium, QualityHigh}
}

// OutputFormats returns the built-in output format names.
func OutputFormats() []string {
	return []string{FormatReels, FormatStory, FormatPost}
}

// Templates returns the built-in template names.
func Templates() []string {
	return []string{TemplateRamadan, TemplateNormal, TemplateKids}
}
