package console

// Languages with a text table.
const (
	LanguageArabic  = "ar"
	LanguageEnglish = "en"
)

// Text keys.
const (
	KeyAppTitle         = "app_title"
	KeyAppSubtitle      = "app_subtitle"
	KeyGenerate         = "generate"
	KeyWorking          = "working"
	KeyPreview          = "preview"
	KeyPreparing        = "preparing"
	KeyAyahRange        = "ayah_range"
	KeyStartFailed      = "start_failed"
	KeyConnectionFailed = "connection_failed"
	KeySurah            = "surah"
	KeyStartAyah        = "start_ayah"
	KeyEndAyah          = "end_ayah"
	KeyReciter          = "reciter"
	KeyQuality          = "quality"
	KeyTemplate         = "template"
	KeyFormat           = "format"
	KeyFont             = "font"
	KeyPersonName       = "person_name"
	KeyStatus           = "status"
	KeyLog              = "log"
	KeyVideoReady       = "video_ready"
	KeySaved            = "saved"
	KeySaveFailed       = "save_failed"
	KeyFontsRefreshed   = "fonts_refreshed"
	KeyJobFailed        = "job_failed"
)

var texts = map[string]map[string]string{
	LanguageArabic: {
		KeyAppTitle:         "مولد ريلز القرآن",
		KeyAppSubtitle:      "إنشاء فيديوهات الآيات",
		KeyGenerate:         "إنشاء الفيديو",
		KeyWorking:          "جاري العمل...",
		KeyPreview:          "معاينة",
		KeyPreparing:        "جاري التحضير...",
		KeyAyahRange:        "حدث خطأ: يجب أن تكون آية النهاية أكبر من آية البداية",
		KeyStartFailed:      "حدث خطأ في بدء العملية",
		KeyConnectionFailed: "فشل الاتصال بالخادم: ",
		KeySurah:            "السورة",
		KeyStartAyah:        "آية البداية",
		KeyEndAyah:          "آية النهاية",
		KeyReciter:          "القارئ",
		KeyQuality:          "الجودة",
		KeyTemplate:         "القالب",
		KeyFormat:           "الصيغة",
		KeyFont:             "الخط",
		KeyPersonName:       "اسم الشخص",
		KeyStatus:           "الحالة",
		KeyLog:              "السجل",
		KeyVideoReady:       "الفيديو جاهز",
		KeySaved:            "تم الحفظ في ",
		KeySaveFailed:       "فشل حفظ الفيديو: ",
		KeyFontsRefreshed:   "تم تحديث الخطوط",
		KeyJobFailed:        "فشلت العملية: ",
	},
	LanguageEnglish: {
		KeyAppTitle:         "Quran Reels Generator",
		KeyAppSubtitle:      "Render verse videos",
		KeyGenerate:         "Generate video",
		KeyWorking:          "Working...",
		KeyPreview:          "Preview",
		KeyPreparing:        "Preparing...",
		KeyAyahRange:        "Error: the end ayah must come after the start ayah",
		KeyStartFailed:      "Could not start the job",
		KeyConnectionFailed: "Could not reach the server: ",
		KeySurah:            "Surah",
		KeyStartAyah:        "Start ayah",
		KeyEndAyah:          "End ayah",
		KeyReciter:          "Reciter",
		KeyQuality:          "Quality",
		KeyTemplate:         "Template",
		KeyFormat:           "Format",
		KeyFont:             "Font",
		KeyPersonName:       "Person name",
		KeyStatus:           "Status",
		KeyLog:              "Log",
		KeyVideoReady:       "Video ready",
		KeySaved:            "Saved to ",
		KeySaveFailed:       "Could not save the video: ",
		KeyFontsRefreshed:   "Fonts refreshed",
		KeyJobFailed:        "Job failed: ",
	},
}

// Localization looks up UI texts for one language.
type Localization struct {
	language string
}

// NewLocalization creates a lookup for lang, falling back to Arabic for
// unknown languages.
func NewLocalization(lang string) *Localization {
	if _, ok := texts[lang]; !ok {
		lang = LanguageArabic
	}
	return &Localization{language: lang}
}

// Language returns the active language.
func (l *Localization) Language() string { return l.language }

// Text returns the text for key, falling back to Arabic and then to the key
// itself.
func (l *Localization) Text(key string) string {
	if text, ok := texts[l.language][key]; ok {
		return text
	}
	if text, ok := texts[LanguageArabic][key]; ok {
		return text
	}
	return key
}
