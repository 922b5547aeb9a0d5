package catalog

import "fmt"

// SurahCount is the number of surahs in the catalog.
const SurahCount = 114

// Surah is one chapter record of the catalog.
type Surah struct {
	// Index is the 1-based surah number.
	Index int

	// Name is the Arabic surah name.
	Name string

	// VerseCount is the number of ayat in the surah.
	VerseCount int
}

// Label returns the selector label, e.g. "2. البقرة".
func (s Surah) Label() string {
	return fmt.Sprintf("%d. %s", s.Index, s.Name)
}

var names = [SurahCount]string{
	"الفاتحة", "البقرة", "آل عمران", "النساء", "المائدة", "الأنعام", "الأعراف", "الأنفال", "التوبة", "يونس",
	"هود", "يوسف", "الرعد", "إبراهيم", "الحجر", "النحل", "الإسراء", "الكهف", "مريم", "طه",
	"الأنبياء", "الحج", "المؤمنون", "النور", "الفرقان", "الشعراء", "النمل", "القصص", "العنكبوت", "الروم",
	"لقمان", "السجدة", "الأحزاب", "سبأ", "فاطر", "يس", "الصافات", "ص", "الزمر", "غافر",
	"فصلت", "الشورى", "الزخرف", "الدخان", "الجاثية", "الأحقاف", "محمد", "الفتح", "الحجرات", "ق",
	"الذاريات", "الطور", "النجم", "القمر", "الرحمن", "الواقعة", "الحديد", "المجادلة", "الحشر", "الممتحنة",
	"الصف", "الجمعة", "المنافقون", "التغابن", "الطلاق", "التحريم", "الملك", "القلم", "الحاقة", "المعارج",
	"نوح", "الجن", "المزمل", "المدثر", "القيامة", "الإنسان", "المرسلات", "النبأ", "النازعات", "عبس",
	"التكوير", "الانفطار", "المطففين", "الانشقاق", "البروج", "الطارق", "الأعلى", "الغاشية", "الفجر", "البلد",
	"الشمس", "الليل", "الضحى", "الشرح", "التين", "العلق", "القدر", "البينة", "الزلزلة", "العاديات",
	"القارعة", "التكاثر", "العصر", "الهمزة", "الفيل", "قريش", "الماعون", "الكوثر", "الكافرون", "النصر",
	"المسد", "الإخلاص", "الفلق", "الناس",
}

var verseCounts = [SurahCount]int{
	7, 286, 200, 176, 120, 165, 206, 75, 129, 109,
	123, 111, 43, 52, 99, 128, 111, 110, 98, 135,
	112, 78, 118, 64, 77, 227, 93, 88, 69, 60,
	34, 30, 73, 54, 45, 83, 182, 88, 75, 85,
	54, 53, 89, 59, 37, 35, 38, 29, 18, 45,
	60, 49, 62, 55, 78, 96, 29, 22, 24, 13,
	14, 11, 11, 18, 12, 12, 30, 52, 52, 44,
	28, 28, 20, 56, 40, 31, 50, 40, 46, 42,
	29, 19, 36, 25, 22, 17, 19, 26, 30, 20,
	15, 21, 11, 8, 8, 19, 5, 8, 8, 11,
	11, 8, 3, 9, 5, 4, 7, 3, 6, 3,
	5, 4, 5, 6,
}

var surahs = func() []Surah {
	out := make([]Surah, SurahCount)
	for i := range out {
		out[i] = Surah{Index: i + 1, Name: names[i], VerseCount: verseCounts[i]}
	}
	return out
}()

// Surahs returns all surahs in order. The returned slice is a copy.
func Surahs() []Surah {
	out := make([]Surah, len(surahs))
	copy(out, surahs)
	return out
}

// Lookup returns the surah with the given 1-based index.
func Lookup(index int) (Surah, bool) {
	if index < 1 || index > SurahCount {
		return Surah{}, false
	}
	return surahs[index-1], true
}

// VerseCount returns the number of ayat in the given surah.
func VerseCount(index int) (int, bool) {
	s, ok := Lookup(index)
	if !ok {
		return 0, false
	}
	return s.VerseCount, true
}
