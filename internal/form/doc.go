// Package form holds the editable state of the generation form.
//
// A Form owns the surah selection, the two ayah counters and the preset
// pickers. Selecting a surah clamps both counters to its verse count:
//
//	f := form.New()
//	f.SelectSurah(2)          // start=1, end=5, max=286
//	f.EndAyah.Increment()     // end=6
//	req := f.GenerationRequest()
//
// Counters never go below 1 or above their maximum and notify OnChange
// listeners only when their value actually changes.
package form
