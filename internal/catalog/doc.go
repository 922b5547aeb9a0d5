// Package catalog holds the static reference data of the console.
//
// # Surahs
//
// The catalog contains the 114 surahs in order with their Arabic names and
// verse counts. Indices are 1-based:
//
//	s, ok := catalog.Lookup(2)
//	fmt.Println(s.Label())      // "2. البقرة"
//	fmt.Println(s.VerseCount)   // 286
//
// # Presets
//
// Reciters, quality presets, output formats and templates mirror the
// identifiers the rendering backend understands. They are used when the
// backend's /api/config does not list them.
package catalog
