package model

// ServerConfig is the body of GET /api/config.
//
// Only AvailableFonts is required; the remaining fields are used when the
// backend provides them.
type ServerConfig struct {
	Surahs         []string          `json:"surahs,omitempty"`
	VerseCounts    map[string]int    `json:"verseCounts,omitempty"`
	Reciters       map[string]string `json:"reciters,omitempty"`
	QualityPresets []string          `json:"qualityPresets,omitempty"`
	OutputFormats  []string          `json:"outputFormats,omitempty"`
	Templates      []string          `json:"templates,omitempty"`
	AvailableFonts []string          `json:"availableFonts"`
}

// RefreshFontsResponse is the body of POST /api/refresh-fonts.
type RefreshFontsResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message,omitempty"`
	FontCount int      `json:"fontCount"`
	Fonts     []string `json:"fonts"`
	Error     string   `json:"error,omitempty"`
}
