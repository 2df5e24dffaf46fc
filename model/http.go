package model

// IdentifyRequestBody accepts MIDI note numbers, pitch tokens, or both.
type IdentifyRequestBody struct {
	// NOTE: not Notes, a []uint8 would travel as base64
	Notes    []int    `json:"notes,omitempty"`
	Pitches  []string `json:"pitches,omitempty"`
	Spelling string   `json:"spelling,omitempty"`
}

type FretsRequestBody struct {
	Instrument string `json:"instrument,omitempty"`
	Tuning     string `json:"tuning,omitempty"`
	Frets      string `json:"frets"`
	Spelling   string `json:"spelling,omitempty"`
}

type MatchResult struct {
	Tonic        string `json:"tonic"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Family       string `json:"family"`
	Pattern      string `json:"pattern"`
	Short        string `json:"short"`
	Long         string `json:"long"`
}

type IdentifyResponse struct {
	RequestId     string        `json:"request_id"`
	Pitches       []string      `json:"pitches"`
	PitchClassSet string        `json:"pitch_class_set"`
	Matches       []MatchResult `json:"matches"`
}

type CatalogEntry struct {
	Pattern      string `json:"pattern"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Family       string `json:"family"`
}

type InstrumentInfo struct {
	Name    string `json:"name"`
	Tuning  string `json:"tuning"`
	Strings int    `json:"strings"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
