package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/instrument"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/pitch"
	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	r := instrument.NewRegistry()
	g, err := r.Get("guitar")
	if err != nil {
		t.Fatal(err)
	}
	return &Server{
		Catalog:    chord.Default,
		Registry:   r,
		Instrument: g,
		Spelling:   pitch.Preferred,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeIdentify(t *testing.T, w *httptest.ResponseRecorder) model.IdentifyResponse {
	t.Helper()
	var res model.IdentifyResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	return res
}

func TestIdentifyByMidiNotes(t *testing.T) {
	h := newTestServer(t).Router()
	w := do(t, h, http.MethodPost, "/identify", `{"notes":[60,64,67]}`)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	res := decodeIdentify(t, w)
	assert.NotEmpty(res.RequestId)
	assert.Equal(res.RequestId, w.Header().Get("X-Request-Id"))
	assert.Equal([]string{"C4", "E4", "G4"}, res.Pitches)
	assert.Equal("100010010000", res.PitchClassSet)
	assert.Len(res.Matches, 1)
	assert.Equal("C major", res.Matches[0].Long)
	assert.Equal("major", res.Matches[0].Family)
}

func TestIdentifyByPitchNamesWithSpelling(t *testing.T) {
	h := newTestServer(t).Router()
	w := do(t, h, http.MethodPost, "/identify", `{"pitches":["C#3","E3","G#3"],"spelling":"flats"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeIdentify(t, w)
	assert.Equal(t, "D♭m", res.Matches[0].Short)
}

func TestIdentifyNoMatchIsStillOK(t *testing.T) {
	h := newTestServer(t).Router()
	w := do(t, h, http.MethodPost, "/identify", `{"notes":[66]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeIdentify(t, w).Matches)
}

func TestIdentifyErrors(t *testing.T) {
	h := newTestServer(t).Router()
	cases := map[string]string{
		"bad json":     `{"notes":`,
		"silent":       `{}`,
		"bad pitch":    `{"pitches":["H2"]}`,
		"out of range": `{"notes":[128]}`,
		"bad spelling": `{"notes":[60],"spelling":"weird"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/identify", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var res model.ErrorResponse
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.NotEmpty(t, res.Error)
		})
	}
}

func TestFretsUsesDefaultInstrument(t *testing.T) {
	h := newTestServer(t).Router()
	w := do(t, h, http.MethodPost, "/frets", `{"frets":"022100"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeIdentify(t, w)
	assert.Equal(t, "E major", res.Matches[0].Long)
	assert.Len(t, res.Pitches, 6)
}

func TestFretsDefaultFollowsPresetReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instruments.toml")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := newTestServer(t)
	s.InstrumentName = "baritone"
	h := s.Router()

	write("[[instrument]]\nname = \"baritone\"\ntuning = \"B1 E2 A2 D3 F#3 B3\"\n")
	_, err := s.Registry.LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "B major", decodeIdentify(t, do(t, h, http.MethodPost, "/frets", `{"frets":"022100"}`)).Matches[0].Long)

	write("[[instrument]]\nname = \"baritone\"\ntuning = \"C2 F2 Bb2 Eb3 G3 C4\"\n")
	_, err = s.Registry.LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "C major", decodeIdentify(t, do(t, h, http.MethodPost, "/frets", `{"frets":"022100"}`)).Matches[0].Long)

	// removed from the file, so the configured fallback plays
	write("# empty\n")
	_, err = s.Registry.LoadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "E major", decodeIdentify(t, do(t, h, http.MethodPost, "/frets", `{"frets":"022100"}`)).Matches[0].Long)
}

func TestFretsWithNamedInstrumentAndTuning(t *testing.T) {
	h := newTestServer(t).Router()

	w := do(t, h, http.MethodPost, "/frets", `{"instrument":"ukulele","frets":"0003"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "C major", decodeIdentify(t, w).Matches[0].Long)

	w = do(t, h, http.MethodPost, "/frets", `{"tuning":"E2 A3 D3 G3 B4 E4","frets":"x22100"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeIdentify(t, w).Pitches, 5)
}

func TestFretsErrors(t *testing.T) {
	h := newTestServer(t).Router()
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/frets", `{"instrument":"kazoo","frets":"0"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/frets", `{"frets":"0221"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/frets", `{"frets":"02210z"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/frets", `{"tuning":"E2 ??","frets":"00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/frets", `{"frets":"xxxxxx"}`).Code)
}

func TestCatalogListsEveryTemplate(t *testing.T) {
	h := newTestServer(t).Router()
	w := do(t, h, http.MethodGet, "/catalog", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var res []model.CatalogEntry
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res, chord.Default.Len())
	assert.Equal(t, model.CatalogEntry{Pattern: "100010010000", Name: "major", Abbreviation: "", Family: "major"}, res[0])
}

func TestInstrumentsListing(t *testing.T) {
	h := newTestServer(t).Router()
	w := do(t, h, http.MethodGet, "/instruments", "")
	var res []model.InstrumentInfo
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Contains(t, res, model.InstrumentInfo{Name: "guitar", Tuning: "E2 A2 D3 G3 B3 E4", Strings: 6})
}

func TestWrongMethodIsRejected(t *testing.T) {
	h := newTestServer(t).Router()
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/identify", "").Code)
}

func TestCorsPreflight(t *testing.T) {
	h := newTestServer(t).Handler([]string{"https://example.com"})
	req := httptest.NewRequest(http.MethodOptions, "/identify", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
