package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordex/chord"
	"github.com/jsphweid/chordex/instrument"
	"github.com/jsphweid/chordex/model"
	"github.com/jsphweid/chordex/pcset"
	"github.com/jsphweid/chordex/pitch"
	"github.com/rs/cors"
)

const maxBodyBytes = 1 << 16

type ctxKey struct{}

type Server struct {
	Catalog  *chord.Catalog
	Registry *instrument.Registry
	// used by /frets when the request names neither instrument nor tuning.
	// When InstrumentName is set it is looked up in Registry per request so
	// preset file reloads apply, and Instrument is only the fallback.
	Instrument     *instrument.Instrument
	InstrumentName string
	Spelling       pitch.Spelling
	Logger         *slog.Logger
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(s.requestID)
	router.HandleFunc("/identify", s.HandleIdentify).Methods(http.MethodPost)
	router.HandleFunc("/frets", s.HandleFrets).Methods(http.MethodPost)
	router.HandleFunc("/catalog", s.HandleCatalog).Methods(http.MethodGet)
	router.HandleFunc("/instruments", s.HandleInstruments).Methods(http.MethodGet)
	return router
}

func (s *Server) Handler(allowedOrigins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return c.Handler(s.Router())
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		s.Logger.Info("server.request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) HandleIdentify(w http.ResponseWriter, r *http.Request) {
	var input model.IdentifyRequestBody
	if err := decode(r, &input); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	sp, err := s.spelling(input.Spelling)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var pitches []pitch.Specific
	for _, n := range input.Notes {
		if n < 0 || n > 127 {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("midi note %d out of range", n))
			return
		}
		pitches = append(pitches, pitch.FromMIDI(n))
	}
	for _, tok := range input.Pitches {
		p, err := pitch.ParseSpecific(tok)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, &instrument.ParseError{Token: tok, Err: err})
			return
		}
		pitches = append(pitches, p)
	}
	s.respondMatches(w, r, pitches, sp)
}

func (s *Server) HandleFrets(w http.ResponseWriter, r *http.Request) {
	var input model.FretsRequestBody
	if err := decode(r, &input); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	sp, err := s.spelling(input.Spelling)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	inst := s.Instrument
	if s.InstrumentName != "" {
		if named, err := s.Registry.Get(s.InstrumentName); err == nil {
			inst = named
		}
	}
	switch {
	case input.Tuning != "":
		inst, err = instrument.FromTuning("custom", input.Tuning)
	case input.Instrument != "":
		inst, err = s.Registry.Get(input.Instrument)
	}
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	pitches, err := inst.Resolve(input.Frets)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.respondMatches(w, r, pitches, sp)
}

func (s *Server) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	res := make([]model.CatalogEntry, 0, s.Catalog.Len())
	for _, t := range s.Catalog.Templates() {
		res = append(res, model.CatalogEntry{
			Pattern:      t.Pattern(),
			Name:         t.Name(),
			Abbreviation: t.Abbreviation(),
			Family:       t.Family().String(),
		})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleInstruments(w http.ResponseWriter, r *http.Request) {
	var res []model.InstrumentInfo
	for _, name := range s.Registry.Names() {
		inst, err := s.Registry.Get(name)
		if err != nil {
			continue
		}
		res = append(res, model.InstrumentInfo{Name: name, Tuning: inst.Tuning(), Strings: inst.StringCount()})
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) respondMatches(w http.ResponseWriter, r *http.Request, pitches []pitch.Specific, sp pitch.Spelling) {
	matches, err := s.Catalog.Identify(pitches)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	res := model.IdentifyResponse{
		RequestId:     RequestID(r.Context()),
		Pitches:       make([]string, 0, len(pitches)),
		PitchClassSet: pcset.FromPitches(pitches).String(),
		Matches:       MatchResults(matches, sp),
	}
	for _, p := range pitches {
		res.Pitches = append(res.Pitches, p.String())
	}
	s.writeJSON(w, http.StatusOK, res)
}

func MatchResults(matches []chord.Match, sp pitch.Spelling) []model.MatchResult {
	res := make([]model.MatchResult, 0, len(matches))
	for _, m := range matches {
		res = append(res, model.MatchResult{
			Tonic:        m.Tonic.Name(sp),
			Name:         m.Template.Name(),
			Abbreviation: m.Template.Abbreviation(),
			Family:       m.Template.Family().String(),
			Pattern:      m.Template.Pattern(),
			Short:        m.Short(sp),
			Long:         m.Long(sp),
		})
	}
	return res
}

func (s *Server) spelling(requested string) (pitch.Spelling, error) {
	if requested == "" {
		return s.Spelling, nil
	}
	return pitch.ParseSpelling(requested)
}

func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("could not unmarshal request body: %w", err)
	}
	return nil
}

func statusFor(err error) int {
	if errors.Is(err, instrument.ErrUnknownInstrument) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.Logger.Warn("server.error", "id", RequestID(r.Context()), "status", status, "err", err)
	s.writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("server.encode", "err", err)
	}
}
