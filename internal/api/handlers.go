package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgeier/knotwork/pkg/errors"
	"github.com/mgeier/knotwork/pkg/knot"
	"github.com/mgeier/knotwork/pkg/store"
)

// knotJSON is the wire form of a stored record.
type knotJSON struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Code       string            `json:"code"`
	Crossings  int               `json:"crossings"`
	Writhe     int               `json:"writhe"`
	Hash       string            `json:"hash"`
	WellFormed bool              `json:"well_formed"`
	Canonical  string            `json:"canonical,omitempty"`
	Extended   map[string]any    `json:"extended,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

func (s *Server) toJSON(r *http.Request, rec store.KnotRecord, withCanonical bool) knotJSON {
	out := knotJSON{
		ID:         rec.ID,
		Name:       rec.Name,
		Code:       rec.Code.String(),
		Crossings:  rec.Crossings,
		Writhe:     rec.Writhe,
		Hash:       rec.Hash,
		WellFormed: rec.Code.WellFormed(),
		Extended:   rec.Extended,
		Metadata:   rec.Metadata,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
	if withCanonical {
		out.Canonical = s.runner.Canonical(r.Context(), rec.Code).String()
	}
	return out
}

type createRequest struct {
	Name     string            `json:"name"`
	Code     string            `json:"code"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Name == "" {
		respondError(w, errors.New(errors.ErrCodeInvalidName, "name is required"))
		return
	}

	g, err := knot.Parse(req.Code)
	if err != nil && !knot.IsMalformed(err) {
		respondError(w, err)
		return
	}

	rec, err := s.store.Create(r.Context(), req.Name, g, req.Metadata)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s.toJSON(r, rec, false))
}

func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Fetch(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.toJSON(r, rec, true))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var delta map[string]string
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	rec, err := s.store.UpdateMetadata(r.Context(), chi.URLParam(r, "name"), delta)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s.toJSON(r, rec, false))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromParams(r)
	if err != nil {
		respondError(w, err)
		return
	}

	records, err := s.store.Query(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]knotJSON, 0, len(records))
	for _, rec := range records {
		out = append(out, s.toJSON(r, rec, false))
	}
	respondJSON(w, http.StatusOK, out)
}

// queryFromParams builds a store query from URL parameters. Supported
// filters: crossings, writhe (exact or "min-max" range), name (glob),
// hash, and meta.<key>=<value>.
func queryFromParams(r *http.Request) (store.Query, error) {
	var q store.Query

	for field, name := range map[store.Field]string{
		store.FieldCrossings: "crossings",
		store.FieldWrithe:    "writhe",
	} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		p, err := intPredicate(field, raw)
		if err != nil {
			return nil, err
		}
		q = append(q, p)
	}

	if pattern := r.URL.Query().Get("name"); pattern != "" {
		q = append(q, store.NamePattern{Pattern: pattern})
	}
	if hash := r.URL.Query().Get("hash"); hash != "" {
		q = append(q, store.HashEquals{Hash: hash})
	}
	for key, values := range r.URL.Query() {
		if k, ok := strings.CutPrefix(key, "meta."); ok && len(values) > 0 {
			q = append(q, store.MetadataEquals{Key: k, Value: values[0]})
		}
	}
	return q, nil
}

// intPredicate parses "3" as equality and "3-6" as an inclusive range.
// A negative exact value like "-1" parses as equality, not a range.
func intPredicate(field store.Field, raw string) (store.Predicate, error) {
	if v, err := strconv.Atoi(raw); err == nil {
		return store.FieldEquals{Field: field, Value: v}, nil
	}
	if lo, hi, ok := strings.Cut(raw, "-"); ok && lo != "" {
		min, err1 := strconv.Atoi(lo)
		max, err2 := strconv.Atoi(hi)
		if err1 == nil && err2 == nil {
			return store.FieldRange{Field: field, Min: min, Max: max}, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidQuery, "bad %s filter %q", field, raw)
}

type checkRequest struct {
	Left     string `json:"left"`
	Right    string `json:"right"`
	Relation string `json:"relation"` // equivalent, isotopic, or mirror
}

type checkResponse struct {
	Relation       string `json:"relation"`
	Match          bool   `json:"match"`
	LeftCanonical  string `json:"left_canonical"`
	RightCanonical string `json:"right_canonical"`
}

// handleCheck compares two codes without touching the store.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}

	left, err := knot.Parse(req.Left)
	if err != nil && !knot.IsMalformed(err) {
		respondError(w, err)
		return
	}
	right, err := knot.Parse(req.Right)
	if err != nil && !knot.IsMalformed(err) {
		respondError(w, err)
		return
	}

	resp := checkResponse{
		Relation:       req.Relation,
		LeftCanonical:  left.Canonical().String(),
		RightCanonical: right.Canonical().String(),
	}
	switch req.Relation {
	case "", "equivalent":
		resp.Relation = "equivalent"
		resp.Match = knot.DiagramEquivalent(left, right)
	case "isotopic":
		resp.Match = knot.Isotopic(left, right)
	case "mirror":
		resp.Match = knot.DiagramEquivalent(left, right.Mirror())
	default:
		respondError(w, errors.New(errors.ErrCodeInvalidQuery, "unknown relation %q", req.Relation))
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// errorJSON is the wire form of a failure.
type errorJSON struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)

	switch {
	case stderrors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, errors.ErrCodeKnotNotFound
	case stderrors.Is(err, store.ErrDuplicateName):
		status, code = http.StatusConflict, errors.ErrCodeDuplicate
	case stderrors.Is(err, store.ErrReadOnly):
		status, code = http.StatusForbidden, errors.ErrCodeReadOnly
	case code == errors.ErrCodeInvalidInput,
		code == errors.ErrCodeInvalidEncoding,
		code == errors.ErrCodeInvalidQuery,
		code == errors.ErrCodeInvalidName:
		status = http.StatusBadRequest
	case code == "":
		code = errors.ErrCodeInternal
	}

	respondJSON(w, status, errorJSON{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
