package devstore

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/docsession/internal/client/models"
	"github.com/dmitrijs2005/docsession/internal/common"
	"github.com/dmitrijs2005/docsession/internal/logging"
)

const collectionPath = "/databases/{db}/collections/{coll}"

type Handler struct {
	store  *Store
	apiKey string
	log    logging.Logger
}

// NewHandler serves store over HTTP. Requests whose apiKey does not equal
// apiKey are rejected with 401.
func NewHandler(store *Store, apiKey string, log logging.Logger) *Handler {
	return &Handler{store: store, apiKey: apiKey, log: log}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.requireAPIKey)

	r.Get(collectionPath, h.Find)
	r.With(middleware.AllowContentType("application/json")).Post(collectionPath, h.Insert)
	r.With(middleware.AllowContentType("application/json")).Put(collectionPath, h.Update)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w,
			http.StatusText(http.StatusMethodNotAllowed),
			http.StatusMethodNotAllowed)
	})
	return r
}

func (h *Handler) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get(common.APIKeyParam) != h.apiKey {
			h.log.Warn(r.Context(), "rejected request with bad api key",
				"path", r.URL.Path, "request_id", r.Header.Get(common.RequestIDHeaderName))
			http.Error(w, `{"message":"Please provide a valid API key."}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	db, coll := chi.URLParam(r, "db"), chi.URLParam(r, "coll")

	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("c") == "true":
		h.writeJSON(w, r, http.StatusOK, h.store.Count(db, coll, filter))
	case q.Get("fo") == "true":
		doc, err := h.store.FindOne(db, coll, filter)
		if errors.Is(err, common.ErrorNotFound) {
			h.writeJSON(w, r, http.StatusOK, nil)
			return
		}
		h.writeJSON(w, r, http.StatusOK, doc)
	default:
		docs := h.store.Find(db, coll, filter)
		if docs == nil {
			docs = []models.Record{}
		}
		h.writeJSON(w, r, http.StatusOK, docs)
	}
}

func (h *Handler) Insert(w http.ResponseWriter, r *http.Request) {
	var doc models.Record
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil || doc == nil {
		http.Error(w, "request body must be a JSON object", http.StatusBadRequest)
		return
	}

	stored := h.store.Insert(chi.URLParam(r, "db"), chi.URLParam(r, "coll"), doc)
	h.log.Info(r.Context(), "document inserted", "id", stored.ID(),
		"request_id", r.Header.Get(common.RequestIDHeaderName))
	h.writeJSON(w, r, http.StatusOK, stored)
}

type updateBody struct {
	Set models.Record `json:"$set"`
}

type updateResult struct {
	N        int  `json:"n"`
	Upserted bool `json:"upserted"`
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body updateBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Set == nil {
		http.Error(w, `request body must be {"$set": {...}}`, http.StatusBadRequest)
		return
	}

	n, upserted, err := h.store.Update(chi.URLParam(r, "db"), chi.URLParam(r, "coll"),
		filter, body.Set, r.URL.Query().Get("u") == "true")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeJSON(w, r, http.StatusOK, updateResult{N: n, Upserted: upserted})
}

var errBadFilter = errors.New("q must be a JSON object")

func parseFilter(r *http.Request) (models.Record, error) {
	raw := r.URL.Query().Get("q")
	if raw == "" {
		return models.Record{}, nil
	}
	var filter models.Record
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, errBadFilter
	}
	return filter, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error(r.Context(), "failed to write response", "error", err)
	}
}
