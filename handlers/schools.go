package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"schoolapi/db"
	"schoolapi/errs"
	"schoolapi/geo"
	"schoolapi/metrics"
	"schoolapi/models"
)

const (
	msgFieldsRequired = "All fields are required"
	msgInvalidNumbers = "Latitude and Longitude must be valid numbers"
	msgQueryRequired  = "Query parameters 'latitude' and 'longitude' are required"
	msgInvalidJSON    = "Invalid JSON body"
)

type Handler struct {
	store    db.Store
	log      *zap.Logger
	validate *validator.Validate
}

func New(store db.Store, log *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		log:      log.Named("handlers"),
		validate: validator.New(),
	}
}

// AddSchoolRequest keeps coordinates raw: clients send them as JSON numbers
// or strings, and an explicit null has to be told apart from a missing key.
type AddSchoolRequest struct {
	Name      string          `json:"name" validate:"required"`
	Address   string          `json:"address" validate:"required"`
	Latitude  json.RawMessage `json:"latitude" validate:"required"`
	Longitude json.RawMessage `json:"longitude" validate:"required"`
}

type AddSchoolResponse struct {
	Message   string  `json:"message"`
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *Handler) parseAddSchool(req AddSchoolRequest) (models.NewSchool, error) {
	if err := h.validate.Struct(req); err != nil {
		return models.NewSchool{}, errs.Validation(msgFieldsRequired)
	}

	lat, latErr := parseRawCoordinate(req.Latitude)
	lon, lonErr := parseRawCoordinate(req.Longitude)
	if latErr != nil || lonErr != nil {
		return models.NewSchool{}, errs.Validation(msgInvalidNumbers)
	}

	return models.NewSchool{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

// parseRawCoordinate decodes a present coordinate. null decodes to nil,
// which ParseCoordinate rejects as not a number.
func parseRawCoordinate(raw json.RawMessage) (float64, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	return geo.ParseCoordinate(v)
}

func (h *Handler) AddSchool(w http.ResponseWriter, r *http.Request) {
	var req AddSchoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, errs.Validation(msgInvalidJSON))
		return
	}

	school, err := h.parseAddSchool(req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id, err := h.store.InsertSchool(r.Context(), school)
	if err != nil {
		h.writeError(w, r, errs.Internal(err))
		return
	}
	metrics.SchoolsAdded.Inc()

	h.respond(w, r, http.StatusCreated, AddSchoolResponse{
		Message:   "School added successfully",
		ID:        id,
		Name:      school.Name,
		Address:   school.Address,
		Latitude:  school.Latitude,
		Longitude: school.Longitude,
	})
}

// ListSchool returns the stored rows as they are, unsorted.
func (h *Handler) ListSchool(w http.ResponseWriter, r *http.Request) {
	schools, err := h.store.ListSchools(r.Context())
	if err != nil {
		h.writeError(w, r, errs.Internal(err))
		return
	}
	h.respond(w, r, http.StatusOK, schools)
}

func parseOrigin(r *http.Request) (geo.Point, error) {
	q := r.URL.Query()
	if !q.Has("latitude") || !q.Has("longitude") {
		return geo.Point{}, errs.Validation(msgQueryRequired)
	}

	lat, latErr := geo.ParseCoordinateString(q.Get("latitude"))
	lon, lonErr := geo.ParseCoordinateString(q.Get("longitude"))
	if latErr != nil || lonErr != nil {
		return geo.Point{}, errs.Validation(msgInvalidNumbers)
	}
	return geo.Point{Lat: lat, Lon: lon}, nil
}

// ListSchools returns every school with its distance from the query point,
// nearest first.
func (h *Handler) ListSchools(w http.ResponseWriter, r *http.Request) {
	origin, err := parseOrigin(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	schools, err := h.store.ListSchools(r.Context())
	if err != nil {
		h.writeError(w, r, errs.Internal(err))
		return
	}
	metrics.ProximityQueries.Inc()

	h.respond(w, r, http.StatusOK, geo.Rank(origin, schools))
}
