package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-health-records/internal/domain/pets"
	"pet-health-records/internal/httputil"
	"pet-health-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}/records", func(rr chi.Router) {
		rr.Get("/", listRecordsHandler(svc))
		rr.Post("/", createRecordHandler(svc))
		rr.Post("/{recordID}/void", voidRecordHandler(svc))
	})
}

// createRecordRequest is the body of POST /pets/{petID}/records.
type createRecordRequest struct {
	Type       RecordType `json:"type" enums:"VET_VISIT,VACCINE,MEDICATION,LAB_RESULT,DEWORMING,FLEA_TREATMENT,WEIGHT,NOTE"`
	OccurredAt string     `json:"occurredAt" example:"2026-02-01T10:00:00Z"` // RFC3339
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
}

type recordResponse struct {
	ID         string     `json:"id"`
	PetID      string     `json:"petId"`
	Type       RecordType `json:"type"`
	OccurredAt time.Time  `json:"occurredAt"`
	RecordedAt time.Time  `json:"recordedAt"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes"`
	CreatedBy  string     `json:"createdBy"`
	Status     Status     `json:"status"`
}

// createRecordHandler godoc
// @Summary Add health record
// @Description Adds a record to a pet the caller owns.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param petID path string true "Pet ID"
// @Param payload body createRecordRequest true "Record; occurredAt in RFC3339"
// @Success 201 {object} recordResponse
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse "user or pet not found"
// @Router /pets/{petID}/records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.RespondErrorWithCode(w, "invalid json", httputil.CodeInvalidJSON, http.StatusBadRequest)
			return
		}

		occurred, err := time.Parse(time.RFC3339, strings.TrimSpace(req.OccurredAt))
		if err != nil {
			httputil.RespondErrorWithCode(w, "occurredAt must be RFC3339", httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), claims.UserID, chi.URLParam(r, "petID"), CreateInput{
			Type:       RecordType(strings.ToUpper(strings.TrimSpace(string(req.Type)))),
			OccurredAt: occurred,
			Title:      req.Title,
			Notes:      req.Notes,
		})
		if err != nil {
			writeError(w, err, "failed to create record")
			return
		}
		httputil.RespondJSON(w, toRecordResponse(rec), http.StatusCreated)
	}
}

// listRecordsHandler godoc
// @Summary List health records
// @Description Records of a pet the caller owns, newest first. Filters by type, occurredAt range and free text.
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param petID path string true "Pet ID"
// @Param limit query int false "1-200, default 50"
// @Param types query string false "CSV of record types (e.g. VACCINE,DEWORMING)"
// @Param from query string false "Minimum occurredAt (RFC3339)"
// @Param to query string false "Maximum occurredAt (RFC3339)"
// @Param q query string false "Free text over title and notes"
// @Success 200 {array} recordResponse
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets/{petID}/records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		filter, err := parseListFilter(r)
		if err != nil {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID, chi.URLParam(r, "petID"), filter)
		if err != nil {
			writeError(w, err, "failed to fetch records")
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httputil.RespondJSON(w, out, http.StatusOK)
	}
}

// voidRecordHandler godoc
// @Summary Void a health record
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param petID path string true "Pet ID"
// @Param recordID path string true "Record ID"
// @Success 200 {object} recordResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Failure 409 {object} httputil.ErrorResponse "already voided"
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets/{petID}/records/{recordID}/void [post]
func voidRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		rec, err := svc.Void(r.Context(), claims.UserID, chi.URLParam(r, "petID"), chi.URLParam(r, "recordID"))
		if err != nil {
			writeError(w, err, "failed to void record")
			return
		}
		httputil.RespondJSON(w, toRecordResponse(rec), http.StatusOK)
	}
}

func writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondErrorWithCode(w, "type, title and occurredAt are required", httputil.CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "record not found", httputil.CodeNotFound, http.StatusNotFound)
	case errors.Is(err, ErrAlreadyVoided):
		httputil.RespondError(w, err.Error(), http.StatusConflict)
	default:
		pets.WriteError(w, err, fallback)
	}
}

func parseListFilter(r *http.Request) (ListFilter, error) {
	q := r.URL.Query()
	filter := ListFilter{Limit: DefaultListLimit}

	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= MaxListLimit {
			filter.Limit = n
		}
	}

	if v := strings.TrimSpace(q.Get("types")); v != "" {
		for _, part := range strings.Split(v, ",") {
			t := RecordType(strings.ToUpper(strings.TrimSpace(part)))
			if t == "" {
				continue
			}
			if !t.Valid() {
				return ListFilter{}, errors.New("unknown record type " + string(t))
			}
			filter.Types = append(filter.Types, t)
		}
	}

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("from must be RFC3339")
		}
		filter.From = &t
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ListFilter{}, errors.New("to must be RFC3339")
		}
		filter.To = &t
	}

	filter.Query = strings.TrimSpace(q.Get("q"))
	return filter, nil
}

func toRecordResponse(rec Record) recordResponse {
	return recordResponse{
		ID:         rec.ID,
		PetID:      rec.PetID,
		Type:       rec.Type,
		OccurredAt: rec.OccurredAt,
		RecordedAt: rec.RecordedAt,
		Title:      rec.Title,
		Notes:      rec.Notes,
		CreatedBy:  rec.CreatedBy,
		Status:     rec.Status,
	}
}
