package pets

import (
	"encoding/json"
	"errors"
	"net/http"

	"pet-health-records/internal/httputil"
	"pet-health-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// listPetsHandler godoc
// @Summary List my pets
// @Description Every pet owned by the caller, newest first.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Success 200 {array} petResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse "user not found"
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			WriteError(w, err, "failed to fetch pets")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httputil.RespondJSON(w, out, http.StatusOK)
	}
}

// createPetHandler godoc
// @Summary Create pet
// @Description Creates a pet owned by the caller. weight accepts a number or a numeric string; birthDate accepts YYYY-MM-DD or RFC3339.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param payload body petRequest true "Pet fields"
// @Success 200 {object} petResponse
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse "user not found"
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.RespondErrorWithCode(w, "invalid json: "+err.Error(), httputil.CodeInvalidJSON, http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, req.toInput())
		if err != nil {
			WriteError(w, err, "failed to create pet")
			return
		}
		httputil.RespondJSON(w, toPetResponse(p), http.StatusOK)
	}
}

// getPetHandler godoc
// @Summary Get pet
// @Description A pet owned by someone else is reported as not found.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param petID path string true "Pet ID"
// @Success 200 {object} petResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		p, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "petID"))
		if err != nil {
			WriteError(w, err, "failed to fetch pet")
			return
		}
		httputil.RespondJSON(w, toPetResponse(p), http.StatusOK)
	}
}

// updatePetHandler godoc
// @Summary Update pet
// @Description Full replacement: optional fields left out of the body are stored as null (isNeutered as false).
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param petID path string true "Pet ID"
// @Param payload body petRequest true "Pet fields"
// @Success 200 {object} petResponse
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.RespondErrorWithCode(w, "invalid json: "+err.Error(), httputil.CodeInvalidJSON, http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "petID"), req.toInput())
		if err != nil {
			WriteError(w, err, "failed to update pet")
			return
		}
		httputil.RespondJSON(w, toPetResponse(p), http.StatusOK)
	}
}

// deletePetHandler godoc
// @Summary Delete pet
// @Description Deletes the pet and every health record attached to it.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param petID path string true "Pet ID"
// @Success 200 {object} deleteResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		if err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "petID")); err != nil {
			WriteError(w, err, "failed to delete pet")
			return
		}
		httputil.RespondJSON(w, deleteResponse{Success: true}, http.StatusOK)
	}
}

// WriteError maps service errors to a status and JSON body. Modules that
// check pet ownership through the service reuse it.
func WriteError(w http.ResponseWriter, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httputil.RespondErrorWithCode(w, verr.Message, httputil.CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeValidationFailed, http.StatusBadRequest)
	case errors.Is(err, ErrUserNotFound):
		httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
	case errors.Is(err, ErrNotFound):
		httputil.RespondErrorWithCode(w, "pet not found", httputil.CodeNotFound, http.StatusNotFound)
	default:
		httputil.RespondError(w, fallback, http.StatusInternalServerError)
	}
}
