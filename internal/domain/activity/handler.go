package activity

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pet-health-records/internal/domain/users"
	"pet-health-records/internal/httputil"
	"pet-health-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service) {
	r.Get("/me/activity", listMyActivityHandler(svc, usersSvc))
}

type entryResponse struct {
	ID         string            `json:"id"`
	Action     Action            `json:"action"`
	EntityType EntityType        `json:"entityType"`
	EntityID   string            `json:"entityId"`
	Metadata   map[string]string `json:"metadata"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// listMyActivityHandler godoc
// @Summary My activity
// @Description Audit entries written by the caller's pet and record mutations, newest first.
// @Tags activity
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Param limit query int false "1-200, default 50"
// @Success 200 {array} entryResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /me/activity [get]
func listMyActivityHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		u, err := usersSvc.Resolve(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				httputil.RespondErrorWithCode(w, "user not found", httputil.CodeUserNotFound, http.StatusNotFound)
				return
			}
			httputil.RespondError(w, "failed to fetch activity", http.StatusInternalServerError)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		items, err := svc.ListByUser(r.Context(), u.ID, limit)
		if err != nil {
			httputil.RespondError(w, "failed to fetch activity", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			md := map[string]string(e.Metadata)
			if md == nil {
				md = map[string]string{}
			}
			out = append(out, entryResponse{
				ID:         e.ID,
				Action:     e.Action,
				EntityType: e.EntityType,
				EntityID:   e.EntityID,
				Metadata:   md,
				CreatedAt:  e.CreatedAt,
			})
		}
		httputil.RespondJSON(w, out, http.StatusOK)
	}
}
