package users

import (
	"errors"
	"net/http"
	"time"

	"pet-health-records/internal/httputil"
	"pet-health-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/me", meHandler(svc))
}

// userResponse is the caller's projection as returned by the API.
type userResponse struct {
	ID                 string             `json:"id"`
	ExternalID         string             `json:"externalId"`
	Email              string             `json:"email"`
	Name               *string            `json:"name"`
	AvatarURL          *string            `json:"avatarUrl"`
	Phone              *string            `json:"phone"`
	Timezone           string             `json:"timezone"`
	Location           *string            `json:"location"`
	EmergencyContact   *string            `json:"emergencyContact"`
	PreferredVet       *string            `json:"preferredVet"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	AICredits          int                `json:"aiCredits"`
	TrialStartsAt      *time.Time         `json:"trialStartsAt"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// meHandler godoc
// @Summary Current user
// @Description Returns the local projection of the signed-in user. 404 means identity sync has not created the row yet.
// @Tags users
// @Produce json
// @Param X-Debug-User-ID header string false "Dev mode only: identity reference"
// @Param Authorization header string false "Bearer session token"
// @Success 200 {object} userResponse
// @Failure 401 {object} httputil.ErrorResponse
// @Failure 404 {object} httputil.ErrorResponse
// @Router /me [get]
func meHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httputil.Unauthenticated(w)
			return
		}

		u, err := svc.Resolve(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httputil.RespondJSON(w, httputil.ErrorResponse{
					Error:   "user not found",
					Code:    httputil.CodeUserNotFound,
					Message: "identity sync has not run yet",
				}, http.StatusNotFound)
				return
			}
			httputil.RespondError(w, "failed to fetch user", http.StatusInternalServerError)
			return
		}

		httputil.RespondJSON(w, toUserResponse(u), http.StatusOK)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:                 u.ID,
		ExternalID:         u.ExternalID,
		Email:              u.Email,
		Name:               u.Name,
		AvatarURL:          u.AvatarURL,
		Phone:              u.Phone,
		Timezone:           u.Timezone,
		Location:           u.Location,
		EmergencyContact:   u.EmergencyContact,
		PreferredVet:       u.PreferredVet,
		SubscriptionStatus: u.SubscriptionStatus,
		AICredits:          u.AICredits,
		TrialStartsAt:      u.TrialStartsAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}
