package identity

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"pet-health-records/internal/httputil"
	"pet-health-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const maxPayloadBytes = 1 << 20

// Signature headers sent with every delivery.
const (
	HeaderID        = "svix-id"
	HeaderTimestamp = "svix-timestamp"
	HeaderSignature = "svix-signature"
)

// SignatureVerifier checks a delivery against the shared webhook secret.
type SignatureVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

// RegisterRoutes mounts the webhook under both its neutral and provider
// names. mw wraps only the webhook routes (rate limiting).
func RegisterRoutes(r chi.Router, svc *Service, verifier SignatureVerifier, log logger.Logger, mw ...func(http.Handler) http.Handler) {
	if log == nil {
		log = logger.Nop()
	}
	h := webhookHandler(svc, verifier, log)
	r.Group(func(wr chi.Router) {
		wr.Use(mw...)
		wr.Post("/webhooks/identity", h)
		wr.Post("/webhooks/clerk", h)
	})
}

// webhookHandler godoc
// @Summary Identity provider webhook
// @Description Verifies a signed user.created / user.updated / user.deleted delivery and mirrors it into the local user projection. Non-2xx responses are retried by the sender.
// @Tags webhooks
// @Accept json
// @Param svix-id header string true "Delivery id"
// @Param svix-timestamp header string true "Unix timestamp of the delivery"
// @Param svix-signature header string true "Signature list (v1,<base64>)"
// @Success 200 "empty body"
// @Failure 400 {object} httputil.ErrorResponse
// @Failure 429 {object} httputil.ErrorResponse
// @Failure 500 {object} httputil.ErrorResponse
// @Router /webhooks/identity [post]
func webhookHandler(svc *Service, verifier SignatureVerifier, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, h := range []string{HeaderID, HeaderTimestamp, HeaderSignature} {
			if strings.TrimSpace(r.Header.Get(h)) == "" {
				httputil.RespondErrorWithCode(w, "missing signature headers", httputil.CodeInvalidSignature, http.StatusBadRequest)
				return
			}
		}

		if verifier == nil {
			log.Error("webhook received but no signing secret is configured", nil)
			httputil.RespondError(w, "webhook verification not configured", http.StatusServiceUnavailable)
			return
		}

		payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
		if err != nil {
			httputil.RespondError(w, "invalid payload", http.StatusBadRequest)
			return
		}

		if err := verifier.Verify(payload, r.Header); err != nil {
			log.Warn("webhook signature rejected", map[string]any{"err": err, "svix_id": r.Header.Get(HeaderID)})
			httputil.RespondErrorWithCode(w, ErrInvalidSignature.Error(), httputil.CodeInvalidSignature, http.StatusBadRequest)
			return
		}

		var evt Event
		if err := json.Unmarshal(payload, &evt); err != nil {
			httputil.RespondErrorWithCode(w, "invalid json", httputil.CodeInvalidJSON, http.StatusBadRequest)
			return
		}

		if err := svc.Handle(r.Context(), evt); err != nil {
			if errors.Is(err, ErrMalformedEvent) {
				httputil.RespondError(w, "invalid payload", http.StatusBadRequest)
				return
			}
			log.Error("failed to sync user", map[string]any{"err": err, "event": evt.Type})
			httputil.RespondError(w, "failed to sync user", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
