package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/pkg/authsdk"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type VerificationHandler struct {
	VerificationService *service.VerificationService
}

// ServeHTTP generates or redeems an email verification code.
//
//	@Summary		Email verification code
//	@Description	action=generate issues a six digit code for email, valid for 10 minutes, replacing any earlier one. The code is returned so the caller can deliver it.
//	@Description	action=verify redeems the code. A code works once.
//	@Tags			Verification
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerificationRequest		true	"Action, email and code"
//	@Success		200		{object}	authsdk.VerificationResponse
//	@Failure		400		{object}	authsdk.ErrorResponse	"Missing field, unknown action, or wrong, expired or missing code"
//	@Router			/v1/verification [post].
func (h *VerificationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerificationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	switch req.Action {
	case authsdk.VerificationGenerate:
		vc, err := h.VerificationService.Generate(r.Context(), req.Email)
		if err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, authsdk.VerificationResponse{
			Success:   true,
			Message:   "verification code generated",
			Code:      vc.Code,
			ExpiresAt: &vc.ExpiresAt,
		})

	case authsdk.VerificationVerify:
		if err := h.VerificationService.Verify(r.Context(), req.Email, req.Code); err != nil {
			writeError(w, r, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, authsdk.VerificationResponse{
			Success: true,
			Message: "email verified",
		})

	default:
		writeError(w, r, domain.ErrUnknownVerification)
	}
}
