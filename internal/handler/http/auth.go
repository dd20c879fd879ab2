package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/refugiapp/refugiapp/internal/app"
	"github.com/refugiapp/refugiapp/internal/logger"
	"github.com/refugiapp/refugiapp/internal/utils"
	"github.com/refugiapp/refugiapp/models"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.services.AuthService.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "sign-up failed")
		return
	}

	h.writeSession(w, r, account, models.SignInMethodPassword, http.StatusCreated)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.services.AuthService.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "sign-in failed")
		return
	}

	h.writeSession(w, r, account, models.SignInMethodPassword, http.StatusOK)
}

func (h *Handler) federatedSignIn(w http.ResponseWriter, r *http.Request) {
	var req models.FederatedSignInRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Provider == "" {
		req.Provider = models.SignInMethodGoogle
	}

	account, err := h.services.AuthService.FederatedSignIn(r.Context(), req)
	if err != nil {
		writeError(w, r, err, "federated sign-in failed")
		return
	}

	h.writeSession(w, r, account, req.Provider, http.StatusOK)
}

func (h *Handler) signInMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.services.AuthService.SignInMethods(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeError(w, r, err, "sign-in methods lookup failed")
		return
	}
	if methods == nil {
		methods = []models.SignInMethod{}
	}

	utils.WriteJSON(w, models.SignInMethodsResponse{Methods: methods}, http.StatusOK)
}

func (h *Handler) requestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.services.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err, "password reset request failed")
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) confirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordResetConfirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.services.AuthService.ConfirmPasswordReset(r.Context(), req); err != nil {
		writeError(w, r, err, "password reset confirmation failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeSession issues a session token for account and answers with the
// identity the client shows.
func (h *Handler) writeSession(w http.ResponseWriter, r *http.Request, account models.Account, provider models.SignInMethod, status int) {
	token, err := h.services.AuthService.CreateToken(r.Context(), account)
	if err != nil {
		writeError(w, r, err, "creation of token failed")
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", account.UserID).Str("provider", string(provider)).Msg("session issued")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.Identity{
		ID:          strconv.FormatInt(account.UserID, 10),
		Email:       account.Email,
		DisplayName: account.DisplayName,
		PhotoURL:    account.PhotoURL,
		Provider:    provider,
	}, status)
}

// decodeJSON reads the request body into v. On failure it answers 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return false
	}
	return true
}
