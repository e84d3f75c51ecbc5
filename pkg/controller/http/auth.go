package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
	"github.com/secmon-lab/notepad/pkg/usecase"
	"github.com/secmon-lab/notepad/pkg/utils/errutil"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

type AccountUseCase = usecase.AccountUseCaseInterface

const (
	tokenIDCookie     = "token_id"
	tokenSecretCookie = "token_secret"

	maxRequestBytes = 64 << 10
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password" masq:"secret"`
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// decodeJSON reads a JSON request body into v; it writes the 400 response itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		logging.From(r.Context()).Debug("malformed request body", "path", r.URL.Path, "error", err)
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeUseCaseError maps use case errors to a status and a message safe for the client
func writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *usecase.InputError
	switch {
	case errors.As(err, &inputErr):
		writeJSON(r.Context(), w, http.StatusBadRequest, errorResponse{Error: inputErr.Message})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: usecase.ErrInvalidCredentials.Error()})
	case errors.Is(err, usecase.ErrUnauthenticated):
		writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{Error: usecase.ErrUnauthenticated.Error()})
	case errors.Is(err, usecase.ErrUsernameTaken):
		writeJSON(r.Context(), w, http.StatusConflict, errorResponse{Error: usecase.ErrUsernameTaken.Error()})
	case errors.Is(err, usecase.ErrNoteNotFound):
		writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Error: usecase.ErrNoteNotFound.Error()})
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func sessionCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  expires,
	}
}

func clearCookie(r *http.Request, name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}

// registerHandler creates an account; the caller has to log in afterwards
func registerHandler(accountUC AccountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if _, err := accountUC.Register(r.Context(), req.Username, req.Password); err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusCreated, successResponse{Success: true})
	}
}

// loginHandler opens a session and hands it out as two HttpOnly cookies
func loginHandler(accountUC AccountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentialsRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, err := accountUC.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, usecase.ErrInvalidCredentials) {
				logging.From(r.Context()).Info("login rejected", "username", req.Username)
			}
			writeUseCaseError(w, r, err)
			return
		}

		http.SetCookie(w, sessionCookie(r, tokenIDCookie, token.ID.String(), token.ExpiresAt))
		http.SetCookie(w, sessionCookie(r, tokenSecretCookie, token.Secret.String(), token.ExpiresAt))

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}

// logoutHandler handles user logout
func logoutHandler(accountUC AccountUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Get token ID from cookie
		if c, err := r.Cookie(tokenIDCookie); err == nil {
			tokenID := auth.TokenID(c.Value)
			if tokenID.Validate() == nil {
				if err := accountUC.Logout(r.Context(), tokenID); err != nil {
					errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to logout"), http.StatusInternalServerError)
					return
				}
			}
		}

		http.SetCookie(w, clearCookie(r, tokenIDCookie))
		http.SetCookie(w, clearCookie(r, tokenSecretCookie))

		writeJSON(r.Context(), w, http.StatusOK, successResponse{Success: true})
	}
}
