package http

import (
	"net/http"

	"github.com/secmon-lab/notepad/pkg/domain/model/auth"
	"github.com/secmon-lab/notepad/pkg/usecase"
	"github.com/secmon-lab/notepad/pkg/utils/logging"
)

// authMiddleware validates the session cookies and puts the token into the request context
func authMiddleware(accountUC AccountUseCase) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			unauthorized := errorResponse{Error: usecase.ErrUnauthenticated.Error()}

			tokenID, err := r.Cookie(tokenIDCookie)
			if err != nil {
				writeJSON(r.Context(), w, http.StatusUnauthorized, unauthorized)
				return
			}

			tokenSecret, err := r.Cookie(tokenSecretCookie)
			if err != nil {
				writeJSON(r.Context(), w, http.StatusUnauthorized, unauthorized)
				return
			}

			token, err := accountUC.ValidateToken(r.Context(), auth.TokenID(tokenID.Value), auth.TokenSecret(tokenSecret.Value))
			if err != nil {
				logging.From(r.Context()).Debug("session rejected", "error", err)
				writeUseCaseError(w, r, err)
				return
			}

			ctx := auth.ContextWithToken(r.Context(), token)
			ctx = logging.With(ctx, logging.From(ctx).With("user_id", token.UserID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
