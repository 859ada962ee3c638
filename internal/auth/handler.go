package auth

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
)

type ServiceAPI interface {
	SignUp(ctx context.Context, dto SignUpDTO) (*AuthResult, error)
	SignIn(ctx context.Context, dto SignInDTO) (*AuthResult, error)
	RefreshTokens(ctx context.Context, dto RefreshTokenDTO) (*AuthTokens, error)
	Authenticate(ctx context.Context, accessToken string) (int64, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var dto SignUpDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.SignUp(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"userId":  result.User.ID,
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var dto SignInDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.SignIn(r.Context(), dto)
	if err != nil {
		h.Log(r).Info("sign in rejected", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Sign in successful",
		"user":    result.User,
		"token":   result.Token,
	})
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteSuccess(w, http.StatusOK, map[string]interface{}{"token": tokens})
}

// AuthMiddleware rejects requests without a valid access token and stores the caller's
// user id in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.Service.Authenticate(r.Context(), h.ExtractTokenFromHeader(r))
		if err != nil {
			h.Log(r).Warn("auth middleware: request rejected", "path", r.URL.Path, "error", err)
			h.HandleServiceError(w, err)
			return
		}

		ctx := internal.ContextWithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
