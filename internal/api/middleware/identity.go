package middleware

import (
	"context"
	"net/http"

	"github.com/ba3ai/clarus-backend/internal/api/response"
	"github.com/ba3ai/clarus-backend/internal/service"
	"github.com/ba3ai/clarus-backend/internal/validation"
)

type contextKey string

const (
	// CallerIDKey holds the authenticated investor ID for the request.
	CallerIDKey contextKey = "callerID"
	// EffectiveIDKey holds the investor ID the request acts on behalf of,
	// after view-as resolution.
	EffectiveIDKey contextKey = "effectiveID"
)

// CallerID returns the authenticated investor ID stored on the request context.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(CallerIDKey).(string)
	return id
}

// EffectiveID returns the resolved view-as investor ID stored on the request context.
// Falls back to the caller ID when no resolution happened.
func EffectiveID(ctx context.Context) string {
	if id, ok := ctx.Value(EffectiveIDKey).(string); ok && id != "" {
		return id
	}
	return CallerID(ctx)
}

// Identity requires the X-Investor-ID header on every request and stores it
// on the context as the caller ID. Returns 401 if the header is missing or
// not a valid UUID.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callerID := r.Header.Get("X-Investor-ID")
		if callerID == "" {
			response.RespondError(w, http.StatusUnauthorized, "X-Investor-ID header is required", "")
			return
		}
		if err := validation.ValidateUUID(callerID); err != nil {
			response.RespondError(w, http.StatusUnauthorized, "invalid investor identity", err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), CallerIDKey, callerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ViewAs resolves which investor the request acts on behalf of and stores the
// result on the context. An explicit selection comes from the X-View-As-Investor
// header or the investor query parameter, with the header taking precedence.
// Without an explicit selection the resolution falls back to the caller's
// remembered choice, or to the caller itself.
func ViewAs(viewAsService *service.ViewAsService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID := CallerID(r.Context())

			explicitID := r.Header.Get("X-View-As-Investor")
			if explicitID == "" {
				explicitID = r.URL.Query().Get("investor")
			}
			if explicitID != "" {
				if err := validation.ValidateUUID(explicitID); err != nil {
					response.RespondError(w, http.StatusBadRequest, "invalid investor selection", err.Error())
					return
				}
			}

			effectiveID, err := viewAsService.ResolveInvestor(callerID, explicitID)
			if err != nil {
				response.RespondError(w, http.StatusInternalServerError, "failed to resolve investor selection", err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), EffectiveIDKey, effectiveID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
