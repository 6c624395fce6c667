package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ba3ai/clarus-backend/internal/api/middleware"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

func TestIdentity(t *testing.T) {
	t.Run("stores the caller ID on the context", func(t *testing.T) {
		callerID := testutil.MakeID()
		var seenID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenID = middleware.CallerID(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		mw := middleware.Identity(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Investor-ID", callerID)

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if seenID != callerID {
			t.Errorf("Expected caller ID %s on the context, got %s", callerID, seenID)
		}
	})

	t.Run("returns 401 when the header is missing", func(t *testing.T) {
		handlerCalled := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		})

		mw := middleware.Identity(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if handlerCalled {
			t.Error("Expected next handler NOT to be called")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("returns 401 when the header is not a UUID", func(t *testing.T) {
		handlerCalled := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			handlerCalled = true
		})

		mw := middleware.Identity(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Investor-ID", "not-a-uuid")

		w := httptest.NewRecorder()
		mw.ServeHTTP(w, req)

		if handlerCalled {
			t.Error("Expected next handler NOT to be called")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func TestViewAs(t *testing.T) {
	// The middleware chain is Identity then ViewAs, so each case sends the
	// caller through both.
	serveChain := func(t *testing.T, req *http.Request, viewAs func(http.Handler) http.Handler) (string, int) {
		t.Helper()

		var effectiveID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			effectiveID = middleware.EffectiveID(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		w := httptest.NewRecorder()
		middleware.Identity(viewAs(next)).ServeHTTP(w, req)
		return effectiveID, w.Code
	}

	t.Run("defaults to the caller", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		viewAs := middleware.ViewAs(testutil.NewTestViewAsService(t, db))

		caller := testutil.NewInvestor().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Investor-ID", caller.ID)

		effectiveID, code := serveChain(t, req, viewAs)
		if code != http.StatusOK {
			t.Errorf("Expected 200, got %d", code)
		}
		if effectiveID != caller.ID {
			t.Errorf("Expected effective ID %s, got %s", caller.ID, effectiveID)
		}
	})

	t.Run("honors the view-as header", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		viewAs := middleware.ViewAs(testutil.NewTestViewAsService(t, db))

		caller := testutil.NewInvestor().Build(t, db)
		target := testutil.NewInvestor().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Investor-ID", caller.ID)
		req.Header.Set("X-View-As-Investor", target.ID)

		effectiveID, code := serveChain(t, req, viewAs)
		if code != http.StatusOK {
			t.Errorf("Expected 200, got %d", code)
		}
		if effectiveID != target.ID {
			t.Errorf("Expected effective ID %s, got %s", target.ID, effectiveID)
		}
	})

	t.Run("falls back to the investor query parameter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		viewAs := middleware.ViewAs(testutil.NewTestViewAsService(t, db))

		caller := testutil.NewInvestor().Build(t, db)
		target := testutil.NewInvestor().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/test?investor="+target.ID, nil)
		req.Header.Set("X-Investor-ID", caller.ID)

		effectiveID, code := serveChain(t, req, viewAs)
		if code != http.StatusOK {
			t.Errorf("Expected 200, got %d", code)
		}
		if effectiveID != target.ID {
			t.Errorf("Expected effective ID %s, got %s", target.ID, effectiveID)
		}
	})

	t.Run("returns 400 for a malformed explicit selection", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		viewAs := middleware.ViewAs(testutil.NewTestViewAsService(t, db))

		caller := testutil.NewInvestor().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Investor-ID", caller.ID)
		req.Header.Set("X-View-As-Investor", "not-a-uuid")

		_, code := serveChain(t, req, viewAs)
		if code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", code)
		}
	})
}
