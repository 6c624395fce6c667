package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ba3ai/clarus-backend/internal/api/handlers"
	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// TestInvitationHandler_AcceptInvitation tests the public token redemption
// endpoint.
//
// WHY: Accept is the only unauthenticated write endpoint, so the status
// codes it returns for bad, expired, and reused tokens are part of the
// public contract.
func TestInvitationHandler_AcceptInvitation(t *testing.T) {
	postAccept := func(t *testing.T, handler *handlers.InvitationHandler, token string) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(map[string]string{"token": token})
		req := httptest.NewRequest(http.MethodPost, "/api/invitations/accept", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.AcceptInvitation(w, req)
		return w
	}

	t.Run("returns 200 with the accepted invitation", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)
		handler := handlers.NewInvitationHandler(svc)

		issued, err := svc.CreateInvitation(request.CreateInvitationRequest{Email: testutil.MakeEmail()})
		if err != nil {
			t.Fatalf("CreateInvitation() returned unexpected error: %v", err)
		}

		// Execute
		w := postAccept(t, handler, issued.Token)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var accepted model.Invitation
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&accepted)

		if accepted.Status != "accepted" {
			t.Errorf("Expected status accepted, got %q", accepted.Status)
		}
		if accepted.AcceptedAt == nil {
			t.Error("Expected an acceptance timestamp")
		}
	})

	t.Run("returns 401 for a tampered token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvitationHandler(testutil.NewTestInvitationService(t, db))

		w := postAccept(t, handler, "not-a-fernet-token")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 410 for a reused token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)
		handler := handlers.NewInvitationHandler(svc)

		issued, err := svc.CreateInvitation(request.CreateInvitationRequest{Email: testutil.MakeEmail()})
		if err != nil {
			t.Fatalf("CreateInvitation() returned unexpected error: %v", err)
		}
		if _, err := svc.AcceptInvitation(request.AcceptInvitationRequest{Token: issued.Token}); err != nil {
			t.Fatalf("AcceptInvitation() returned unexpected error: %v", err)
		}

		w := postAccept(t, handler, issued.Token)

		if w.Code != http.StatusGone {
			t.Errorf("Expected 410, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a missing token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvitationHandler(testutil.NewTestInvitationService(t, db))

		w := postAccept(t, handler, "")

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

// TestInvitationHandler_CreateInvitation tests invitation issuance.
func TestInvitationHandler_CreateInvitation(t *testing.T) {
	t.Run("returns 201 with the sealed token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvitationHandler(testutil.NewTestInvitationService(t, db))

		body := []byte(`{"email":"new@example.com"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/invitations", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.CreateInvitation(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var invitation model.Invitation
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&invitation)

		if invitation.Token == "" {
			t.Error("Expected a sealed token in the response")
		}
		if invitation.Status != "pending" {
			t.Errorf("Expected status pending, got %q", invitation.Status)
		}
	})

	t.Run("returns 400 when the target investor does not exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewInvitationHandler(testutil.NewTestInvitationService(t, db))

		body := []byte(`{"email":"new@example.com","investorId":"` + testutil.MakeID() + `"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/invitations", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.CreateInvitation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
