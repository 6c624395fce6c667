package service_test

import (
	"errors"
	"testing"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// TestInvitationService_Lifecycle tests the issue/accept token round-trip.
//
// WHY: Invitation links are the only unauthenticated entry point into the
// platform. The sealed token must round-trip back to its invitation, a
// tampered token must be rejected outright, and an invitation must only be
// acceptable once.
func TestInvitationService_Lifecycle(t *testing.T) {
	t.Run("issued token round-trips to acceptance", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)

		created, err := svc.CreateInvitation(request.CreateInvitationRequest{
			Email: "new-user@example.com",
		})
		if err != nil {
			t.Fatalf("CreateInvitation() returned unexpected error: %v", err)
		}
		if created.Status != model.InvitationPending {
			t.Errorf("Expected status pending, got %q", created.Status)
		}
		if created.Token == "" {
			t.Fatal("Expected a sealed token on the created invitation")
		}

		// Execute
		accepted, err := svc.AcceptInvitation(request.AcceptInvitationRequest{Token: created.Token})

		// Assert
		if err != nil {
			t.Fatalf("AcceptInvitation() returned unexpected error: %v", err)
		}
		if accepted.ID != created.ID {
			t.Errorf("Expected accepted invitation %s, got %s", created.ID, accepted.ID)
		}
		if accepted.Status != model.InvitationAccepted {
			t.Errorf("Expected status accepted, got %q", accepted.Status)
		}
		if accepted.AcceptedAt == nil {
			t.Error("Expected an acceptance timestamp")
		}
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)

		_, err := svc.AcceptInvitation(request.AcceptInvitationRequest{Token: "not-a-fernet-token"})
		if !errors.Is(err, apperrors.ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("second acceptance fails as not pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)

		created, err := svc.CreateInvitation(request.CreateInvitationRequest{
			Email: "repeat@example.com",
		})
		if err != nil {
			t.Fatalf("CreateInvitation() returned unexpected error: %v", err)
		}

		if _, err := svc.AcceptInvitation(request.AcceptInvitationRequest{Token: created.Token}); err != nil {
			t.Fatalf("first AcceptInvitation() returned unexpected error: %v", err)
		}

		_, err = svc.AcceptInvitation(request.AcceptInvitationRequest{Token: created.Token})
		if !errors.Is(err, apperrors.ErrInvitationNotPending) {
			t.Errorf("Expected ErrInvitationNotPending, got %v", err)
		}
	})

	t.Run("invitation can target an existing investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		created, err := svc.CreateInvitation(request.CreateInvitationRequest{
			Email:      "linked@example.com",
			InvestorID: &investor.ID,
		})
		if err != nil {
			t.Fatalf("CreateInvitation() returned unexpected error: %v", err)
		}

		if created.InvestorID == nil || *created.InvestorID != investor.ID {
			t.Errorf("Expected invitation linked to investor %s, got %v", investor.ID, created.InvestorID)
		}
	})

	t.Run("delete revokes the invitation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestInvitationService(t, db)

		created, err := svc.CreateInvitation(request.CreateInvitationRequest{
			Email: "gone@example.com",
		})
		if err != nil {
			t.Fatalf("CreateInvitation() returned unexpected error: %v", err)
		}

		if err := svc.DeleteInvitation(created.ID); err != nil {
			t.Fatalf("DeleteInvitation() returned unexpected error: %v", err)
		}

		if err := svc.DeleteInvitation(created.ID); !errors.Is(err, apperrors.ErrInvitationNotFound) {
			t.Errorf("Expected ErrInvitationNotFound on second delete, got %v", err)
		}
	})
}
