package service_test

import (
	"testing"

	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// TestViewAsService_ResolveInvestor tests the view-as precedence rule.
//
// WHY: Which investor a request is scoped to decides whose money shows up
// on the dashboard. An explicit selection must always win, the stored hint
// must only apply to plain investors, and group admins must never be
// silently scoped into a member's view by a stale hint.
func TestViewAsService_ResolveInvestor(t *testing.T) {
	t.Run("explicit selection always wins", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestViewAsService(t, db)

		caller := testutil.MakeID()
		explicit := testutil.MakeID()
		stored := testutil.MakeID()
		if err := svc.RememberSelection(caller, stored); err != nil {
			t.Fatalf("RememberSelection() returned unexpected error: %v", err)
		}

		// Execute
		resolved, err := svc.ResolveInvestor(caller, explicit)

		// Assert
		if err != nil {
			t.Fatalf("ResolveInvestor() returned unexpected error: %v", err)
		}
		if resolved != explicit {
			t.Errorf("Expected explicit selection %s to win, got %s", explicit, resolved)
		}
	})

	t.Run("plain investor falls back to the stored hint", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestViewAsService(t, db)

		caller := testutil.MakeID()
		stored := testutil.MakeID()
		if err := svc.RememberSelection(caller, stored); err != nil {
			t.Fatalf("RememberSelection() returned unexpected error: %v", err)
		}

		resolved, err := svc.ResolveInvestor(caller, "")
		if err != nil {
			t.Fatalf("ResolveInvestor() returned unexpected error: %v", err)
		}
		if resolved != stored {
			t.Errorf("Expected stored hint %s, got %s", stored, resolved)
		}
	})

	t.Run("group admin ignores the stored hint", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestViewAsService(t, db)

		admin := testutil.NewInvestor().Build(t, db)
		member := testutil.NewInvestor().Build(t, db)
		testutil.CreateGroupMember(t, db, admin.ID, member.ID)

		if err := svc.RememberSelection(admin.ID, member.ID); err != nil {
			t.Fatalf("RememberSelection() returned unexpected error: %v", err)
		}

		resolved, err := svc.ResolveInvestor(admin.ID, "")
		if err != nil {
			t.Fatalf("ResolveInvestor() returned unexpected error: %v", err)
		}
		if resolved != admin.ID {
			t.Errorf("Expected admin %s to resolve to self, got %s", admin.ID, resolved)
		}
	})

	t.Run("no hint resolves to the caller", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestViewAsService(t, db)

		caller := testutil.MakeID()
		resolved, err := svc.ResolveInvestor(caller, "")
		if err != nil {
			t.Fatalf("ResolveInvestor() returned unexpected error: %v", err)
		}
		if resolved != caller {
			t.Errorf("Expected caller %s, got %s", caller, resolved)
		}
	})

	t.Run("cleared hint resolves to the caller again", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestViewAsService(t, db)

		caller := testutil.MakeID()
		if err := svc.RememberSelection(caller, testutil.MakeID()); err != nil {
			t.Fatalf("RememberSelection() returned unexpected error: %v", err)
		}
		if err := svc.ClearSelection(caller); err != nil {
			t.Fatalf("ClearSelection() returned unexpected error: %v", err)
		}

		resolved, err := svc.ResolveInvestor(caller, "")
		if err != nil {
			t.Fatalf("ResolveInvestor() returned unexpected error: %v", err)
		}
		if resolved != caller {
			t.Errorf("Expected caller %s after clear, got %s", caller, resolved)
		}
	})
}
