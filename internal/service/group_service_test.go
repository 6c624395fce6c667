package service_test

import (
	"errors"
	"testing"

	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// TestGroupService_GetGroup tests group membership lookup.
//
// WHY: Group administrators see an aggregated view over their members, so
// the membership list must be accurate and an empty group must be a
// legitimate state rather than an error.
func TestGroupService_GetGroup(t *testing.T) {
	t.Run("returns all members with names", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		admin := testutil.NewInvestor().WithName("Admin").Build(t, db)
		m1 := testutil.NewInvestor().WithName("Alice").Build(t, db)
		m2 := testutil.NewInvestor().WithName("Bob").Build(t, db)
		testutil.CreateGroupMember(t, db, admin.ID, m1.ID)
		testutil.CreateGroupMember(t, db, admin.ID, m2.ID)

		// Execute
		group, err := svc.GetGroup(admin.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}
		if len(group.Members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(group.Members))
		}
		names := map[string]bool{}
		for _, m := range group.Members {
			names[m.Name] = true
		}
		if !names["Alice"] || !names["Bob"] {
			t.Errorf("Expected member names Alice and Bob, got %+v", group.Members)
		}
	})

	t.Run("empty group is not an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		investor := testutil.NewInvestor().Build(t, db)

		group, err := svc.GetGroup(investor.ID)
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}
		if len(group.Members) != 0 {
			t.Errorf("Expected no members, got %d", len(group.Members))
		}
	})
}

// TestGroupService_IsGroupAdmin tests admin detection.
func TestGroupService_IsGroupAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGroupService(t, db)

	admin := testutil.NewInvestor().Build(t, db)
	member := testutil.NewInvestor().Build(t, db)
	testutil.CreateGroupMember(t, db, admin.ID, member.ID)

	isAdmin, err := svc.IsGroupAdmin(admin.ID)
	if err != nil {
		t.Fatalf("IsGroupAdmin() returned unexpected error: %v", err)
	}
	if !isAdmin {
		t.Error("Expected the admin to be detected as a group admin")
	}

	isAdmin, err = svc.IsGroupAdmin(member.ID)
	if err != nil {
		t.Fatalf("IsGroupAdmin() returned unexpected error: %v", err)
	}
	if isAdmin {
		t.Error("Expected a plain member not to be a group admin")
	}
}

// TestGroupService_AddMember tests membership creation.
//
// WHY: Membership rows carry no foreign-key cascade from the admin side in
// the aggregation queries, so both endpoints of the link must exist before
// the row is written.
func TestGroupService_AddMember(t *testing.T) {
	t.Run("links an existing member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		admin := testutil.NewInvestor().Build(t, db)
		member := testutil.NewInvestor().WithName("Carol").Build(t, db)

		if err := svc.AddMember(admin.ID, member.ID); err != nil {
			t.Fatalf("AddMember() returned unexpected error: %v", err)
		}

		group, err := svc.GetGroup(admin.ID)
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}
		if len(group.Members) != 1 || group.Members[0].InvestorID != member.ID {
			t.Errorf("Expected Carol as the only member, got %+v", group.Members)
		}
	})

	t.Run("rejects a missing member investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		admin := testutil.NewInvestor().Build(t, db)

		err := svc.AddMember(admin.ID, testutil.MakeID())
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound for missing member, got %v", err)
		}
	})

	t.Run("rejects a missing admin investor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		member := testutil.NewInvestor().Build(t, db)

		err := svc.AddMember(testutil.MakeID(), member.ID)
		if !errors.Is(err, apperrors.ErrInvestorNotFound) {
			t.Errorf("Expected ErrInvestorNotFound for missing admin, got %v", err)
		}
	})

	t.Run("adding the same member twice is a conflict", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		admin := testutil.NewInvestor().Build(t, db)
		member := testutil.NewInvestor().Build(t, db)

		if err := svc.AddMember(admin.ID, member.ID); err != nil {
			t.Fatalf("AddMember() returned unexpected error: %v", err)
		}
		err := svc.AddMember(admin.ID, member.ID)
		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry on a repeat add, got %v", err)
		}
	})
}

// TestGroupService_RemoveMember tests membership removal.
func TestGroupService_RemoveMember(t *testing.T) {
	t.Run("unlinks a member", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		admin := testutil.NewInvestor().Build(t, db)
		member := testutil.NewInvestor().Build(t, db)
		testutil.CreateGroupMember(t, db, admin.ID, member.ID)

		if err := svc.RemoveMember(admin.ID, member.ID); err != nil {
			t.Fatalf("RemoveMember() returned unexpected error: %v", err)
		}

		group, err := svc.GetGroup(admin.ID)
		if err != nil {
			t.Fatalf("GetGroup() returned unexpected error: %v", err)
		}
		if len(group.Members) != 0 {
			t.Errorf("Expected no members after removal, got %d", len(group.Members))
		}
	})

	t.Run("removing a non-member is not an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGroupService(t, db)

		admin := testutil.NewInvestor().Build(t, db)

		if err := svc.RemoveMember(admin.ID, testutil.MakeID()); err != nil {
			t.Errorf("Expected removing a non-member to succeed, got %v", err)
		}
	})
}
