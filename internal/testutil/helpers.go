package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ba3ai/clarus-backend/internal/repository"
	"github.com/ba3ai/clarus-backend/internal/service"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestInvestorService(t *testing.T, db *sql.DB) *service.InvestorService {
	t.Helper()

	return service.NewInvestorService(repository.NewInvestorRepository(db))
}

func NewTestGroupService(t *testing.T, db *sql.DB) *service.GroupService {
	t.Helper()

	return service.NewGroupService(
		repository.NewGroupRepository(db),
		repository.NewInvestorRepository(db),
	)
}

func NewTestContactService(t *testing.T, db *sql.DB) *service.ContactService {
	t.Helper()

	return service.NewContactService(repository.NewContactRepository(db))
}

func NewTestDocumentService(t *testing.T, db *sql.DB) *service.DocumentService {
	t.Helper()

	return service.NewDocumentService(repository.NewDocumentRepository(db))
}

func NewTestStatementService(t *testing.T, db *sql.DB) *service.StatementService {
	t.Helper()

	return service.NewStatementService(repository.NewStatementRepository(db))
}

func NewTestOverviewService(t *testing.T, db *sql.DB) *service.OverviewService {
	t.Helper()

	return service.NewOverviewService(
		repository.NewMetricsRepository(db),
		repository.NewInvestorRepository(db),
	)
}

func NewTestMetricsService(t *testing.T, db *sql.DB) *service.MetricsService {
	t.Helper()

	return service.NewMetricsService(
		repository.NewMetricsRepository(db),
		NewTestOverviewService(t, db),
	)
}

func NewTestViewAsService(t *testing.T, db *sql.DB) *service.ViewAsService {
	t.Helper()

	return service.NewViewAsService(
		repository.NewPreferenceRepository(db),
		repository.NewGroupRepository(db),
	)
}

// TestFernetKey is a fixed base64 key for invitation tests.
const TestFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

func NewTestInvitationService(t *testing.T, db *sql.DB) *service.InvitationService {
	t.Helper()

	svc, err := service.NewInvitationService(
		repository.NewInvitationRepository(db),
		repository.NewInvestorRepository(db),
		TestFernetKey,
		72*time.Hour,
	)
	if err != nil {
		t.Fatalf("Failed to create test invitation service: %v", err)
	}
	return svc
}

// MakeID generates a UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeInvestorName generates a unique investor name for testing.
//
// Example usage:
//
//	name := testutil.MakeInvestorName("Alice")
//	// Returns: "Alice ABC123"
func MakeInvestorName(base string) string {
	if base == "" {
		base = "Investor"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeEmail generates a unique email address for testing.
func MakeEmail() string {
	return "test-" + randomAlphanumeric(8) + "@example.com"
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
