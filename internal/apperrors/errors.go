package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInvestorNotFound indicates that an investor with the given ID does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrContactNotFound indicates that a contact with the given ID does not exist.
	ErrContactNotFound = errors.New("contact not found")

	// ErrDocumentNotFound indicates that a document with the given ID does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrFolderNotFound indicates that a document folder with the given ID does not exist.
	ErrFolderNotFound = errors.New("document folder not found")

	// ErrStatementNotFound indicates that a statement with the given ID does not exist.
	ErrStatementNotFound = errors.New("statement not found")

	// ErrInvitationNotFound indicates that an invitation with the given ID does not exist.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrPeriodNotFound indicates no balance record exists for an investor in the requested range.
	ErrPeriodNotFound = errors.New("no reporting periods in range")

	// ErrBenchmarkNotFound indicates no cached series exists for the requested symbol.
	ErrBenchmarkNotFound = errors.New("benchmark series not found")

	// ErrPreferenceNotFound indicates that no stored preference exists for the user and name.
	ErrPreferenceNotFound = errors.New("preference not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidDateRange indicates that the provided period range is invalid
	// (e.g., the from month is after the to month).
	ErrInvalidDateRange = errors.New("invalid period range")

	// ErrInvalidPeriod indicates that a period is not in YYYY-MM format or is
	// not one of the known reporting periods.
	ErrInvalidPeriod = errors.New("invalid reporting period")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNotGroupAdmin indicates that the calling investor administers no group.
	// This is a legitimate state on group lookups, not a failure.
	ErrNotGroupAdmin = errors.New("investor is not a group admin")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInvitationExpired indicates that an invitation token has passed its TTL.
	ErrInvitationExpired = errors.New("invitation expired")

	// ErrInvitationNotPending indicates that an invitation was already accepted or revoked.
	ErrInvitationNotPending = errors.New("invitation is not pending")

	// ErrInvalidToken indicates that an invitation token failed fernet verification.
	ErrInvalidToken = errors.New("invalid invitation token")
)

// Retrieval failure messages used by the HTTP layer when a read fails for
// reasons other than a missing entity.
var (
	ErrFailedToRetrieveInvestors  = errors.New("failed to retrieve investors")
	ErrFailedToRetrieveContacts   = errors.New("failed to retrieve contacts")
	ErrFailedToRetrieveDocuments  = errors.New("failed to retrieve documents")
	ErrFailedToRetrieveStatements = errors.New("failed to retrieve statements")
	ErrFailedToRetrieveOverview   = errors.New("failed to retrieve investor overview")
)
