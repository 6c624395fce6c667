package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migration set.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Investor table
		CREATE TABLE investor (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			parent_id VARCHAR(36),
			join_date DATE,
			is_archived BOOLEAN DEFAULT FALSE NOT NULL,
			FOREIGN KEY(parent_id) REFERENCES investor(id) ON DELETE SET NULL
		);

		-- Group membership (admin -> member links)
		CREATE TABLE group_member (
			admin_investor_id VARCHAR(36) NOT NULL,
			member_investor_id VARCHAR(36) NOT NULL,
			PRIMARY KEY (admin_investor_id, member_investor_id),
			FOREIGN KEY(admin_investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			FOREIGN KEY(member_investor_id) REFERENCES investor(id) ON DELETE CASCADE
		);

		-- Contact table
		CREATE TABLE contact (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255),
			phone VARCHAR(30),
			role VARCHAR(50),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE
		);

		-- Document folder table
		CREATE TABLE document_folder (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			parent_id VARCHAR(36),
			name VARCHAR(100) NOT NULL,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			FOREIGN KEY(parent_id) REFERENCES document_folder(id) ON DELETE CASCADE
		);

		-- Document table
		CREATE TABLE document (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			folder_id VARCHAR(36),
			name VARCHAR(255) NOT NULL,
			content_type VARCHAR(100) NOT NULL,
			size_bytes INTEGER NOT NULL,
			data BLOB,
			uploaded_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			FOREIGN KEY(folder_id) REFERENCES document_folder(id) ON DELETE SET NULL
		);

		-- Statement table
		CREATE TABLE statement (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			period VARCHAR(7) NOT NULL,
			title VARCHAR(255) NOT NULL,
			file_name VARCHAR(255) NOT NULL,
			content_type VARCHAR(100) NOT NULL,
			data BLOB,
			published_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE
		);

		-- Invitation table
		CREATE TABLE invitation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			investor_id VARCHAR(36),
			token TEXT NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'pending',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			expires_at DATETIME NOT NULL,
			accepted_at DATETIME,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE
		);

		-- Monthly balance records
		CREATE TABLE period_balance (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			as_of_date DATE NOT NULL,
			beginning_balance FLOAT NOT NULL,
			ending_balance FLOAT NOT NULL,
			has_data BOOLEAN DEFAULT TRUE NOT NULL,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			CONSTRAINT unique_investor_period UNIQUE (investor_id, as_of_date)
		);

		-- Allocation breakdown rows
		CREATE TABLE allocation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			month VARCHAR(7) NOT NULL,
			category VARCHAR(100) NOT NULL,
			percent FLOAT NOT NULL,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			CONSTRAINT unique_investor_month_category UNIQUE (investor_id, month, category)
		);

		-- Cached benchmark series
		CREATE TABLE benchmark_month (
			symbol VARCHAR(10) NOT NULL,
			month VARCHAR(7) NOT NULL,
			roi_pct FLOAT NOT NULL,
			PRIMARY KEY (symbol, month)
		);

		-- Per-user stored preferences
		CREATE TABLE user_preference (
			user_id VARCHAR(36) NOT NULL,
			name VARCHAR(50) NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (user_id, name)
		);
	`

	_, err := db.Exec(schema)
	return err
}
