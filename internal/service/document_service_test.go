package service_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/testutil"
)

// TestDocumentService_GetDocumentTree tests folder tree assembly.
//
// WHY: The documents tab renders a nested tree, and a folder whose parent
// was deleted out from under it must stay reachable at the root instead of
// silently disappearing along with its contents.
func TestDocumentService_GetDocumentTree(t *testing.T) {
	t.Run("nests folders and documents", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		topID := testutil.CreateFolder(t, db, investor.ID, nil, "Statements")
		subID := testutil.CreateFolder(t, db, investor.ID, &topID, "2023")
		testutil.CreateDocument(t, db, investor.ID, nil, "root.pdf")
		testutil.CreateDocument(t, db, investor.ID, &subID, "q1.pdf")

		// Execute
		tree, err := svc.GetDocumentTree(investor.ID)

		// Assert
		if err != nil {
			t.Fatalf("GetDocumentTree() returned unexpected error: %v", err)
		}
		if len(tree.Documents) != 1 || tree.Documents[0].Name != "root.pdf" {
			t.Errorf("Expected root.pdf at the root, got %+v", tree.Documents)
		}
		if len(tree.Subfolders) != 1 {
			t.Fatalf("Expected 1 top-level folder, got %d", len(tree.Subfolders))
		}
		top := tree.Subfolders[0]
		if top.Folder.Name != "Statements" {
			t.Errorf("Expected top folder Statements, got %q", top.Folder.Name)
		}
		if len(top.Subfolders) != 1 || top.Subfolders[0].Folder.Name != "2023" {
			t.Fatalf("Expected nested folder 2023, got %+v", top.Subfolders)
		}
		nested := top.Subfolders[0]
		if len(nested.Documents) != 1 || nested.Documents[0].Name != "q1.pdf" {
			t.Errorf("Expected q1.pdf inside 2023, got %+v", nested.Documents)
		}
	})

	t.Run("attaches folders with an unreachable parent to the root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		other := testutil.NewInvestor().Build(t, db)
		// The parent exists but belongs to another investor, so it is
		// absent from this investor's folder set.
		foreignParent := testutil.CreateFolder(t, db, other.ID, nil, "Elsewhere")
		testutil.CreateFolder(t, db, investor.ID, &foreignParent, "Orphan")

		tree, err := svc.GetDocumentTree(investor.ID)
		if err != nil {
			t.Fatalf("GetDocumentTree() returned unexpected error: %v", err)
		}
		if len(tree.Subfolders) != 1 || tree.Subfolders[0].Folder.Name != "Orphan" {
			t.Errorf("Expected the orphaned folder at the root, got %+v", tree.Subfolders)
		}
	})

	t.Run("empty tree has non-nil slices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		investor := testutil.NewInvestor().Build(t, db)

		tree, err := svc.GetDocumentTree(investor.ID)
		if err != nil {
			t.Fatalf("GetDocumentTree() returned unexpected error: %v", err)
		}
		if tree.Documents == nil || tree.Subfolders == nil {
			t.Error("Expected empty slices, not nil, for JSON rendering")
		}
	})
}

// TestDocumentService_UploadDocument tests document upload and retrieval.
func TestDocumentService_UploadDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDocumentService(t, db)

	investor := testutil.NewInvestor().Build(t, db)
	content := []byte("%PDF-1.4 fake")

	document, err := svc.UploadDocument(investor.ID, "report.pdf", "application/pdf", nil, content)
	if err != nil {
		t.Fatalf("UploadDocument() returned unexpected error: %v", err)
	}
	if document.SizeBytes != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), document.SizeBytes)
	}

	withData, err := svc.GetDocumentWithData(document.ID)
	if err != nil {
		t.Fatalf("GetDocumentWithData() returned unexpected error: %v", err)
	}
	if !bytes.Equal(withData.Data, content) {
		t.Error("Expected stored content to round-trip")
	}
	if withData.ContentType != "application/pdf" {
		t.Errorf("Expected content type to round-trip, got %q", withData.ContentType)
	}
}

// TestDocumentService_UpdateDocument tests rename and move operations.
func TestDocumentService_UpdateDocument(t *testing.T) {
	t.Run("moves a document into a folder", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		folderID := testutil.CreateFolder(t, db, investor.ID, nil, "Archive")
		docID := testutil.CreateDocument(t, db, investor.ID, nil, "loose.pdf")

		updated, err := svc.UpdateDocument(docID, request.UpdateDocumentRequest{FolderID: &folderID})
		if err != nil {
			t.Fatalf("UpdateDocument() returned unexpected error: %v", err)
		}
		if updated.FolderID == nil || *updated.FolderID != folderID {
			t.Errorf("Expected document in folder %s, got %v", folderID, updated.FolderID)
		}
	})

	t.Run("moves a document back to the root", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		folderID := testutil.CreateFolder(t, db, investor.ID, nil, "Archive")
		docID := testutil.CreateDocument(t, db, investor.ID, &folderID, "filed.pdf")

		updated, err := svc.UpdateDocument(docID, request.UpdateDocumentRequest{ToRoot: true})
		if err != nil {
			t.Fatalf("UpdateDocument() returned unexpected error: %v", err)
		}
		if updated.FolderID != nil {
			t.Errorf("Expected document at the root, got folder %v", *updated.FolderID)
		}
	})

	t.Run("renames a document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		investor := testutil.NewInvestor().Build(t, db)
		docID := testutil.CreateDocument(t, db, investor.ID, nil, "old.pdf")

		name := "new.pdf"
		updated, err := svc.UpdateDocument(docID, request.UpdateDocumentRequest{Name: &name})
		if err != nil {
			t.Fatalf("UpdateDocument() returned unexpected error: %v", err)
		}
		if updated.Name != "new.pdf" {
			t.Errorf("Expected renamed document, got %q", updated.Name)
		}
	})

	t.Run("returns not found for an unknown document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestDocumentService(t, db)

		_, err := svc.UpdateDocument(testutil.MakeID(), request.UpdateDocumentRequest{ToRoot: true})
		if !errors.Is(err, apperrors.ErrDocumentNotFound) {
			t.Errorf("Expected ErrDocumentNotFound, got %v", err)
		}
	})
}

// TestDocumentService_DeleteFolder tests that deleting a folder keeps its
// documents reachable.
func TestDocumentService_DeleteFolder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestDocumentService(t, db)

	investor := testutil.NewInvestor().Build(t, db)
	folderID := testutil.CreateFolder(t, db, investor.ID, nil, "Doomed")
	docID := testutil.CreateDocument(t, db, investor.ID, &folderID, "survivor.pdf")

	if err := svc.DeleteFolder(folderID); err != nil {
		t.Fatalf("DeleteFolder() returned unexpected error: %v", err)
	}

	document, err := svc.GetDocument(docID)
	if err != nil {
		t.Fatalf("GetDocument() returned unexpected error: %v", err)
	}
	if document.FolderID != nil {
		t.Errorf("Expected the document to fall back to the root, got folder %v", *document.FolderID)
	}

	tree, err := svc.GetDocumentTree(investor.ID)
	if err != nil {
		t.Fatalf("GetDocumentTree() returned unexpected error: %v", err)
	}
	if len(tree.Subfolders) != 0 {
		t.Errorf("Expected the folder to be gone, got %d folders", len(tree.Subfolders))
	}
}
