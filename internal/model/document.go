package model

import "time"

// DocumentFolder represents a folder in an investor's document tree.
// Folders nest via ParentID; a nil ParentID marks a root folder.
type DocumentFolder struct {
	ID         string  `json:"id"`
	InvestorID string  `json:"investor_id"`
	ParentID   *string `json:"parent_id,omitempty"`
	Name       string  `json:"name"`
}

// Document represents a stored document. Data holds the file content and is
// only populated for download requests; listing queries leave it nil.
type Document struct {
	ID          string    `json:"id"`
	InvestorID  string    `json:"investor_id"`
	FolderID    *string   `json:"folder_id,omitempty"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Data        []byte    `json:"-"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// DocumentTreeNode is one folder in the nested document tree, carrying its
// documents and subfolders. Root-level documents hang off a synthetic node
// with a nil Folder.
type DocumentTreeNode struct {
	Folder     *DocumentFolder     `json:"folder"`
	Documents  []Document          `json:"documents"`
	Subfolders []*DocumentTreeNode `json:"subfolders"`
}
