package request

// CreateFolderRequest represents the request body for creating a document folder
type CreateFolderRequest struct {
	InvestorID string  `json:"investorId"`
	ParentID   *string `json:"parentId,omitempty"`
	Name       string  `json:"name"`
}

// UpdateDocumentRequest allows renaming a document or moving it between folders.
// A null folderId moves the document to the root.
type UpdateDocumentRequest struct {
	Name     *string `json:"name,omitempty"`
	FolderID *string `json:"folderId,omitempty"`
	ToRoot   bool    `json:"toRoot,omitempty"`
}
