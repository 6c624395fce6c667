package service

import (
	"github.com/google/uuid"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// DocumentService handles document and folder business logic, including
// assembly of the nested folder tree the documents tab renders.
type DocumentService struct {
	documentRepo *repository.DocumentRepository
}

// NewDocumentService creates a new DocumentService with the provided repository dependency.
func NewDocumentService(documentRepo *repository.DocumentRepository) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
	}
}

// GetDocumentTree assembles an investor's folders and documents into a
// nested tree. The returned root node has a nil Folder and carries the
// documents that live outside any folder; each subfolder node nests its own
// documents and children.
//
// Folders whose parent no longer exists are attached to the root rather
// than dropped, so orphaned content stays reachable.
func (s *DocumentService) GetDocumentTree(investorID string) (*model.DocumentTreeNode, error) {
	folders, err := s.documentRepo.GetFoldersOnInvestorID(investorID)
	if err != nil {
		return nil, err
	}

	documents, err := s.documentRepo.GetDocumentsOnInvestorID(investorID)
	if err != nil {
		return nil, err
	}

	root := &model.DocumentTreeNode{
		Documents:  []model.Document{},
		Subfolders: []*model.DocumentTreeNode{},
	}

	nodesByFolder := make(map[string]*model.DocumentTreeNode, len(folders))
	for i := range folders {
		nodesByFolder[folders[i].ID] = &model.DocumentTreeNode{
			Folder:     &folders[i],
			Documents:  []model.Document{},
			Subfolders: []*model.DocumentTreeNode{},
		}
	}

	for _, folder := range folders {
		node := nodesByFolder[folder.ID]
		if folder.ParentID != nil {
			if parent, exists := nodesByFolder[*folder.ParentID]; exists {
				parent.Subfolders = append(parent.Subfolders, node)
				continue
			}
		}
		root.Subfolders = append(root.Subfolders, node)
	}

	for _, document := range documents {
		if document.FolderID != nil {
			if node, exists := nodesByFolder[*document.FolderID]; exists {
				node.Documents = append(node.Documents, document)
				continue
			}
		}
		root.Documents = append(root.Documents, document)
	}

	return root, nil
}

// GetDocumentsForInvestor retrieves flat document metadata for an investor.
func (s *DocumentService) GetDocumentsForInvestor(investorID string) ([]model.Document, error) {
	return s.documentRepo.GetDocumentsOnInvestorID(investorID)
}

// GetDocument retrieves document metadata by ID.
func (s *DocumentService) GetDocument(documentID string) (model.Document, error) {
	return s.documentRepo.GetDocumentOnID(documentID)
}

// GetDocumentWithData retrieves document metadata with file content
// populated, for download responses.
func (s *DocumentService) GetDocumentWithData(documentID string) (model.Document, error) {
	document, err := s.documentRepo.GetDocumentOnID(documentID)
	if err != nil {
		return model.Document{}, err
	}

	document.Data, err = s.documentRepo.GetDocumentData(documentID)
	if err != nil {
		return model.Document{}, err
	}

	return document, nil
}

// CreateFolder creates a new document folder from the request.
func (s *DocumentService) CreateFolder(req request.CreateFolderRequest) (model.DocumentFolder, error) {
	folder := model.DocumentFolder{
		ID:         uuid.NewString(),
		InvestorID: req.InvestorID,
		ParentID:   req.ParentID,
		Name:       req.Name,
	}

	if err := s.documentRepo.CreateFolder(folder); err != nil {
		return model.DocumentFolder{}, err
	}

	return folder, nil
}

// DeleteFolder removes a document folder. Documents inside it fall back to
// the root; subfolders are removed with it.
func (s *DocumentService) DeleteFolder(folderID string) error {
	return s.documentRepo.DeleteFolder(folderID)
}

// UploadDocument stores a new document with its file content.
func (s *DocumentService) UploadDocument(investorID, name, contentType string, folderID *string, data []byte) (model.Document, error) {
	document := model.Document{
		ID:          uuid.NewString(),
		InvestorID:  investorID,
		FolderID:    folderID,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
		Data:        data,
	}

	if err := s.documentRepo.CreateDocument(document); err != nil {
		return model.Document{}, err
	}

	return s.documentRepo.GetDocumentOnID(document.ID)
}

// UpdateDocument renames a document or moves it between folders.
// Only non-nil request fields are changed; ToRoot moves it out of any folder.
func (s *DocumentService) UpdateDocument(documentID string, req request.UpdateDocumentRequest) (model.Document, error) {
	document, err := s.documentRepo.GetDocumentOnID(documentID)
	if err != nil {
		return model.Document{}, err
	}

	if req.Name != nil {
		document.Name = *req.Name
	}
	if req.ToRoot {
		document.FolderID = nil
	} else if req.FolderID != nil {
		document.FolderID = req.FolderID
	}

	if err := s.documentRepo.UpdateDocument(document); err != nil {
		return model.Document{}, err
	}

	return document, nil
}

// DeleteDocument removes a document.
func (s *DocumentService) DeleteDocument(documentID string) error {
	return s.documentRepo.DeleteDocument(documentID)
}
