package service

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/ba3ai/clarus-backend/internal/api/request"
	"github.com/ba3ai/clarus-backend/internal/apperrors"
	"github.com/ba3ai/clarus-backend/internal/model"
	"github.com/ba3ai/clarus-backend/internal/repository"
)

// InvitationService handles the invitation lifecycle. Tokens are
// fernet-sealed payloads carrying the invitation ID; the fernet TTL and the
// stored expiry are both enforced at acceptance time.
type InvitationService struct {
	invitationRepo *repository.InvitationRepository
	investorRepo   *repository.InvestorRepository
	key            *fernet.Key
	ttl            time.Duration
}

// NewInvitationService creates a new InvitationService.
// fernetKey must be a base64-encoded 32-byte fernet key.
func NewInvitationService(invitationRepo *repository.InvitationRepository, investorRepo *repository.InvestorRepository, fernetKey string, ttl time.Duration) (*InvitationService, error) {
	key, err := fernet.DecodeKey(fernetKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode invitation key: %w", err)
	}

	return &InvitationService{
		invitationRepo: invitationRepo,
		investorRepo:   investorRepo,
		key:            key,
		ttl:            ttl,
	}, nil
}

// GetInvitations retrieves all invitations, newest first.
func (s *InvitationService) GetInvitations() ([]model.Invitation, error) {
	return s.invitationRepo.GetInvitations()
}

// CreateInvitation issues a new pending invitation and seals its token.
func (s *InvitationService) CreateInvitation(req request.CreateInvitationRequest) (model.Invitation, error) {
	if req.InvestorID != nil {
		if _, err := s.investorRepo.GetInvestorOnID(*req.InvestorID); err != nil {
			return model.Invitation{}, fmt.Errorf("target investor lookup failed: %w", err)
		}
	}

	invitation := model.Invitation{
		ID:         uuid.NewString(),
		Email:      req.Email,
		InvestorID: req.InvestorID,
		Status:     model.InvitationPending,
		ExpiresAt:  time.Now().UTC().Add(s.ttl),
	}

	token, err := fernet.EncryptAndSign([]byte(invitation.ID), s.key)
	if err != nil {
		return model.Invitation{}, fmt.Errorf("failed to seal invitation token: %w", err)
	}
	invitation.Token = string(token)

	if err := s.invitationRepo.CreateInvitation(invitation); err != nil {
		return model.Invitation{}, err
	}

	return s.invitationRepo.GetInvitationOnID(invitation.ID)
}

// AcceptInvitation verifies a token and transitions the invitation to
// accepted.
//
// Returns apperrors.ErrInvalidToken when fernet verification fails (which
// includes tokens older than the TTL), apperrors.ErrInvitationExpired when
// the stored expiry has passed, and apperrors.ErrInvitationNotPending when
// the invitation was already accepted or revoked.
func (s *InvitationService) AcceptInvitation(req request.AcceptInvitationRequest) (model.Invitation, error) {
	payload := fernet.VerifyAndDecrypt([]byte(req.Token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return model.Invitation{}, apperrors.ErrInvalidToken
	}

	invitation, err := s.invitationRepo.GetInvitationOnID(string(payload))
	if err != nil {
		return model.Invitation{}, err
	}

	if time.Now().UTC().After(invitation.ExpiresAt) {
		return model.Invitation{}, apperrors.ErrInvitationExpired
	}

	acceptedAt := time.Now().UTC()
	if err := s.invitationRepo.MarkAccepted(invitation.ID, acceptedAt); err != nil {
		return model.Invitation{}, err
	}

	return s.invitationRepo.GetInvitationOnID(invitation.ID)
}

// DeleteInvitation revokes an invitation by removing it.
func (s *InvitationService) DeleteInvitation(invitationID string) error {
	return s.invitationRepo.DeleteInvitation(invitationID)
}
