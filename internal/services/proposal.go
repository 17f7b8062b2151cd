package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/data/repos"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/domain"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/apierr"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type CreateProposalInput struct {
	Title              string `json:"title" binding:"required"`
	Agency             string `json:"agency"`
	SolicitationNumber string `json:"solicitation_number"`
	Summary            string `json:"summary"`
}

var validProposalStatuses = map[string]bool{
	domain.ProposalStatusCapture:   true,
	domain.ProposalStatusDraft:     true,
	domain.ProposalStatusReview:    true,
	domain.ProposalStatusSubmitted: true,
	domain.ProposalStatusWon:       true,
	domain.ProposalStatusLost:      true,
}

type ProposalService interface {
	Create(ctx context.Context, ownerUserID uuid.UUID, organizationID *uuid.UUID, input CreateProposalInput) (*domain.Proposal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	ListForUser(ctx context.Context, userID uuid.UUID, organizationID *uuid.UUID) ([]*domain.Proposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Proposal, error)
}

type proposalService struct {
	db        *gorm.DB
	log       *logger.Logger
	proposals repos.ProposalRepo
}

func NewProposalService(db *gorm.DB, log *logger.Logger, proposals repos.ProposalRepo) ProposalService {
	return &proposalService{db: db, log: log.With("service", "ProposalService"), proposals: proposals}
}

func (s *proposalService) Create(ctx context.Context, ownerUserID uuid.UUID, organizationID *uuid.UUID, input CreateProposalInput) (*domain.Proposal, error) {
	proposal := &domain.Proposal{
		ID:                 uuid.New(),
		OrganizationID:     organizationID,
		OwnerUserID:        ownerUserID,
		Title:              strings.TrimSpace(input.Title),
		Agency:             strings.TrimSpace(input.Agency),
		SolicitationNumber: strings.TrimSpace(input.SolicitationNumber),
		Status:             domain.ProposalStatusCapture,
		Summary:            strings.TrimSpace(input.Summary),
	}
	if proposal.Title == "" {
		return nil, apierr.Validation(fmt.Errorf("title is required"))
	}
	if _, err := s.proposals.Create(ctx, nil, proposal); err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("proposal created", "proposal_id", proposal.ID.String())
	return proposal, nil
}

func (s *proposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposals.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if proposal == nil {
		return nil, apierr.NotFound(fmt.Errorf("proposal not found"))
	}
	return proposal, nil
}

func (s *proposalService) ListForUser(ctx context.Context, userID uuid.UUID, organizationID *uuid.UUID) ([]*domain.Proposal, error) {
	if organizationID != nil {
		results, err := s.proposals.ListByOrganization(ctx, nil, *organizationID)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		return results, nil
	}
	results, err := s.proposals.ListByOwner(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return results, nil
}

func (s *proposalService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Proposal, error) {
	if !validProposalStatuses[status] {
		return nil, apierr.Validation(fmt.Errorf("invalid proposal status %q", status))
	}
	proposal, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.proposals.Update(ctx, nil, id, map[string]interface{}{"status": status}); err != nil {
		return nil, apierr.Internal(err)
	}
	proposal.Status = status
	return proposal, nil
}
