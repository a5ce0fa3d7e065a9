package services

import (
	"context"
	"fmt"

	"eventlottery/internal/domain"
)

type invitationService struct {
	listRepo domain.InvitationListRepository
}

// NewInvitationService creates an InvitationService over the invitation
// list repository.
func NewInvitationService(listRepo domain.InvitationListRepository) domain.InvitationService {
	return &invitationService{listRepo: listRepo}
}

func (s *invitationService) State(ctx context.Context, eventID, userID string) (domain.EntrantState, error) {
	m, err := s.listRepo.Membership(ctx, eventID, userID)
	if err != nil {
		return "", fmt.Errorf("read membership: %w", err)
	}
	return m.State(), nil
}

// Accept moves the user from invited to final. No state pre-check is
// performed beyond the set operations themselves: accepting while not
// invited just removes nothing and adds to final, matching the original
// behavior.
func (s *invitationService) Accept(ctx context.Context, eventID, userID string) error {
	if err := s.listRepo.Move(ctx, eventID, domain.ListInvited, domain.ListFinal, []string{userID}); err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}
	return nil
}

// Decline moves the user from invited to cancelled.
func (s *invitationService) Decline(ctx context.Context, eventID, userID string) error {
	if err := s.listRepo.Move(ctx, eventID, domain.ListInvited, domain.ListCancelled, []string{userID}); err != nil {
		return fmt.Errorf("decline invitation: %w", err)
	}
	return nil
}

// LeaveInvitedList revokes the user's invitation: removed from invited and
// all, pruned from lottery-win notification recipients, and nothing else.
// The repository runs this as one transaction and the whole operation is
// idempotent.
func (s *invitationService) LeaveInvitedList(ctx context.Context, eventID, userID string) error {
	if err := s.listRepo.Revoke(ctx, eventID, userID); err != nil {
		return fmt.Errorf("revoke invitation: %w", err)
	}
	return nil
}
