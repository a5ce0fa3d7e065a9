package domain

import "context"

// ListName identifies one of the per-event recipient sets on an invitation
// list. "all" is the audit superset: it only grows, except when an admin
// revokes an invitation.
type ListName string

const (
	ListAll       ListName = "all"
	ListWaiting   ListName = "waiting"
	ListInvited   ListName = "invited"
	ListFinal     ListName = "final"
	ListCancelled ListName = "cancelled"
)

// Valid reports whether l is one of the five known list names.
func (l ListName) Valid() bool {
	switch l {
	case ListAll, ListWaiting, ListInvited, ListFinal, ListCancelled:
		return true
	}
	return false
}

// EntrantState is the derived per-(event, user) display state. It is never
// stored; it is computed from invitation list membership.
type EntrantState string

const (
	StateWaiting   EntrantState = "waiting"
	StateInvited   EntrantState = "invited"
	StateFinal     EntrantState = "final"
	StateCancelled EntrantState = "cancelled"
	StateUnlisted  EntrantState = "unlisted"
)

// ListMembership holds the membership booleans for one user across an
// event's invitation lists.
type ListMembership struct {
	All       bool
	Waiting   bool
	Invited   bool
	Final     bool
	Cancelled bool
}

// State derives the display state with fixed precedence: Final beats
// Invited beats Cancelled beats Waiting. Stale residue (e.g. an accepted
// user still present in invited) is tolerated by precedence rather than
// cleaned up.
func (m ListMembership) State() EntrantState {
	switch {
	case m.Final:
		return StateFinal
	case m.Invited:
		return StateInvited
	case m.Cancelled:
		return StateCancelled
	case m.Waiting:
		return StateWaiting
	default:
		return StateUnlisted
	}
}

// InvitationListRepository defines storage operations on the per-event
// invitation lists. AddTo and RemoveFrom are true set-union/set-difference
// writes on a single list: commutative, order-independent, and safe under
// concurrent callers. Multi-list effects (Move, PromoteWinners, Revoke) run
// inside a single storage transaction.
type InvitationListRepository interface {
	AddTo(ctx context.Context, eventID string, list ListName, userIDs []string) error
	RemoveFrom(ctx context.Context, eventID string, list ListName, userIDs []string) error
	ListMembers(ctx context.Context, eventID string, list ListName) ([]string, error)
	Membership(ctx context.Context, eventID, userID string) (ListMembership, error)
	// Move removes the ids from one list and adds them to another as a unit.
	Move(ctx context.Context, eventID string, from, to ListName, userIDs []string) error
	// PromoteWinners moves the winners from waiting to invited and creates
	// the lottery-win notification in the same transaction.
	PromoteWinners(ctx context.Context, eventID string, winners []string, notification *Notification) error
	// Revoke removes the user from invited and all (only those two lists)
	// and prunes the user from the recipients of every lottery-win
	// notification of the event, leaving the notifications in place.
	// Revoking twice produces the same final state as revoking once.
	Revoke(ctx context.Context, eventID, userID string) error
}

// InvitationService executes entrant responses to invitations and the
// admin revocation path, and computes the derived entrant state.
type InvitationService interface {
	State(ctx context.Context, eventID, userID string) (EntrantState, error)
	// Accept moves the user from invited to final.
	Accept(ctx context.Context, eventID, userID string) error
	// Decline moves the user from invited to cancelled.
	Decline(ctx context.Context, eventID, userID string) error
	// LeaveInvitedList is the admin revocation: the user is removed from
	// invited and all, and pruned from lottery-win notification recipients.
	// waiting, final, and cancelled are left untouched.
	LeaveInvitedList(ctx context.Context, eventID, userID string) error
}

// Sampler draws k ids uniformly at random without replacement. Draws must be
// uniform over all k-subsets; implementations are seedable so lottery draws
// are reproducible in tests.
type Sampler interface {
	Pick(ids []string, k int) []string
}

// LotteryService runs the randomized draw that promotes waiting entrants to
// invited.
type LotteryService interface {
	// RunLottery draws min(max(1, entrantsToDraw), len(waiting)) entrants,
	// promotes them to invited, and fans out one lottery-win notification to
	// the selected ids. Returns the number selected; an empty waiting list
	// yields 0 with no notification and no error.
	RunLottery(ctx context.Context, eventID string) (int, error)
}
