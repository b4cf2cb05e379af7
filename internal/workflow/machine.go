package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRemarksRequired = errors.New("remarks are required for this action")
	ErrNotPending      = errors.New("entity is not pending verification")
	ErrWrongRole       = errors.New("caller's role is not the next required verifier")
	ErrUnknownAction   = errors.New("unknown workflow action")
)

// TransitionResult describes the state an entity moves to after a verify or
// reject at its current level.
type TransitionResult struct {
	Next      Status
	NextLevel int
	// NextRoleID is the verifier role for the following level; zero when the
	// transition is terminal.
	NextRoleID uint64
	Terminal   bool
}

// Transition computes the next state for one verify/reject step. It is pure:
// preconditions violated here mean no storage call has been made yet.
//
//	PENDING --verify, non-final level--> PENDING (level+1)
//	PENDING --verify, final level-----> VERIFIED  [terminal]
//	PENDING --reject------------------> REJECTED  [terminal]
func Transition(d Descriptor, current Status, currentLevel int, actorRoleID uint64, action Action, remarks string) (TransitionResult, error) {
	if strings.TrimSpace(remarks) == "" {
		return TransitionResult{}, ErrRemarksRequired
	}
	if current != StatusPending {
		return TransitionResult{}, fmt.Errorf("%w: status is %s", ErrNotPending, current)
	}

	requiredRole, ok := d.RoleForLevel(currentLevel)
	if !ok {
		return TransitionResult{}, fmt.Errorf("no verifier role configured for %s level %d", d.Slug, currentLevel)
	}
	if actorRoleID != requiredRole {
		return TransitionResult{}, fmt.Errorf("%w: need role %d, got %d", ErrWrongRole, requiredRole, actorRoleID)
	}

	switch action {
	case ActionReject:
		return TransitionResult{Next: StatusRejected, NextLevel: currentLevel, Terminal: true}, nil
	case ActionVerify:
		if currentLevel < d.Levels() {
			nextLevel := currentLevel + 1
			nextRole, _ := d.RoleForLevel(nextLevel)
			return TransitionResult{Next: StatusPending, NextLevel: nextLevel, NextRoleID: nextRole}, nil
		}
		return TransitionResult{Next: StatusVerified, NextLevel: currentLevel, Terminal: true}, nil
	default:
		return TransitionResult{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Submit computes the initial pending state for a freshly created entity.
func Submit(d Descriptor) (TransitionResult, error) {
	if d.Levels() == 0 {
		return TransitionResult{}, fmt.Errorf("descriptor %s has no verification chain", d.Slug)
	}
	firstRole, _ := d.RoleForLevel(1)
	return TransitionResult{Next: StatusPending, NextLevel: 1, NextRoleID: firstRole}, nil
}
