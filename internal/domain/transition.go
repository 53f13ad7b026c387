package domain

import (
	"fmt"

	"service-lastmile/internal/apperr"
)

// Action is a trigger applied to a delivery status.
type Action string

// List of status machine actions
const (
	ActionAssign     Action = "assign"
	ActionPickUp     Action = "pick_up"
	ActionDepart     Action = "depart"
	ActionDeliver    Action = "deliver"
	ActionFail       Action = "fail"
	ActionCancel     Action = "cancel"
	ActionSoftDelete Action = "soft_delete"
)

// transitions lists every legal edge: action -> current status -> next status.
var transitions = map[Action]map[Status]Status{
	ActionAssign: {
		StatusPending: StatusAssigned,
	},
	ActionPickUp: {
		StatusAssigned: StatusPickedUp,
		StatusPickedUp: StatusPickedUp,
		StatusOnTheWay: StatusPickedUp,
		StatusFailed:   StatusPickedUp,
	},
	ActionDepart: {
		StatusPickedUp: StatusOnTheWay,
		StatusOnTheWay: StatusOnTheWay,
	},
	ActionDeliver: {
		StatusPickedUp: StatusDelivered,
		StatusOnTheWay: StatusDelivered,
	},
	ActionFail: {
		StatusPending:  StatusFailed,
		StatusAssigned: StatusFailed,
		StatusPickedUp: StatusFailed,
		StatusOnTheWay: StatusFailed,
		StatusFailed:   StatusFailed,
		StatusCanceled: StatusFailed,
	},
	ActionCancel: {
		StatusPending:  StatusCanceled,
		StatusAssigned: StatusCanceled,
		StatusPickedUp: StatusCanceled,
		StatusOnTheWay: StatusCanceled,
		StatusFailed:   StatusCanceled,
	},
}

var targets = map[Action]Status{
	ActionAssign:  StatusAssigned,
	ActionPickUp:  StatusPickedUp,
	ActionDepart:  StatusOnTheWay,
	ActionDeliver: StatusDelivered,
	ActionFail:    StatusFailed,
	ActionCancel:  StatusCanceled,
}

// TransitionError is returned when an action is not allowed from the current status.
type TransitionError struct {
	From   Status
	Action Action
	To     Status
}

func (e *TransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("invalid status transition: cannot %s a %s delivery", e.Action, e.From)
	}
	return fmt.Sprintf("invalid status transition: %s -> %s (%s)", e.From, e.To, e.Action)
}

// Is makes TransitionError match apperr.ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool { return target == apperr.ErrInvalidTransition }

// Next returns the status reached by applying the action to current.
func Next(current Status, action Action) (Status, error) {
	next, ok := transitions[action][current]
	if !ok {
		return current, &TransitionError{From: current, Action: action, To: targets[action]}
	}
	return next, nil
}

// CanSoftDelete reports whether a delivery in status s may be soft-deleted.
func CanSoftDelete(s Status) error {
	if s == StatusDelivered {
		return &TransitionError{From: s, Action: ActionSoftDelete}
	}
	return nil
}

// ActionFor maps a requested status to the action that reaches it.
// PENDING and ASSIGNED are only reachable through creation and driver assignment.
func ActionFor(requested Status) (Action, bool) {
	switch requested {
	case StatusPickedUp:
		return ActionPickUp, true
	case StatusOnTheWay:
		return ActionDepart, true
	case StatusDelivered:
		return ActionDeliver, true
	case StatusFailed:
		return ActionFail, true
	case StatusCanceled:
		return ActionCancel, true
	default:
		return "", false
	}
}
