package pathing

import (
	"errors"
	"fmt"
)

// Error reports a broken invariant inside a calculation.
//
// Internal errors include:
//   - Empty open set: Pop called with nothing to pop
//   - Closed node: decrease-key requested for a node without a heap slot
//   - Slot corruption: a node's slot does not point back at the node
//   - Dangling parent: retrace found a parent identity the store never saw
//
// None of these are normal search outcomes. An unreachable goal or an
// exhausted time budget is reported as an empty path, not an Error.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Node is the identity involved, rendered for diagnostics.
	Node string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes internal errors.
type ErrorCode string

const (
	// ErrCodeEmptyOpenSet indicates Pop on an empty open set.
	ErrCodeEmptyOpenSet ErrorCode = "EMPTY_OPEN_SET"

	// ErrCodeNodeClosed indicates decrease-key on a node that is not open.
	ErrCodeNodeClosed ErrorCode = "NODE_CLOSED"

	// ErrCodeNodeAlreadyOpen indicates Insert of a node that already has a slot.
	ErrCodeNodeAlreadyOpen ErrorCode = "NODE_ALREADY_OPEN"

	// ErrCodeSlotCorrupt indicates a node's slot disagrees with the heap array.
	ErrCodeSlotCorrupt ErrorCode = "SLOT_CORRUPT"

	// ErrCodeDanglingParent indicates a parent identity missing from the store.
	ErrCodeDanglingParent ErrorCode = "DANGLING_PARENT"

	// ErrCodeParentCycle indicates parent links that never reach the root.
	ErrCodeParentCycle ErrorCode = "PARENT_CYCLE"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s: %s (node=%s)", e.Code, e.Message, e.Node)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func errEmptyOpenSet() *Error {
	return &Error{
		Code:    ErrCodeEmptyOpenSet,
		Message: "cannot pop from an empty open set",
	}
}

func errNodeClosed(node string) *Error {
	return &Error{
		Code:    ErrCodeNodeClosed,
		Message: "decrease-key is only valid for open nodes",
		Node:    node,
	}
}

func errNodeAlreadyOpen(node string, slot int) *Error {
	return &Error{
		Code:    ErrCodeNodeAlreadyOpen,
		Message: "node is already in the open set",
		Node:    node,
		Details: map[string]string{"slot": fmt.Sprintf("%d", slot)},
	}
}

func errSlotCorrupt(node string, slot, length int) *Error {
	return &Error{
		Code:    ErrCodeSlotCorrupt,
		Message: fmt.Sprintf("slot %d does not hold this node (len=%d)", slot, length),
		Node:    node,
		Details: map[string]string{
			"slot": fmt.Sprintf("%d", slot),
			"len":  fmt.Sprintf("%d", length),
		},
	}
}

func errDanglingParent(node, parent string) *Error {
	return &Error{
		Code:    ErrCodeDanglingParent,
		Message: "parent identity not found in visited store",
		Node:    node,
		Details: map[string]string{"parent": parent},
	}
}

func errParentCycle(node string, steps int) *Error {
	return &Error{
		Code:    ErrCodeParentCycle,
		Message: fmt.Sprintf("parent chain did not reach the root after %d steps", steps),
		Node:    node,
	}
}

// IsEmptyError returns true if err is an empty open set error.
// Uses errors.As to handle wrapped errors.
func IsEmptyError(err error) bool {
	return hasCode(err, ErrCodeEmptyOpenSet)
}

// IsClosedNodeError returns true if err is a decrease-key on a closed node.
func IsClosedNodeError(err error) bool {
	return hasCode(err, ErrCodeNodeClosed)
}

// IsCorruptionError returns true for errors that mean the heap or the
// parent chain no longer satisfies its invariants.
func IsCorruptionError(err error) bool {
	return hasCode(err, ErrCodeSlotCorrupt) ||
		hasCode(err, ErrCodeNodeAlreadyOpen) ||
		hasCode(err, ErrCodeDanglingParent) ||
		hasCode(err, ErrCodeParentCycle)
}

func hasCode(err error, code ErrorCode) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}
