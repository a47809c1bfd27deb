package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of every input validation failure.
// Specific validation errors wrap it so callers can test either level.
var ErrValidation = errors.New("validation failed")

var (
	// Validation errors
	ErrInvalidGroupName   = fmt.Errorf("%w: invalid group name", ErrValidation)
	ErrInvalidMemberName  = fmt.Errorf("%w: invalid member name", ErrValidation)
	ErrInvalidDescription = fmt.Errorf("%w: invalid description", ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrAmountTooLarge     = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrNoParticipants     = fmt.Errorf("%w: expense must have at least one participant", ErrValidation)
	ErrUnknownMember      = fmt.Errorf("%w: unknown member", ErrValidation)
	ErrInvalidCurrency    = fmt.Errorf("%w: invalid currency code", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrPayeeNotEligible   = fmt.Errorf("%w: payee is not owed any money", ErrValidation)
	ErrNothingToSummarize = fmt.Errorf("%w: group has no expenses to summarize", ErrValidation)

	// Registry errors
	ErrDuplicateGroup  = errors.New("group already exists")
	ErrDuplicateMember = errors.New("member already exists in group")
	ErrGroupNotFound   = errors.New("group not found")
	ErrMemberNotFound  = errors.New("member not found in group")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidToken    = errors.New("invalid session token")
	ErrExpiredToken    = errors.New("session token has expired")

	// Collaborator errors
	ErrExternalService = errors.New("external service failed")
	ErrServiceDisabled = errors.New("external service is not configured")
)
