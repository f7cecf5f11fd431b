// internal/domain/errors.go
package domain

import "errors"

var (
	// General errors
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// Identity errors
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooWeak    = errors.New("password too weak")
	ErrInvalidNonce       = errors.New("invalid nonce")

	// Authorization errors
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrCrossTenant      = errors.New("resource belongs to another organization")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrNotOwner         = errors.New("not the owner of this resource")

	// Admin invariant errors
	ErrSelfAction    = errors.New("cannot perform this action on yourself")
	ErrLastAdmin     = errors.New("organization must retain at least one admin")
	ErrTargetIsAdmin = errors.New("target user is an admin")

	// Profile and organization errors
	ErrUserNotFound         = errors.New("user not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrProfileExists        = errors.New("profile already exists")

	// Event errors
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidStatus  = errors.New("invalid event status")
	ErrEventSubmitted = errors.New("submitted events can only be modified by an admin")
	ErrTagNotFound    = errors.New("tag not found")
	ErrTagNameTaken   = errors.New("tag name already in use")

	// Invitation errors
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("this invitation has expired")
	ErrAlreadyMember      = errors.New("email already belongs to an organization member")
	ErrDuplicatePending   = errors.New("a pending invitation already exists for this email")
	ErrAlreadyRegistered  = errors.New("email is already registered")
	ErrEmailMismatch      = errors.New("invitation was issued for a different email")
)
