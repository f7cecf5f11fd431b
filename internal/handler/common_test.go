package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/beatbookhq/beatbook/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvitationExpired, http.StatusBadRequest, "Invitation has expired"},
		{domain.ErrPasswordTooWeak, http.StatusBadRequest, "Password does not meet requirements"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "Authentication required"},
		{domain.ErrInsufficientRole, http.StatusForbidden, "Insufficient role"},
		{domain.ErrCrossTenant, http.StatusForbidden, "Resource belongs to another organization"},
		{domain.ErrEmailMismatch, http.StatusForbidden, "Invitation was issued to a different email"},
		{domain.ErrLastAdmin, http.StatusConflict, "Organization must keep at least one admin"},
		{domain.ErrEventSubmitted, http.StatusConflict, "Submitted events are locked"},
		{domain.ErrDuplicatePending, http.StatusConflict, "A pending invitation already exists for that email"},
		{domain.ErrEventNotFound, http.StatusNotFound, "Not found"},
		{domain.ErrInvitationNotFound, http.StatusNotFound, "Not found"},
		{assert.AnError, http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			code, message := errorStatus(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, message)
		})
	}

	t.Run("wrapped errors map the same as bare ones", func(t *testing.T) {
		code, _ := errorStatus(fmt.Errorf("accepting invitation: %w", domain.ErrInvitationExpired))
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("error statuses stay within the documented set", func(t *testing.T) {
		allowed := map[int]bool{
			http.StatusBadRequest:          true,
			http.StatusUnauthorized:        true,
			http.StatusForbidden:           true,
			http.StatusNotFound:            true,
			http.StatusConflict:            true,
			http.StatusInternalServerError: true,
		}
		for _, err := range []error{
			domain.ErrInvalidInput, domain.ErrInvalidStatus, domain.ErrInvalidNonce,
			domain.ErrPasswordTooWeak, domain.ErrInvalidCredentials, domain.ErrUnauthenticated,
			domain.ErrInsufficientRole, domain.ErrCrossTenant, domain.ErrNotOwner,
			domain.ErrSelfAction, domain.ErrTargetIsAdmin, domain.ErrEmailMismatch,
			domain.ErrLastAdmin, domain.ErrEventSubmitted, domain.ErrEmailAlreadyExists,
			domain.ErrProfileExists, domain.ErrTagNameTaken, domain.ErrDuplicatePending,
			domain.ErrAlreadyMember, domain.ErrAlreadyRegistered, domain.ErrInvitationExpired,
			domain.ErrEventNotFound, domain.ErrTagNotFound, domain.ErrInvitationNotFound,
			domain.ErrUserNotFound, domain.ErrOrganizationNotFound, domain.ErrIdentityNotFound,
			domain.ErrNotFound,
		} {
			code, _ := errorStatus(err)
			assert.True(t, allowed[code], "%v maps to undocumented status %d", err, code)
		}
	})
}
