package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buildledger/payables_backend/internal/core/domain"
)

func TestPayableStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status domain.PayableStatus
		want   bool
	}{
		{domain.PayablePending, false},
		{domain.PayableApproved, false},
		{domain.PayablePartiallyPaid, false},
		{domain.PayablePaid, true},
		{domain.PayableCancelled, true},
		{domain.PayableVoid, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsTerminal())
		})
	}
}

func TestPayableStatus_IsPayable(t *testing.T) {
	tests := []struct {
		status domain.PayableStatus
		want   bool
	}{
		{domain.PayablePending, true},
		{domain.PayableApproved, true},
		{domain.PayablePartiallyPaid, true},
		{domain.PayablePaid, false},
		{domain.PayableCancelled, false},
		{domain.PayableVoid, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsPayable())
		})
	}
}
