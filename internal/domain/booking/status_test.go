package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  BookingStatus
		isValid bool
	}{
		{StatusInquiry, true},
		{StatusTentative, true},
		{StatusConfirmed, true},
		{StatusExecuted, true},
		{StatusCompleted, true},
		{StatusCancelled, true},
		{StatusConflict, true},
		{StatusWaitlist, true},
		{BookingStatus("INVALID"), false},
		{BookingStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		StatusInquiry:   {StatusTentative, StatusConfirmed, StatusCancelled},
		StatusTentative: {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusExecuted, StatusCancelled},
		StatusExecuted:  {StatusCompleted},
		StatusConflict:  {StatusTentative, StatusCancelled},
		StatusWaitlist:  {StatusTentative, StatusConfirmed, StatusCancelled},
		StatusCompleted: {},
		StatusCancelled: {},
	}

	all := []BookingStatus{
		StatusInquiry, StatusTentative, StatusConfirmed, StatusExecuted,
		StatusCompleted, StatusCancelled, StatusConflict, StatusWaitlist,
	}

	for from, targets := range allowed {
		permitted := make(map[BookingStatus]bool, len(targets))
		for _, to := range targets {
			permitted[to] = true
		}
		for _, to := range all {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				assert.Equal(t, permitted[to], from.CanTransitionTo(to))
			})
		}
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusInquiry.IsTerminal())
	assert.False(t, StatusConflict.IsTerminal())
	assert.False(t, StatusExecuted.IsTerminal())
}

func TestBookingStatus_OccupiesSlot(t *testing.T) {
	// An INQUIRY is a soft lead and CANCELLED bookings are gone; everything
	// else holds the venue slot.
	assert.False(t, StatusInquiry.OccupiesSlot())
	assert.False(t, StatusCancelled.OccupiesSlot())

	for _, s := range ActiveStatuses() {
		assert.True(t, s.OccupiesSlot(), "status %s should occupy the slot", s)
	}
}

func TestActiveStatuses_ExcludesInquiryAndCancelled(t *testing.T) {
	for _, s := range ActiveStatuses() {
		assert.NotEqual(t, StatusInquiry, s)
		assert.NotEqual(t, StatusCancelled, s)
	}
	assert.Len(t, ActiveStatuses(), 6)
}
