package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedula/models"
)

func bookedAppointment(t *testing.T) *models.Appointment {
	t.Helper()
	a, err := NewAppointment("a1", "cust1", "p1", "svc1", at(t, "09:00"), at(t, "10:00"), at(t, "08:00"))
	require.NoError(t, err)
	return a
}

func TestNewAppointment(t *testing.T) {
	a := bookedAppointment(t)
	assert.Equal(t, models.StatusBooked, a.Status)
	require.Len(t, a.History, 1)
	assert.Equal(t, string(models.StatusBooked), a.History[0].Status)
}

func TestNewAppointmentRejectsEmptyInterval(t *testing.T) {
	_, err := NewAppointment("a1", "cust1", "p1", "svc1", at(t, "09:00"), at(t, "09:00"), at(t, "08:00"))
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestRescheduleAppendsEditedEntry(t *testing.T) {
	a := bookedAppointment(t)
	entry, err := Reschedule(a, "svc2", at(t, "11:00"), at(t, "12:00"), at(t, "08:30"))
	require.NoError(t, err)

	assert.Equal(t, TransitionEdited, entry.Status)
	assert.Equal(t, models.StatusBooked, a.Status)
	assert.Equal(t, "svc2", a.ServiceID)
	assert.Equal(t, at(t, "11:00"), a.DateTime)
	require.Len(t, a.History, 2)
	assert.Equal(t, TransitionEdited, a.History[1].Status)
}

func TestCancelRecordsReasonAndHistory(t *testing.T) {
	a := bookedAppointment(t)
	entry, err := Cancel(a, "customer request", at(t, "08:30"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusCancelled, a.Status)
	assert.Equal(t, "customer request", a.CancellationReason)
	require.NotNil(t, a.CancellationTimestamp)
	assert.Equal(t, string(models.StatusCancelled), entry.Status)
	require.Len(t, a.History, 2)
}

func TestCancelRequiresReason(t *testing.T) {
	a := bookedAppointment(t)
	_, err := Cancel(a, "", at(t, "08:30"))
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.StatusBooked, a.Status)
}

func TestCancelTwiceIsConflict(t *testing.T) {
	a := bookedAppointment(t)
	_, err := Cancel(a, "first", at(t, "08:30"))
	require.NoError(t, err)

	_, err = Cancel(a, "second", at(t, "08:35"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)
	// The first cancellation's record survives untouched.
	assert.Equal(t, "first", a.CancellationReason)
	assert.Len(t, a.History, 2)
}

func TestRescheduleCancelledIsConflict(t *testing.T) {
	a := bookedAppointment(t)
	_, err := Cancel(a, "done", at(t, "08:30"))
	require.NoError(t, err)

	_, err = Reschedule(a, "svc1", at(t, "11:00"), at(t, "12:00"), at(t, "08:40"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestComplete(t *testing.T) {
	a := bookedAppointment(t)
	entry, err := Complete(a, at(t, "10:30"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, a.Status)
	assert.Equal(t, string(models.StatusCompleted), entry.Status)

	_, err = Complete(a, at(t, "10:35"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)
}

func TestNewBlockedTime(t *testing.T) {
	b, err := NewBlockedTime("b1", "p1", at(t, "09:00"), at(t, "10:00"), "maintenance", at(t, "08:00"))
	require.NoError(t, err)
	assert.Equal(t, models.BlockedActive, b.Status)

	_, err = NewBlockedTime("b2", "p1", at(t, "10:00"), at(t, "10:00"), "", at(t, "08:00"))
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestCancelBlockTwiceIsConflict(t *testing.T) {
	b, err := NewBlockedTime("b1", "p1", at(t, "09:00"), at(t, "10:00"), "maintenance", at(t, "08:00"))
	require.NoError(t, err)

	require.NoError(t, CancelBlock(b, "no longer needed", at(t, "08:30")))
	assert.Equal(t, models.BlockedCancelled, b.Status)

	err = CancelBlock(b, "again", at(t, "08:35"))
	var cErr ConflictError
	require.ErrorAs(t, err, &cErr)
}
