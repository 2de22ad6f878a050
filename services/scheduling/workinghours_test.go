package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedula/models"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mondayHours(start, end string) []models.WorkingHour {
	return []models.WorkingHour{{Day: "Monday", Start: start, End: end}}
}

func TestResolveDayScheduleProviderWins(t *testing.T) {
	provider := &models.Provider{ID: "p1", WorkingHours: mondayHours("10:00", "16:00")}
	company := &models.Company{ID: "c1", WorkingHours: mondayHours("09:00", "17:00")}

	sched, reason, err := ResolveDaySchedule(provider, company, monday)
	require.NoError(t, err)
	require.Empty(t, reason)
	require.NotNil(t, sched)
	assert.Equal(t, models.SourceProvider, sched.Source)
	assert.Equal(t, "10:00", sched.Start.Format("15:04"))
	assert.Equal(t, "16:00", sched.End.Format("15:04"))
}

func TestResolveDayScheduleCompanyFallback(t *testing.T) {
	provider := &models.Provider{ID: "p1"}
	company := &models.Company{ID: "c1", WorkingHours: mondayHours("09:00", "17:00")}

	sched, reason, err := ResolveDaySchedule(provider, company, monday)
	require.NoError(t, err)
	require.Empty(t, reason)
	require.NotNil(t, sched)
	assert.Equal(t, models.SourceCompany, sched.Source)
	assert.Equal(t, "09:00", sched.Start.Format("15:04"))
}

func TestResolveDayScheduleNoHoursAnywhere(t *testing.T) {
	sched, reason, err := ResolveDaySchedule(&models.Provider{ID: "p1"}, &models.Company{ID: "c1"}, monday)
	require.NoError(t, err)
	assert.Nil(t, sched)
	assert.Equal(t, models.ReasonNoWorkingHours, reason)
}

func TestResolveDayScheduleNoEntryForWeekday(t *testing.T) {
	provider := &models.Provider{ID: "p1", WorkingHours: []models.WorkingHour{
		{Day: "Tuesday", Start: "09:00", End: "17:00"},
	}}
	sched, reason, err := ResolveDaySchedule(provider, nil, monday)
	require.NoError(t, err)
	assert.Nil(t, sched)
	assert.Equal(t, models.ReasonNoWorkingHoursForDay, reason)
}

func TestResolveDayScheduleWeekdayMatchIsCaseInsensitive(t *testing.T) {
	provider := &models.Provider{ID: "p1", WorkingHours: []models.WorkingHour{
		{Day: "monday", Start: "09:00", End: "17:00"},
	}}
	sched, reason, err := ResolveDaySchedule(provider, nil, monday)
	require.NoError(t, err)
	require.Empty(t, reason)
	require.NotNil(t, sched)
}

func TestResolveDayScheduleCompanyHolidayClosesProviderDay(t *testing.T) {
	// The holiday applies even when the provider's own schedule answered.
	provider := &models.Provider{ID: "p1", WorkingHours: mondayHours("09:00", "17:00")}
	company := &models.Company{ID: "c1", Holidays: []models.Holiday{{Date: "2026-03-02", Description: "Founders' Day"}}}

	sched, reason, err := ResolveDaySchedule(provider, company, monday)
	require.NoError(t, err)
	assert.Nil(t, sched)
	assert.Equal(t, models.ReasonNoWorkingHoursForDay, reason)
}

func TestResolveDayScheduleCompanyDayToggledOff(t *testing.T) {
	off := false
	company := &models.Company{ID: "c1", WorkingHours: []models.WorkingHour{
		{Day: "Monday", Start: "09:00", End: "17:00", IsDayOn: &off},
	}}
	sched, reason, err := ResolveDaySchedule(&models.Provider{ID: "p1"}, company, monday)
	require.NoError(t, err)
	assert.Nil(t, sched)
	assert.Equal(t, models.ReasonNoWorkingHoursForDay, reason)
}

func TestResolveDayScheduleInvalidClock(t *testing.T) {
	provider := &models.Provider{ID: "p1", WorkingHours: mondayHours("9am", "17:00")}

	_, _, err := ResolveDaySchedule(provider, nil, monday)
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.ReasonInvalidTime, vErr.Code)
}

func TestResolveDayScheduleEndNotAfterStart(t *testing.T) {
	provider := &models.Provider{ID: "p1", WorkingHours: mondayHours("17:00", "09:00")}

	_, _, err := ResolveDaySchedule(provider, nil, monday)
	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, models.ReasonInvalidTime, vErr.Code)
}

func TestResolveDayScheduleAnchorsBreaks(t *testing.T) {
	provider := &models.Provider{ID: "p1", WorkingHours: []models.WorkingHour{
		{Day: "Monday", Start: "09:00", End: "17:00", Breaks: []models.BreakPeriod{{Start: "12:00", End: "13:00"}}, BufferTime: 5},
	}}
	sched, _, err := ResolveDaySchedule(provider, nil, monday)
	require.NoError(t, err)
	require.Len(t, sched.Breaks, 1)
	assert.Equal(t, "12:00", sched.Breaks[0].Start.Format("15:04"))
	assert.Equal(t, "13:00", sched.Breaks[0].End.Format("15:04"))
	assert.Equal(t, 5, sched.Buffer)
	assert.True(t, sched.Breaks[0].Start.Equal(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)))
}
