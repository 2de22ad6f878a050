package scheduling

import (
	"strings"
	"time"

	"schedula/models"
	"schedula/utils"
)

// ResolveDaySchedule resolves the effective open window for a provider on the
// given calendar day. Provider hours win when present; otherwise the owning
// company's schedule applies. The returned schedule is tagged with its source
// so callers can tell which tier answered.
//
// When the day is closed the schedule is nil and the reason code says why;
// that is a successful outcome, not an error. Malformed clock strings in the
// stored schedule surface as a ValidationError with code INVALID_TIME.
func ResolveDaySchedule(provider *models.Provider, company *models.Company, date time.Time) (*models.DaySchedule, string, error) {
	hours := provider.WorkingHours
	source := models.SourceProvider
	if len(hours) == 0 && company != nil {
		hours = company.WorkingHours
		source = models.SourceCompany
	}
	if len(hours) == 0 {
		return nil, models.ReasonNoWorkingHours, nil
	}

	// Company holidays close the day for every provider of that company,
	// whichever schedule tier answered.
	if company != nil {
		dateStr := date.Format(utils.DateLayout)
		for _, h := range company.Holidays {
			if h.Date == dateStr {
				return nil, models.ReasonNoWorkingHoursForDay, nil
			}
		}
	}

	weekday := date.Weekday().String()
	var entry *models.WorkingHour
	for i := range hours {
		if strings.EqualFold(hours[i].Day, weekday) {
			entry = &hours[i]
			break
		}
	}
	if entry == nil {
		return nil, models.ReasonNoWorkingHoursForDay, nil
	}

	// Only company schedules carry an explicit on/off flag; provider
	// schedules are assumed on when an entry exists.
	if source == models.SourceCompany && entry.IsDayOn != nil && !*entry.IsDayOn {
		return nil, models.ReasonNoWorkingHoursForDay, nil
	}

	start, err := utils.AnchorClock(date, entry.Start)
	if err != nil {
		return nil, "", ValidationError{Field: "workingHours.start", Code: models.ReasonInvalidTime, Message: err.Error()}
	}
	end, err := utils.AnchorClock(date, entry.End)
	if err != nil {
		return nil, "", ValidationError{Field: "workingHours.end", Code: models.ReasonInvalidTime, Message: err.Error()}
	}
	if !end.After(start) {
		return nil, "", ValidationError{Field: "workingHours", Code: models.ReasonInvalidTime, Message: "end is not after start"}
	}

	breaks := make([]models.Interval, 0, len(entry.Breaks))
	for _, b := range entry.Breaks {
		bs, err := utils.AnchorClock(date, b.Start)
		if err != nil {
			return nil, "", ValidationError{Field: "workingHours.breaks", Code: models.ReasonInvalidTime, Message: err.Error()}
		}
		be, err := utils.AnchorClock(date, b.End)
		if err != nil {
			return nil, "", ValidationError{Field: "workingHours.breaks", Code: models.ReasonInvalidTime, Message: err.Error()}
		}
		breaks = append(breaks, models.Interval{Start: bs, End: be})
	}

	return &models.DaySchedule{
		Date:   date,
		Start:  start,
		End:    end,
		Breaks: breaks,
		Buffer: entry.BufferTime,
		Source: source,
	}, "", nil
}
