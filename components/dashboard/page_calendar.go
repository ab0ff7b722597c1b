package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date     string `json:"date"`
	Day      int    `json:"day"`
	Outside  bool   `json:"outside"`
	Today    bool   `json:"today"`
	Selected bool   `json:"selected"`
}

// EventForm holds the defaults of the Add Event dialog. Submitted values are
// never read.
type EventForm struct {
	Date       string   `json:"date"`
	StartTime  string   `json:"start_time"`
	EndTime    string   `json:"end_time"`
	Type       string   `json:"type"`
	EventTypes []string `json:"event_types"`
}

// CalendarSnapshot is the calendar page state.
type CalendarSnapshot struct {
	Selected   string          `json:"selected"`
	MonthLabel string          `json:"month_label"`
	Month      string          `json:"month"`
	Weekdays   []string        `json:"weekdays"`
	Weeks      [][]CalendarDay `json:"weeks"`
	Events     []CalendarEvent `json:"events"`
	DialogOpen bool            `json:"dialog_open"`
	Form       EventForm       `json:"form"`
}

var weekdayLabels = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

var eventTypes = []string{"meeting", "task", "reminder", "other"}

// CalendarView shows a month grid and the upcoming events list.
type CalendarView struct {
	now        func() time.Time
	selected   time.Time
	month      time.Time
	events     []CalendarEvent
	dialogOpen bool
	telemetry  Telemetry
}

// NewCalendarView mounts the calendar with today selected.
func NewCalendarView(mount MountContext) (PageView, error) {
	today := truncateDay(mount.now())
	return &CalendarView{
		now:       mount.now,
		selected:  today,
		month:     firstOfMonth(today),
		events:    append([]CalendarEvent(nil), mount.Data.Events...),
		telemetry: normalizeTelemetry(mount.Telemetry),
	}, nil
}

func (v *CalendarView) Key() PageKey { return PageCalendar }

func (v *CalendarView) Snapshot() PageSnapshot {
	today := truncateDay(v.now())
	return PageSnapshot{Key: PageCalendar, Calendar: &CalendarSnapshot{
		Selected:   v.selected.Format(DateLayout),
		MonthLabel: v.month.Format("January 2006"),
		Month:      v.month.Format("2006-01"),
		Weekdays:   append([]string(nil), weekdayLabels...),
		Weeks:      MonthGrid(v.month, v.selected, today),
		Events:     append([]CalendarEvent(nil), v.events...),
		DialogOpen: v.dialogOpen,
		Form: EventForm{
			Date:       today.Format(DateLayout),
			StartTime:  "09:00",
			EndTime:    "10:00",
			Type:       eventTypes[0],
			EventTypes: append([]string(nil), eventTypes...),
		},
	}}
}

func (v *CalendarView) Dispatch(ctx context.Context, action Action) error {
	switch action.Kind {
	case ActionSelectDate:
		date, err := ParseDate(action.Date)
		if err != nil {
			return err
		}
		v.selected = date
		v.month = firstOfMonth(date)
	case ActionShiftMonth:
		if action.Months == 0 {
			return fmt.Errorf("%w: months must be non-zero", ErrInvalidAction)
		}
		v.month = v.month.AddDate(0, action.Months, 0)
	case ActionOpenDialog:
		if action.Dialog != DialogAddEvent {
			return unsupported(PageCalendar, action)
		}
		v.dialogOpen = true
	case ActionCloseDialog, ActionSubmitDialog:
		// Save closes exactly like Cancel; no event is recorded.
		v.dialogOpen = false
	default:
		return unsupported(PageCalendar, action)
	}
	v.telemetry.Record(ctx, "dashboard.calendar.action", map[string]any{
		"kind":     string(action.Kind),
		"selected": v.selected.Format(DateLayout),
	})
	return nil
}

func (v *CalendarView) Teardown() {}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return date, nil
}

// MonthGrid lays out the weeks covering month, starting on Sunday. Days from
// adjacent months are flagged Outside.
func MonthGrid(month, selected, today time.Time) [][]CalendarDay {
	first := firstOfMonth(month)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	last := first.AddDate(0, 1, -1)
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var (
		weeks [][]CalendarDay
		week  []CalendarDay
	)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		week = append(week, CalendarDay{
			Date:     day.Format(DateLayout),
			Day:      day.Day(),
			Outside:  day.Month() != first.Month(),
			Today:    sameDay(day, today),
			Selected: sameDay(day, selected),
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	return weeks
}

// Dates are kept as UTC midnights so day arithmetic is DST free.
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
