package models

import "time"

// Event represents a planned calendar event with a notification reminder.
// ReminderAt and ReminderPassed are computed when the event is served,
// not stored.
type Event struct {
	ID              int       `json:"id"`
	UserID          string    `json:"userId"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	ReminderMinutes int       `json:"reminderMinutes"`
	ReminderAt      time.Time `json:"reminderAt"`
	ReminderPassed  bool      `json:"reminderPassed"`
	CreatedAt       string    `json:"createdAt"`
}

// ReminderTime returns the moment the reminder notification should fire
func (e Event) ReminderTime() time.Time {
	return e.Date.Add(-time.Duration(e.ReminderMinutes) * time.Minute)
}

// FillReminder populates the computed reminder fields
func (e *Event) FillReminder(now time.Time) {
	e.ReminderAt = e.ReminderTime()
	e.ReminderPassed = e.ReminderAt.Before(now)
}

// CreateEventRequest is the request body for planning an event
type CreateEventRequest struct {
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	Date            time.Time `json:"date"`
	ReminderMinutes int       `json:"reminder_minutes"`
}
