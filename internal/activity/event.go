package activity

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventLogin           EventType = "login"
	EventLogout          EventType = "logout"
	EventAthleteCreated  EventType = "athlete_created"
	EventAthleteDeleted  EventType = "athlete_deleted"
	EventTrainingCreated EventType = "training_created"
	EventTrainingDeleted EventType = "training_deleted"
	EventExerciseCreated EventType = "exercise_created"
	EventExerciseDeleted EventType = "exercise_deleted"
)

// Event is one dashboard action. SessionHint is a shortened session token,
// never the token itself.
type Event struct {
	ID          int             `json:"id"`
	Type        EventType       `json:"type"`
	SessionHint string          `json:"session_hint"`
	IP          string          `json:"ip"`
	Country     string          `json:"country,omitempty"`
	City        string          `json:"city,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type EventsPage struct {
	Total  int     `json:"total"`
	Page   int     `json:"page"`
	Size   int     `json:"size"`
	Events []Event `json:"events"`
}
