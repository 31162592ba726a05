package emtapi

import (
	"encoding/json"
	"time"
)

// Page is the pagination envelope used by all list endpoints of the backend.
type Page[T any] struct {
	Count       int  `json:"count"`
	PageSize    int  `json:"page_size"`
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	NextPage    *int `json:"next_page"`
	PrevPage    *int `json:"prev_page"`
	Results     []T  `json:"results"`
}

type AthleteLevel struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Description string `json:"description,omitempty"`
}

// Athlete as returned by the backend. Level, SportType and Params come back
// either as an id or as a nested object, so they are kept raw.
type Athlete struct {
	ID         int             `json:"id"`
	Firstname  string          `json:"firstname"`
	Lastname   string          `json:"lastname"`
	Name       string          `json:"name,omitempty"`
	Patronymic string          `json:"patronymic"`
	BirthYear  json.Number     `json:"birth_year,omitempty"`
	Level      json.RawMessage `json:"level,omitempty"`
	LevelID    int             `json:"level_id,omitempty"`
	SportType  json.RawMessage `json:"sport_type,omitempty"`
	Params     json.RawMessage `json:"params,omitempty"`
	Picture    string          `json:"picture,omitempty"`
	CreatedAt  *time.Time      `json:"created_at,omitempty"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

type AthleteParams struct {
	ID          int        `json:"id,omitempty"`
	Athlete     int        `json:"athlete"`
	BMI         float64    `json:"bmi,omitempty"`
	Weight      float64    `json:"weight"`
	Height      float64    `json:"height"`
	Description string     `json:"description,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

type SportType struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Number      int    `json:"number,omitempty"`
	Description string `json:"description,omitempty"`
}

type Muscle struct {
	ID          int    `json:"id,omitempty"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Shortname   string `json:"shortname"`
	ModelURL    string `json:"model_url,omitempty"`
	Description string `json:"description,omitempty"`
}

type TrainingSession struct {
	ID            int             `json:"id"`
	Title         string          `json:"title,omitempty"`
	Athlete       json.RawMessage `json:"athlete,omitempty"`
	SportType     json.RawMessage `json:"sport_type,omitempty"`
	AthleteName   string          `json:"athlete_fullname,omitempty"`
	SportTypeName string          `json:"sport_type_name,omitempty"`
	PreHeartRate  int             `json:"pre_heart_rate"`
	PostHeartRate int             `json:"post_heart_rate"`
	ExerciseCount int             `json:"exercise_count"`
	Duration      int             `json:"duration"`
	FileEMT       string          `json:"file_EMT,omitempty"`
	FileECG       string          `json:"file_ECG,omitempty"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty"`
}

type Exercise struct {
	ID           int             `json:"id,omitempty"`
	FirstCount   int             `json:"first_count"`
	LastCount    int             `json:"last_count"`
	Training     int             `json:"training"`
	SignalLength int             `json:"signal_length"`
	HRate        float64         `json:"hrate,omitempty"`
	Description  string          `json:"description"`
	Muscles      []MuscleFatigue `json:"muscles,omitempty"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty"`
}

type MuscleFatigue struct {
	ID       int             `json:"id,omitempty"`
	Exercise int             `json:"exercise"`
	Muscle   json.RawMessage `json:"muscle"`
	Fatigue  float64         `json:"fatigue"`
}

// NewExercise is the payload for creating an exercise segment of a training.
type NewExercise struct {
	SignalLength int    `json:"signal_length"`
	FirstCount   int    `json:"first_count"`
	LastCount    int    `json:"last_count"`
	Training     int    `json:"training"`
	Description  string `json:"description"`
}

// SignalTable is one training's EMT signals: one named channel per muscle,
// every channel indexed 0..RowsCount-1.
type SignalTable struct {
	Message   string               `json:"message,omitempty"`
	RowsCount int                  `json:"rows_count"`
	Columns   []string             `json:"columns"`
	Signals   map[string][]float64 `json:"signals"`
}

// FatigueSeries is the per-exercise fatigue of one muscle within a training,
// ordered by exercise start.
type FatigueSeries struct {
	Message   string    `json:"message,omitempty"`
	RowsCount int       `json:"rows_count"`
	Columns   []string  `json:"columns"`
	Signals   []float64 `json:"signals"`
}

// KLoadGraph holds the load-adaptation coefficient per training of an athlete.
type KLoadGraph struct {
	Message   string   `json:"message,omitempty"`
	RowsCount int      `json:"rows_count"`
	Columns   []string `json:"columns"`
	Signals   struct {
		KAdaptLoad []float64 `json:"k_adapt_load"`
		Datetimes  []string  `json:"datetimes"`
		Titles     []string  `json:"titles"`
	} `json:"signals"`
}

type Profile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
}

// FormFile is an uploaded file forwarded to the backend as multipart content.
type FormFile struct {
	Field    string
	Filename string
	Content  []byte
}
