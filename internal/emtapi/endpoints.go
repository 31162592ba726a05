package emtapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// auth

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	req, err := jsonRequest("login", http.MethodPost, "auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		Token  string `json:"token"`
		Expiry string `json:"expiry"`
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("backend login: empty token")
	}
	return resp.Token, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	req, _ := jsonRequest("logout", http.MethodPost, "auth/logout", token, nil)
	return c.do(ctx, req, nil)
}

func (c *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	req, _ := jsonRequest("profile", http.MethodGet, "auth/profile", token, nil)
	profile := &Profile{}
	if err := c.do(ctx, req, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// athletes

func (c *Client) ListAthletes(ctx context.Context, token string, page int) (*Page[Athlete], error) {
	req, _ := jsonRequest("listAthletes", http.MethodGet, "athletes", token, nil)
	if page > 1 {
		req.query = url.Values{"page": {strconv.Itoa(page)}}
	}
	athletes := &Page[Athlete]{}
	if err := c.do(ctx, req, athletes); err != nil {
		return nil, err
	}
	return athletes, nil
}

func (c *Client) GetAthlete(ctx context.Context, token string, id int) (*Athlete, error) {
	req, _ := jsonRequest("getAthlete", http.MethodGet, idPath("athletes", id), token, nil)
	athlete := &Athlete{}
	if err := c.do(ctx, req, athlete); err != nil {
		return nil, err
	}
	return athlete, nil
}

// CreateAthlete posts the athlete as a multipart form, the picture (if any) as a file part.
func (c *Client) CreateAthlete(ctx context.Context, token string, fields map[string]string, files []FormFile) (*Athlete, error) {
	req, err := formRequest("createAthlete", "athletes", token, fields, files)
	if err != nil {
		return nil, err
	}
	athlete := &Athlete{}
	if err := c.do(ctx, req, athlete); err != nil {
		return nil, err
	}
	return athlete, nil
}

func (c *Client) UpdateAthlete(ctx context.Context, token string, id int, patch map[string]any) (*Athlete, error) {
	req, err := jsonRequest("updateAthlete", http.MethodPatch, idPath("athletes", id), token, patch)
	if err != nil {
		return nil, err
	}
	athlete := &Athlete{}
	if err := c.do(ctx, req, athlete); err != nil {
		return nil, err
	}
	return athlete, nil
}

func (c *Client) DeleteAthlete(ctx context.Context, token string, id int) error {
	req, _ := jsonRequest("deleteAthlete", http.MethodDelete, idPath("athletes", id), token, nil)
	return c.do(ctx, req, nil)
}

func (c *Client) KLoadGraph(ctx context.Context, token string, athleteID int, muscle string) (*KLoadGraph, error) {
	req, _ := jsonRequest("kLoadGraph", http.MethodGet, idPath("athletes", athleteID, "k_load_graph"), token, nil)
	req.query = optionalQuery("muscle", muscle)
	graph := &KLoadGraph{}
	if err := c.do(ctx, req, graph); err != nil {
		return nil, err
	}
	return graph, nil
}

// athlete params

func (c *Client) ListAthleteParams(ctx context.Context, token string, athleteID int) (*Page[AthleteParams], error) {
	req, _ := jsonRequest("listAthleteParams", http.MethodGet, "athlete-params", token, nil)
	req.query = url.Values{"athlete_id": {strconv.Itoa(athleteID)}}
	params := &Page[AthleteParams]{}
	if err := c.do(ctx, req, params); err != nil {
		return nil, err
	}
	return params, nil
}

func (c *Client) CreateAthleteParams(ctx context.Context, token string, params AthleteParams) (*AthleteParams, error) {
	req, err := jsonRequest("createAthleteParams", http.MethodPost, "athlete-params", token, params)
	if err != nil {
		return nil, err
	}
	created := &AthleteParams{}
	if err := c.do(ctx, req, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) UpdateAthleteParams(ctx context.Context, token string, id int, params AthleteParams) (*AthleteParams, error) {
	req, err := jsonRequest("updateAthleteParams", http.MethodPut, idPath("athlete-params", id), token, params)
	if err != nil {
		return nil, err
	}
	updated := &AthleteParams{}
	if err := c.do(ctx, req, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *Client) DeleteAthleteParams(ctx context.Context, token string, id int) error {
	req, _ := jsonRequest("deleteAthleteParams", http.MethodDelete, idPath("athlete-params", id), token, nil)
	return c.do(ctx, req, nil)
}

// lookups

func (c *Client) ListAthleteLevels(ctx context.Context, token string) ([]AthleteLevel, error) {
	req, _ := jsonRequest("listAthleteLevels", http.MethodGet, "athlete-levels", token, nil)
	var levels []AthleteLevel
	if err := c.do(ctx, req, &levels); err != nil {
		return nil, err
	}
	return levels, nil
}

func (c *Client) ListSportTypes(ctx context.Context, token string) ([]SportType, error) {
	req, _ := jsonRequest("listSportTypes", http.MethodGet, "sport-types", token, nil)
	var sportTypes []SportType
	if err := c.do(ctx, req, &sportTypes); err != nil {
		return nil, err
	}
	return sportTypes, nil
}

// ListMusclesRaw returns the muscle list JSON as sent by the backend; both filters are optional.
func (c *Client) ListMusclesRaw(ctx context.Context, token, trainingID, athleteID string) ([]byte, error) {
	req, _ := jsonRequest("listMuscles", http.MethodGet, "muscles", token, nil)
	req.query = optionalQuery("training_id", trainingID, "athlete_id", athleteID)
	return c.doRaw(ctx, req)
}

func (c *Client) ListMuscles(ctx context.Context, token, trainingID, athleteID string) ([]Muscle, error) {
	raw, err := c.ListMusclesRaw(ctx, token, trainingID, athleteID)
	if err != nil {
		return nil, err
	}
	var muscles []Muscle
	if err := json.Unmarshal(raw, &muscles); err != nil {
		return nil, fmt.Errorf("unmarshal muscles: %w", err)
	}
	return muscles, nil
}

// training sessions

func (c *Client) ListTrainings(ctx context.Context, token string, athleteID int) (*Page[TrainingSession], error) {
	req, _ := jsonRequest("listTrainings", http.MethodGet, "training-sessions", token, nil)
	req.query = url.Values{"athlete_id": {strconv.Itoa(athleteID)}}
	trainings := &Page[TrainingSession]{}
	if err := c.do(ctx, req, trainings); err != nil {
		return nil, err
	}
	return trainings, nil
}

func (c *Client) GetTraining(ctx context.Context, token string, id int) (*TrainingSession, error) {
	req, _ := jsonRequest("getTraining", http.MethodGet, idPath("training-sessions", id), token, nil)
	training := &TrainingSession{}
	if err := c.do(ctx, req, training); err != nil {
		return nil, err
	}
	return training, nil
}

// CreateTraining posts the training as a multipart form with the EMT / ECG recordings as file parts.
func (c *Client) CreateTraining(ctx context.Context, token string, fields map[string]string, files []FormFile) (*TrainingSession, error) {
	req, err := formRequest("createTraining", "training-sessions", token, fields, files)
	if err != nil {
		return nil, err
	}
	training := &TrainingSession{}
	if err := c.do(ctx, req, training); err != nil {
		return nil, err
	}
	return training, nil
}

func (c *Client) UpdateTraining(ctx context.Context, token string, id int, update map[string]any) (*TrainingSession, error) {
	req, err := jsonRequest("updateTraining", http.MethodPut, idPath("training-sessions", id), token, update)
	if err != nil {
		return nil, err
	}
	training := &TrainingSession{}
	if err := c.do(ctx, req, training); err != nil {
		return nil, err
	}
	return training, nil
}

func (c *Client) DeleteTraining(ctx context.Context, token string, id int) error {
	req, _ := jsonRequest("deleteTraining", http.MethodDelete, idPath("training-sessions", id), token, nil)
	return c.do(ctx, req, nil)
}

// TrainingSignalsRaw returns the emtData JSON of a training unparsed, so it can be cached as is.
func (c *Client) TrainingSignalsRaw(ctx context.Context, token string, id int) ([]byte, error) {
	req, _ := jsonRequest("emtData", http.MethodGet, idPath("training-sessions", id, "emtData"), token, nil)
	return c.doRaw(ctx, req)
}

func (c *Client) TrainingSignals(ctx context.Context, token string, id int) (*SignalTable, error) {
	raw, err := c.TrainingSignalsRaw(ctx, token, id)
	if err != nil {
		return nil, err
	}
	return DecodeSignalTable(raw)
}

func DecodeSignalTable(raw []byte) (*SignalTable, error) {
	table := &SignalTable{}
	if err := json.Unmarshal(raw, table); err != nil {
		return nil, fmt.Errorf("unmarshal signal table: %w", err)
	}
	if table.RowsCount < 0 {
		return nil, fmt.Errorf("signal table: negative rows count %d", table.RowsCount)
	}
	return table, nil
}

func (c *Client) MuscleFatigueGraph(ctx context.Context, token string, trainingID int, muscle string) (*FatigueSeries, error) {
	req, _ := jsonRequest("muscleFatigueGraph", http.MethodGet, idPath("training-sessions", trainingID, "muscleFatigueGraph"), token, nil)
	req.query = optionalQuery("muscle", muscle)
	series := &FatigueSeries{}
	if err := c.do(ctx, req, series); err != nil {
		return nil, err
	}
	return series, nil
}

// exercises

func (c *Client) ListExercises(ctx context.Context, token string, trainingID int) (*Page[Exercise], error) {
	req, _ := jsonRequest("listExercises", http.MethodGet, "exercises", token, nil)
	req.query = url.Values{"training_id": {strconv.Itoa(trainingID)}}
	exercises := &Page[Exercise]{}
	if err := c.do(ctx, req, exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (c *Client) CreateExercise(ctx context.Context, token string, exercise NewExercise) (*Exercise, error) {
	req, err := jsonRequest("createExercise", http.MethodPost, "exercises", token, exercise)
	if err != nil {
		return nil, err
	}
	created := &Exercise{}
	if err := c.do(ctx, req, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *Client) DeleteExercise(ctx context.Context, token string, id int) error {
	req, _ := jsonRequest("deleteExercise", http.MethodDelete, idPath("exercises", id), token, nil)
	return c.do(ctx, req, nil)
}
