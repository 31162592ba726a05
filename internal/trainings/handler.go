package trainings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/emtdash/internal/activity"
	"github.com/2beens/emtdash/internal/apierr"
	"github.com/2beens/emtdash/internal/cache"
	"github.com/2beens/emtdash/internal/charts"
	"github.com/2beens/emtdash/internal/emtapi"
	"github.com/2beens/emtdash/internal/signal"
	"github.com/2beens/emtdash/internal/telemetry/tracing"
	"github.com/2beens/emtdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=trainings_test

type trainingsBackend interface {
	GetTraining(ctx context.Context, token string, id int) (*emtapi.TrainingSession, error)
	CreateTraining(ctx context.Context, token string, fields map[string]string, files []emtapi.FormFile) (*emtapi.TrainingSession, error)
	UpdateTraining(ctx context.Context, token string, id int, update map[string]any) (*emtapi.TrainingSession, error)
	DeleteTraining(ctx context.Context, token string, id int) error
	TrainingSignalsRaw(ctx context.Context, token string, id int) ([]byte, error)
	MuscleFatigueGraph(ctx context.Context, token string, trainingID int, muscle string) (*emtapi.FatigueSeries, error)
	ListExercises(ctx context.Context, token string, trainingID int) (*emtapi.Page[emtapi.Exercise], error)
	CreateExercise(ctx context.Context, token string, exercise emtapi.NewExercise) (*emtapi.Exercise, error)
	DeleteExercise(ctx context.Context, token string, id int) error
}

type signalCache interface {
	GetSignals(trainingID int) (*cache.Entry, bool)
	SetSignals(trainingID int, raw []byte) *cache.Entry
	InvalidateSignals(trainingID int)
}

type activityRecorder interface {
	Record(ctx context.Context, r *http.Request, eventType activity.EventType, data any)
}

type Handler struct {
	backend  trainingsBackend
	signals  signalCache
	activity activityRecorder
	sessions apierr.SessionDropper
}

func NewHandler(
	backend trainingsBackend,
	signals signalCache,
	activity activityRecorder,
	sessions apierr.SessionDropper,
) *Handler {
	return &Handler{
		backend:  backend,
		signals:  signals,
		activity: activity,
		sessions: sessions,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/trainings", h.handleCreate).Methods("POST").Name("trainings-create")
	router.HandleFunc("/trainings/{id}", h.handleGet).Methods("GET").Name("trainings-get")
	router.HandleFunc("/trainings/{id}", h.handleUpdate).Methods("PUT").Name("trainings-update")
	router.HandleFunc("/trainings/{id}", h.handleDelete).Methods("DELETE").Name("trainings-delete")
	router.HandleFunc("/trainings/{id}/signals", h.handleSignals).Methods("GET").Name("trainings-signals")
	router.HandleFunc("/trainings/{id}/selection", h.handleSelection).Methods("POST").Name("trainings-selection")
	router.HandleFunc("/trainings/{id}/exercises", h.handleListExercises).Methods("GET").Name("trainings-exercises-list")
	router.HandleFunc("/trainings/{id}/exercises", h.handleCreateExercise).Methods("POST").Name("trainings-exercises-create")
	router.HandleFunc("/trainings/{id}/fatigue", h.handleFatigue).Methods("GET").Name("trainings-fatigue")
	router.HandleFunc("/trainings/{id}/fatigue.png", h.handleFatiguePNG).Methods("GET").Name("trainings-fatigue-png")
	router.HandleFunc("/exercises/{id}", h.handleDeleteExercise).Methods("DELETE").Name("exercises-delete")
}

// signalEntry returns the training's emtData, from the cache when possible.
func (h *Handler) signalEntry(ctx context.Context, token string, trainingID int) (*cache.Entry, error) {
	if entry, found := h.signals.GetSignals(trainingID); found {
		return entry, nil
	}

	raw, err := h.backend.TrainingSignalsRaw(ctx, token, trainingID)
	if err != nil {
		return nil, err
	}
	// reject garbage before it gets cached
	if _, err := emtapi.DecodeSignalTable(raw); err != nil {
		return nil, fmt.Errorf("training %d signals: %w", trainingID, err)
	}

	return h.signals.SetSignals(trainingID, raw), nil
}

func rowsCount(entry *cache.Entry) (int, error) {
	var header struct {
		RowsCount int `json:"rows_count"`
	}
	if err := json.Unmarshal(entry.Data, &header); err != nil {
		return 0, fmt.Errorf("signal table rows count: %w", err)
	}
	return header.RowsCount, nil
}

func (h *Handler) trainingRowsCount(w http.ResponseWriter, r *http.Request, token string, trainingID int) (int, bool) {
	entry, err := h.signalEntry(r.Context(), token, trainingID)
	if err != nil {
		apierr.WriteBackendError(w, r, "training signals", err, h.sessions)
		return 0, false
	}
	rows, err := rowsCount(entry)
	if err != nil {
		log.Errorf("training %d: %s", trainingID, err)
		http.Error(w, "invalid signal table", http.StatusBadGateway)
		return 0, false
	}
	return rows, true
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.create")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	fields, files, err := emtapi.FormFromRequest(r, emtapi.DefaultMaxFormMemory)
	if err != nil {
		log.Debugf("create training: %s", err)
		http.Error(w, "invalid training form", http.StatusBadRequest)
		return
	}
	if _, err := strconv.Atoi(fields["athlete"]); err != nil {
		http.Error(w, "athlete is required", http.StatusBadRequest)
		return
	}

	training, err := h.backend.CreateTraining(ctx, token, fields, files)
	if err != nil {
		apierr.WriteBackendError(w, r, "create training", err, h.sessions)
		return
	}

	h.activity.Record(ctx, r, activity.EventTrainingCreated, map[string]any{
		"training_id": training.ID,
		"athlete":     fields["athlete"],
		"files":       len(files),
	})
	log.Infof("training created: %d", training.ID)
	pkg.WriteJSON(w, training, http.StatusCreated)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.get")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	training, err := h.backend.GetTraining(ctx, token, id)
	if err != nil {
		apierr.WriteBackendError(w, r, "get training", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, training, http.StatusOK)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.update")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	var update map[string]any
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil || len(update) == 0 {
		http.Error(w, "invalid training update", http.StatusBadRequest)
		return
	}

	training, err := h.backend.UpdateTraining(ctx, token, id, update)
	if err != nil {
		apierr.WriteBackendError(w, r, "update training", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, training, http.StatusOK)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.delete")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.backend.DeleteTraining(ctx, token, id); err != nil {
		apierr.WriteBackendError(w, r, "delete training", err, h.sessions)
		return
	}
	h.signals.InvalidateSignals(id)

	h.activity.Record(ctx, r, activity.EventTrainingDeleted, map[string]any{"training_id": id})
	log.Infof("training deleted: %d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSignals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.signals")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("training.id", id))

	entry, err := h.signalEntry(ctx, token, id)
	if err != nil {
		apierr.WriteBackendError(w, r, "training signals", err, h.sessions)
		return
	}

	w.Header().Set("ETag", entry.ETag)
	w.Header().Set("Cache-Control", "private, no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" && match == entry.ETag {
		span.SetAttributes(attribute.Bool("not-modified", true))
		w.WriteHeader(http.StatusNotModified)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entry.Data, http.StatusOK)
}

type selectionRequest struct {
	Event   json.RawMessage   `json:"event"`
	Current *signal.Selection `json:"current"`
}

type selectionResponse struct {
	Selection *signal.Selection `json:"selection"`
	Changed   bool              `json:"changed"`
}

// handleSelection applies a chart relayout event to the current selection,
// clamped to the training's signal length.
func (h *Handler) handleSelection(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.selection")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid selection request", http.StatusBadRequest)
		return
	}
	if len(req.Event) == 0 {
		http.Error(w, "event missing", http.StatusBadRequest)
		return
	}
	event, err := signal.ParseRelayoutEvent(req.Event)
	if err != nil {
		http.Error(w, "invalid relayout event", http.StatusBadRequest)
		return
	}

	rows, ok := h.trainingRowsCount(w, r, token, id)
	if !ok {
		return
	}

	selection := signal.Selector{RowsCount: rows}.Apply(event, req.Current)
	resp := selectionResponse{
		Selection: selection,
		Changed:   !sameSelection(selection, req.Current),
	}
	if selection != nil {
		span.SetAttributes(
			attribute.Int("selection.start", selection.Start),
			attribute.Int("selection.end", selection.End),
		)
	}

	pkg.WriteJSON(w, resp, http.StatusOK)
}

func sameSelection(a, b *signal.Selection) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (h *Handler) handleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.listExercises")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	exercises, err := h.backend.ListExercises(ctx, token, id)
	if err != nil {
		apierr.WriteBackendError(w, r, "list exercises", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, exercises, http.StatusOK)
}

type newExerciseRequest struct {
	Start       *int   `json:"start"`
	End         *int   `json:"end"`
	Description string `json:"description"`
}

func (h *Handler) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.createExercise")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	var req newExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid exercise", http.StatusBadRequest)
		return
	}
	if req.Start == nil || req.End == nil {
		http.Error(w, "no selection", http.StatusBadRequest)
		return
	}

	rows, ok := h.trainingRowsCount(w, r, token, id)
	if !ok {
		return
	}

	selection := signal.Selection{Start: *req.Start, End: *req.End}
	if err := selection.Validate(rows); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exercise, err := h.backend.CreateExercise(ctx, token, emtapi.NewExercise{
		SignalLength: selection.Length(),
		FirstCount:   selection.Start,
		LastCount:    selection.End,
		Training:     id,
		Description:  req.Description,
	})
	if err != nil {
		apierr.WriteBackendError(w, r, "create exercise", err, h.sessions)
		return
	}

	h.activity.Record(ctx, r, activity.EventExerciseCreated, map[string]any{
		"training_id": id,
		"exercise_id": exercise.ID,
		"start":       selection.Start,
		"end":         selection.End,
	})
	pkg.WriteJSON(w, exercise, http.StatusCreated)
}

func (h *Handler) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.deleteExercise")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.backend.DeleteExercise(ctx, token, id); err != nil {
		apierr.WriteBackendError(w, r, "delete exercise", err, h.sessions)
		return
	}

	h.activity.Record(ctx, r, activity.EventExerciseDeleted, map[string]any{"exercise_id": id})
	w.WriteHeader(http.StatusNoContent)
}

// FatigueTrend is the fatigue series of one muscle with its trend overlay.
// Trend, Slope and Intercept are omitted when no line can be fitted, Reason says why.
type FatigueTrend struct {
	Muscle    string    `json:"muscle,omitempty"`
	Values    []float64 `json:"values"`
	Trend     []float64 `json:"trend,omitempty"`
	Slope     *float64  `json:"slope,omitempty"`
	Intercept *float64  `json:"intercept,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

// NewFatigueTrend fits the index trend over values. Degenerate series are not an error.
func NewFatigueTrend(muscle string, values []float64) FatigueTrend {
	ft := FatigueTrend{
		Muscle: muscle,
		Values: values,
	}
	if ft.Values == nil {
		ft.Values = []float64{}
	}

	line, trend, err := signal.FitTrend(signal.Indices(len(values)), values)
	if err != nil {
		ft.Reason = trendReason(err)
		return ft
	}

	ft.Trend = trend
	ft.Slope = &line.Slope
	ft.Intercept = &line.Intercept
	return ft
}

func trendReason(err error) string {
	switch {
	case errors.Is(err, signal.ErrEmptyInput):
		return "no fatigue values"
	case errors.Is(err, signal.ErrZeroVariance):
		return "at least two exercises are needed for a trend"
	case errors.Is(err, signal.ErrNonFinite):
		return "fatigue values are not finite"
	default:
		return err.Error()
	}
}

func (h *Handler) fatigueTrend(w http.ResponseWriter, r *http.Request) (int, FatigueTrend, bool) {
	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return 0, FatigueTrend{}, false
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return 0, FatigueTrend{}, false
	}
	muscle := r.URL.Query().Get("muscle")

	series, err := h.backend.MuscleFatigueGraph(r.Context(), token, id, muscle)
	if err != nil {
		apierr.WriteBackendError(w, r, "muscle fatigue graph", err, h.sessions)
		return 0, FatigueTrend{}, false
	}

	return id, NewFatigueTrend(muscle, series.Signals), true
}

func (h *Handler) handleFatigue(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.fatigue")
	defer span.End()

	_, ft, ok := h.fatigueTrend(w, r.WithContext(ctx))
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("fatigue.values", len(ft.Values)))

	pkg.WriteJSON(w, ft, http.StatusOK)
}

func (h *Handler) handleFatiguePNG(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "trainingsHandler.fatiguePNG")
	defer span.End()

	id, ft, ok := h.fatigueTrend(w, r.WithContext(ctx))
	if !ok {
		return
	}
	if len(ft.Values) == 0 {
		http.Error(w, "no fatigue values", http.StatusNotFound)
		return
	}

	width, err := optionalSize(r, "width", charts.DefaultWidth)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	height, err := optionalSize(r, "height", charts.DefaultHeight)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	title := fmt.Sprintf("Training %d fatigue", id)
	if ft.Muscle != "" {
		title = fmt.Sprintf("Training %d fatigue, %s", id, ft.Muscle)
	}

	pngBytes, err := charts.FatigueChart{
		Title:  title,
		Muscle: ft.Muscle,
		Values: ft.Values,
		Trend:  ft.Trend,
		Width:  width,
		Height: height,
	}.RenderPNG()
	if err != nil {
		log.Errorf("training %d fatigue chart: %s", id, err)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.PNG, pngBytes, http.StatusOK)
}

const (
	minChartSize = 200
	maxChartSize = 2400
)

func optionalSize(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := pkg.ParsePositiveInt(name, v)
	if err != nil {
		return 0, err
	}
	if n < minChartSize || n > maxChartSize {
		return 0, fmt.Errorf("parameter <%s> must be in [%d, %d]", name, minChartSize, maxChartSize)
	}
	return n, nil
}
