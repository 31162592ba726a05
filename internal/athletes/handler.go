package athletes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/2beens/emtdash/internal/activity"
	"github.com/2beens/emtdash/internal/apierr"
	"github.com/2beens/emtdash/internal/cache"
	"github.com/2beens/emtdash/internal/emtapi"
	"github.com/2beens/emtdash/internal/telemetry/tracing"
	"github.com/2beens/emtdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=athletes_test

type athletesBackend interface {
	ListAthletes(ctx context.Context, token string, page int) (*emtapi.Page[emtapi.Athlete], error)
	GetAthlete(ctx context.Context, token string, id int) (*emtapi.Athlete, error)
	CreateAthlete(ctx context.Context, token string, fields map[string]string, files []emtapi.FormFile) (*emtapi.Athlete, error)
	UpdateAthlete(ctx context.Context, token string, id int, patch map[string]any) (*emtapi.Athlete, error)
	DeleteAthlete(ctx context.Context, token string, id int) error
	KLoadGraph(ctx context.Context, token string, athleteID int, muscle string) (*emtapi.KLoadGraph, error)
	ListAthleteParams(ctx context.Context, token string, athleteID int) (*emtapi.Page[emtapi.AthleteParams], error)
	CreateAthleteParams(ctx context.Context, token string, params emtapi.AthleteParams) (*emtapi.AthleteParams, error)
	UpdateAthleteParams(ctx context.Context, token string, id int, params emtapi.AthleteParams) (*emtapi.AthleteParams, error)
	DeleteAthleteParams(ctx context.Context, token string, id int) error
	ListAthleteLevels(ctx context.Context, token string) ([]emtapi.AthleteLevel, error)
	ListSportTypes(ctx context.Context, token string) ([]emtapi.SportType, error)
	ListMusclesRaw(ctx context.Context, token, trainingID, athleteID string) ([]byte, error)
	ListTrainings(ctx context.Context, token string, athleteID int) (*emtapi.Page[emtapi.TrainingSession], error)
}

type musclesCache interface {
	GetMuscles(trainingID, athleteID string) (*cache.Entry, bool)
	SetMuscles(trainingID, athleteID string, raw []byte) *cache.Entry
}

type activityRecorder interface {
	Record(ctx context.Context, r *http.Request, eventType activity.EventType, data any)
}

type Handler struct {
	backend  athletesBackend
	muscles  musclesCache
	activity activityRecorder
	sessions apierr.SessionDropper
}

func NewHandler(
	backend athletesBackend,
	muscles musclesCache,
	activity activityRecorder,
	sessions apierr.SessionDropper,
) *Handler {
	return &Handler{
		backend:  backend,
		muscles:  muscles,
		activity: activity,
		sessions: sessions,
	}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/athletes", h.handleList).Methods("GET").Name("athletes-list")
	router.HandleFunc("/athletes", h.handleCreate).Methods("POST").Name("athletes-create")
	router.HandleFunc("/athletes/{id}", h.handleGet).Methods("GET").Name("athletes-get")
	router.HandleFunc("/athletes/{id}", h.handleUpdate).Methods("PATCH").Name("athletes-update")
	router.HandleFunc("/athletes/{id}", h.handleDelete).Methods("DELETE").Name("athletes-delete")
	router.HandleFunc("/athletes/{id}/kload", h.handleKLoad).Methods("GET").Name("athletes-kload")
	router.HandleFunc("/athletes/{id}/params", h.handleListParams).Methods("GET").Name("athletes-params-list")
	router.HandleFunc("/athletes/{id}/params", h.handleCreateParams).Methods("POST").Name("athletes-params-create")
	router.HandleFunc("/athletes/{id}/trainings", h.handleListTrainings).Methods("GET").Name("athletes-trainings")
	router.HandleFunc("/athlete-params/{id}", h.handleUpdateParams).Methods("PUT").Name("athlete-params-update")
	router.HandleFunc("/athlete-params/{id}", h.handleDeleteParams).Methods("DELETE").Name("athlete-params-delete")
	router.HandleFunc("/athlete-levels", h.handleListLevels).Methods("GET").Name("athlete-levels")
	router.HandleFunc("/sport-types", h.handleListSportTypes).Methods("GET").Name("sport-types")
	router.HandleFunc("/muscles", h.handleListMuscles).Methods("GET").Name("muscles")
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.list")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := pkg.ParsePositiveInt("page", pageStr)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		page = p
	}
	span.SetAttributes(attribute.Int("page", page))

	athletes, err := h.backend.ListAthletes(ctx, token, page)
	if err != nil {
		apierr.WriteBackendError(w, r, "list athletes", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, athletes, http.StatusOK)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.create")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	fields, files, err := emtapi.FormFromRequest(r, emtapi.DefaultMaxFormMemory)
	if err != nil {
		log.Debugf("create athlete: %s", err)
		http.Error(w, "invalid athlete form", http.StatusBadRequest)
		return
	}
	if fields["firstname"] == "" || fields["lastname"] == "" {
		http.Error(w, "firstname and lastname are required", http.StatusBadRequest)
		return
	}

	athlete, err := h.backend.CreateAthlete(ctx, token, fields, files)
	if err != nil {
		apierr.WriteBackendError(w, r, "create athlete", err, h.sessions)
		return
	}

	h.activity.Record(ctx, r, activity.EventAthleteCreated, map[string]any{
		"athlete_id": athlete.ID,
		"name":       athlete.Firstname + " " + athlete.Lastname,
	})
	log.Infof("athlete created: %d", athlete.ID)
	pkg.WriteJSON(w, athlete, http.StatusCreated)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.get")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("athlete.id", id))

	athlete, err := h.backend.GetAthlete(ctx, token, id)
	if err != nil {
		apierr.WriteBackendError(w, r, "get athlete", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, athlete, http.StatusOK)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.update")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || len(patch) == 0 {
		http.Error(w, "invalid athlete update", http.StatusBadRequest)
		return
	}

	athlete, err := h.backend.UpdateAthlete(ctx, token, id, patch)
	if err != nil {
		apierr.WriteBackendError(w, r, "update athlete", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, athlete, http.StatusOK)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.delete")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.backend.DeleteAthlete(ctx, token, id); err != nil {
		apierr.WriteBackendError(w, r, "delete athlete", err, h.sessions)
		return
	}

	h.activity.Record(ctx, r, activity.EventAthleteDeleted, map[string]any{"athlete_id": id})
	log.Infof("athlete deleted: %d", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleKLoad(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.kload")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	graph, err := h.backend.KLoadGraph(ctx, token, id, r.URL.Query().Get("muscle"))
	if err != nil {
		apierr.WriteBackendError(w, r, "k load graph", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, graph, http.StatusOK)
}

func (h *Handler) handleListParams(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.listParams")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	params, err := h.backend.ListAthleteParams(ctx, token, id)
	if err != nil {
		apierr.WriteBackendError(w, r, "list athlete params", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, params, http.StatusOK)
}

func decodeParams(w http.ResponseWriter, r *http.Request) (emtapi.AthleteParams, bool) {
	var params emtapi.AthleteParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid athlete params", http.StatusBadRequest)
		return params, false
	}
	if params.Weight <= 0 || params.Height <= 0 {
		http.Error(w, "weight and height must be positive", http.StatusBadRequest)
		return params, false
	}
	return params, true
}

func (h *Handler) handleCreateParams(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.createParams")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}
	params.Athlete = id

	created, err := h.backend.CreateAthleteParams(ctx, token, params)
	if err != nil {
		apierr.WriteBackendError(w, r, "create athlete params", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) handleUpdateParams(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.updateParams")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}
	params, ok := decodeParams(w, r)
	if !ok {
		return
	}

	updated, err := h.backend.UpdateAthleteParams(ctx, token, id, params)
	if err != nil {
		apierr.WriteBackendError(w, r, "update athlete params", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) handleDeleteParams(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.deleteParams")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.backend.DeleteAthleteParams(ctx, token, id); err != nil {
		apierr.WriteBackendError(w, r, "delete athlete params", err, h.sessions)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListLevels(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.listLevels")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	levels, err := h.backend.ListAthleteLevels(ctx, token)
	if err != nil {
		apierr.WriteBackendError(w, r, "list athlete levels", err, h.sessions)
		return
	}
	if levels == nil {
		levels = []emtapi.AthleteLevel{}
	}

	pkg.WriteJSON(w, levels, http.StatusOK)
}

func (h *Handler) handleListSportTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.listSportTypes")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	sportTypes, err := h.backend.ListSportTypes(ctx, token)
	if err != nil {
		apierr.WriteBackendError(w, r, "list sport types", err, h.sessions)
		return
	}
	if sportTypes == nil {
		sportTypes = []emtapi.SportType{}
	}

	pkg.WriteJSON(w, sportTypes, http.StatusOK)
}

func (h *Handler) handleListMuscles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.listMuscles")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}

	trainingID := r.URL.Query().Get("training_id")
	athleteID := r.URL.Query().Get("athlete_id")
	for name, v := range map[string]string{"training_id": trainingID, "athlete_id": athleteID} {
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			http.Error(w, "invalid "+name, http.StatusBadRequest)
			return
		}
	}

	if entry, found := h.muscles.GetMuscles(trainingID, athleteID); found {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entry.Data, http.StatusOK)
		return
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	raw, err := h.backend.ListMusclesRaw(ctx, token, trainingID, athleteID)
	if err != nil {
		apierr.WriteBackendError(w, r, "list muscles", err, h.sessions)
		return
	}
	if !json.Valid(raw) {
		log.Errorf("list muscles: backend sent invalid json")
		http.Error(w, "backend unavailable", http.StatusBadGateway)
		return
	}

	entry := h.muscles.SetMuscles(trainingID, athleteID, raw)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, entry.Data, http.StatusOK)
}

func (h *Handler) handleListTrainings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "athletesHandler.listTrainings")
	defer span.End()

	token, ok := apierr.RequireBackendToken(w, r)
	if !ok {
		return
	}
	id, ok := apierr.PathID(w, r, "id")
	if !ok {
		return
	}

	trainings, err := h.backend.ListTrainings(ctx, token, id)
	if err != nil {
		apierr.WriteBackendError(w, r, "list trainings", err, h.sessions)
		return
	}

	pkg.WriteJSON(w, trainings, http.StatusOK)
}
