package activity

import (
	"context"
	"net/http"

	"github.com/2beens/emtdash/internal/telemetry/tracing"
	"github.com/2beens/emtdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const maxPageSize = 200

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=activity

type eventsLister interface {
	List(ctx context.Context, page, size int) (*EventsPage, error)
}

type Handler struct {
	lister eventsLister
}

func NewHandler(lister eventsLister) *Handler {
	return &Handler{
		lister: lister,
	}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "activityHandler.list")
	defer span.End()

	vars := mux.Vars(r)
	page, err := pkg.ParsePositiveInt("page", vars["page"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := pkg.ParsePositiveInt("size", vars["size"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if size > maxPageSize {
		http.Error(w, "size too big", http.StatusBadRequest)
		return
	}

	eventsPage, err := h.lister.List(ctx, page, size)
	if err != nil {
		log.Errorf("list activity events, page %d size %d: %s", page, size, err)
		http.Error(w, "failed to list activity", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, eventsPage, http.StatusOK)
}
