package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/service"
)

// AutoHandler handles auto-related HTTP requests
type AutoHandler struct {
	autoService service.AutoService
	logger      *slog.Logger
}

// NewAutoHandler creates a new AutoHandler
func NewAutoHandler(autoService service.AutoService, logger *slog.Logger) *AutoHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AutoHandler")
	}

	return &AutoHandler{
		autoService: autoService,
		logger:      logger.With(slog.String("component", "auto_handler")),
	}
}

// ListAutos handles GET /autos/ requests
func (h *AutoHandler) ListAutos(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	autos, err := h.autoService.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, autosToResponse(autos))
}

// SearchAutos handles GET /autos/buscar requests
func (h *AutoHandler) SearchAutos(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	params, err := parseAutoSearch(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	autos, err := h.autoService.Search(r.Context(), params.Filter())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("auto search completed", slog.Int("results", len(autos)))
	shared.RespondWithJSON(w, r, http.StatusOK, autosToResponse(autos))
}

// CreateAuto handles POST /autos/ requests
func (h *AutoHandler) CreateAuto(w http.ResponseWriter, r *http.Request) {
	var req AutoRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	auto, err := h.autoService.Create(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, autoToResponse(auto))
}

// GetAuto handles GET /autos/{id} requests
func (h *AutoHandler) GetAuto(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	auto, err := h.autoService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, autoToResponse(auto))
}

// UpdateAuto handles PUT /autos/{id} requests. Every field is replaced.
func (h *AutoHandler) UpdateAuto(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req AutoRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	auto, err := h.autoService.Update(r.Context(), id, req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, autoToResponse(auto))
}

// DeleteAuto handles DELETE /autos/{id} requests
func (h *AutoHandler) DeleteAuto(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.autoService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("auto deleted", slog.Int64("auto_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Mensaje: fmt.Sprintf("Auto con ID %d eliminado correctamente", id),
	})
}

// ListAutoVentas handles GET /autos/{id}/ventas requests
func (h *AutoHandler) ListAutoVentas(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	ventas, err := h.autoService.ListVentas(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ventasToResponse(ventas))
}
