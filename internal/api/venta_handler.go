package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/platform/logger"
	"github.com/utn-progav/autos-api/internal/service"
)

// VentaHandler handles venta-related HTTP requests
type VentaHandler struct {
	ventaService service.VentaService
	logger       *slog.Logger
}

// NewVentaHandler creates a new VentaHandler
func NewVentaHandler(ventaService service.VentaService, logger *slog.Logger) *VentaHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for VentaHandler")
	}

	return &VentaHandler{
		ventaService: ventaService,
		logger:       logger.With(slog.String("component", "venta_handler")),
	}
}

// ListVentas handles GET /ventas/ requests
func (h *VentaHandler) ListVentas(w http.ResponseWriter, r *http.Request) {
	ventas, err := h.ventaService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ventasToResponse(ventas))
}

// CreateVenta handles POST /ventas/ requests. The total must equal the
// auto's current precio times cantidad, rounded to cents.
func (h *VentaHandler) CreateVenta(w http.ResponseWriter, r *http.Request) {
	var req VentaRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	venta, err := req.toDomain()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	created, err := h.ventaService.Create(r.Context(), venta)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ventaToResponse(created))
}

// GetVenta handles GET /ventas/{id} requests
func (h *VentaHandler) GetVenta(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	venta, err := h.ventaService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ventaToResponse(venta))
}

// UpdateVenta handles PUT /ventas/{id} requests
func (h *VentaHandler) UpdateVenta(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req VentaRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	venta, err := req.toDomain()
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	updated, err := h.ventaService.Update(r.Context(), id, venta)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ventaToResponse(updated))
}

// DeleteVenta handles DELETE /ventas/{id} requests
func (h *VentaHandler) DeleteVenta(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.ventaService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Info("venta deleted", slog.Int64("venta_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Mensaje: fmt.Sprintf("Venta con ID %d eliminada correctamente", id),
	})
}
