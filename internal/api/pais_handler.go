package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/domain"
	"github.com/utn-progav/autos-api/internal/service"
)

// PaisHandler handles pais-related HTTP requests
type PaisHandler struct {
	paisService service.PaisService
	logger      *slog.Logger
}

// NewPaisHandler creates a new PaisHandler
func NewPaisHandler(paisService service.PaisService, logger *slog.Logger) *PaisHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PaisHandler")
	}

	return &PaisHandler{
		paisService: paisService,
		logger:      logger.With(slog.String("component", "pais_handler")),
	}
}

// ListPaises handles GET /paises/ requests
func (h *PaisHandler) ListPaises(w http.ResponseWriter, r *http.Request) {
	paises, err := h.paisService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	out := make([]PaisResponse, 0, len(paises))
	for _, p := range paises {
		out = append(out, paisToResponse(p))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// CreatePais handles POST /paises/ requests
func (h *PaisHandler) CreatePais(w http.ResponseWriter, r *http.Request) {
	var req PaisCreateRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	pais, err := h.paisService.Create(r.Context(), &domain.Pais{Nombre: req.Nombre})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, paisToResponse(pais))
}

// GetPais handles GET /paises/{id} requests
func (h *PaisHandler) GetPais(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	pais, err := h.paisService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, paisToResponse(pais))
}

// PatchPais handles PATCH /paises/{id} requests
func (h *PaisHandler) PatchPais(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req PaisUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	pais, err := h.paisService.Patch(r.Context(), id, domain.PaisPatch{Nombre: req.Nombre})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, paisToResponse(pais))
}

// DeletePais handles DELETE /paises/{id} requests. Personas of the pais are
// kept with no pais.
func (h *PaisHandler) DeletePais(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.paisService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Mensaje: fmt.Sprintf("Pais con ID %d eliminado correctamente", id),
	})
}

// ListPaisPersonas handles GET /paises/{id}/personas requests
func (h *PaisHandler) ListPaisPersonas(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	personas, err := h.paisService.ListPersonas(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, personasToResponse(personas))
}
