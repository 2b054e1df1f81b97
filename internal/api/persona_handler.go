package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/utn-progav/autos-api/internal/api/shared"
	"github.com/utn-progav/autos-api/internal/service"
)

// PersonaHandler handles persona-related HTTP requests
type PersonaHandler struct {
	personaService service.PersonaService
	logger         *slog.Logger
}

// NewPersonaHandler creates a new PersonaHandler
func NewPersonaHandler(personaService service.PersonaService, logger *slog.Logger) *PersonaHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PersonaHandler")
	}

	return &PersonaHandler{
		personaService: personaService,
		logger:         logger.With(slog.String("component", "persona_handler")),
	}
}

// ListPersonas handles GET /personas/ requests
func (h *PersonaHandler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	personas, err := h.personaService.List(r.Context(), page.Skip, page.Limit)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, personasToResponse(personas))
}

// CreatePersona handles POST /personas/ requests
func (h *PersonaHandler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req PersonaCreateRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	persona, err := h.personaService.Create(r.Context(), req.toDomain())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, personaToResponse(persona))
}

// GetPersona handles GET /personas/{id} requests
func (h *PersonaHandler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	detail, err := h.personaService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, personaDetailToResponse(detail))
}

// PatchPersona handles PATCH /personas/{id} requests
func (h *PersonaHandler) PatchPersona(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req PersonaUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	persona, err := h.personaService.Patch(r.Context(), id, req.toPatch())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, personaToResponse(persona))
}

// DeletePersona handles DELETE /personas/{id} requests
func (h *PersonaHandler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.personaService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Mensaje: fmt.Sprintf("Persona con ID %d eliminada correctamente", id),
	})
}
