package handler

import (
	"net/http"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/service"
	"go.uber.org/zap"
)

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List godoc
// @Summary List clients
// @Description Returns every client ordered alphabetically by name
// @Tags Clients
// @Produce json
// @Success 200 {array} domain.Client
// @Failure 503 {object} domain.APIError
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "list clients", err)
		return
	}

	respondJSON(w, http.StatusOK, clients)
}

// Create godoc
// @Summary Create client
// @Description Registers a client. When a client with the same name (ignoring case) exists, it is returned unchanged with status 200.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client data"
// @Success 201 {object} domain.Client
// @Success 200 {object} domain.Client
// @Failure 400 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, created, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "create client", err)
		return
	}

	if !created {
		respondJSON(w, http.StatusOK, client)
		return
	}
	respondJSON(w, http.StatusCreated, client)
}
