package handler

import (
	"net/http"

	"github.com/straye-as/offer-tracker/internal/domain"
	"github.com/straye-as/offer-tracker/internal/service"
	"go.uber.org/zap"
)

type OfferHandler struct {
	offerService *service.OfferService
	logger       *zap.Logger
}

func NewOfferHandler(offerService *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		logger:       logger,
	}
}

// List godoc
// @Summary List offers
// @Description Returns every offer, most recently created first
// @Tags Offers
// @Produce json
// @Success 200 {array} domain.Offer
// @Failure 503 {object} domain.APIError
// @Router /offers [get]
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offerService.List(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "list offers", err)
		return
	}

	respondJSON(w, http.StatusOK, offers)
}

// Create godoc
// @Summary Create offer
// @Description Creates an offer for an existing client, or registers the new client given by newClientName first.
// @Description Price and cost may be sent as numbers or strings. Dates accept YYYY-MM-DD or RFC 3339.
// @Description Validation failures return a single localized message.
// @Tags Offers
// @Accept json
// @Produce json
// @Param request body domain.CreateOfferRequest true "Offer data"
// @Success 201 {object} domain.CreateOfferResponse
// @Failure 400 {object} domain.APIError
// @Failure 503 {object} domain.APIError
// @Router /offers [post]
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: malformed JSON")
		return
	}
	req.Normalize()

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.offerService.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.logger, "create offer", err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// NextNumber godoc
// @Summary Suggest next offer number
// @Description Returns one more than the largest trailing number of existing offer numbers, formatted OF-0000. The suggestion is not reserved.
// @Tags Offers
// @Produce json
// @Success 200 {object} domain.NextOfferNumberResponse
// @Failure 503 {object} domain.APIError
// @Router /offers/next-number [get]
func (h *OfferHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.offerService.NextNumber(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, "suggest offer number", err)
		return
	}

	respondJSON(w, http.StatusOK, domain.NextOfferNumberResponse{OfferNumber: number})
}
