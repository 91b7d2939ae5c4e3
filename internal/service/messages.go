package service

import "github.com/straye-as/offer-tracker/internal/domain"

type messageID int

const (
	msgClientNameRequired messageID = iota
	msgOfferNumberRequired
	msgPriceInvalid
	msgCostInvalid
	msgCreatedAtRequired
	msgCreatedAtInvalid
	msgValidUntilRequired
	msgValidUntilInvalid
	msgValidUntilBeforeCreated
	msgClientRequired
)

var messages = map[domain.Locale]map[messageID]string{
	domain.LocaleES: {
		msgClientNameRequired:      "El nombre del cliente es obligatorio.",
		msgOfferNumberRequired:     "El número de oferta es obligatorio.",
		msgPriceInvalid:            "El precio debe ser un número mayor a cero.",
		msgCostInvalid:             "El costo debe ser un número válido mayor o igual a cero.",
		msgCreatedAtRequired:       "Debes indicar la fecha de creación.",
		msgCreatedAtInvalid:        "La fecha de creación es inválida.",
		msgValidUntilRequired:      "Debes indicar la fecha de vigencia.",
		msgValidUntilInvalid:       "La fecha de vigencia es inválida.",
		msgValidUntilBeforeCreated: "La fecha de vigencia debe ser posterior a la fecha de creación.",
		msgClientRequired:          "Selecciona un cliente existente o indica los datos de uno nuevo.",
	},
	domain.LocaleEN: {
		msgClientNameRequired:      "Client name is required.",
		msgOfferNumberRequired:     "Offer number is required.",
		msgPriceInvalid:            "Price must be a number greater than zero.",
		msgCostInvalid:             "Cost must be a valid number greater than or equal to zero.",
		msgCreatedAtRequired:       "Enter the creation date.",
		msgCreatedAtInvalid:        "The creation date is invalid.",
		msgValidUntilRequired:      "Enter the valid-until date.",
		msgValidUntilInvalid:       "The valid-until date is invalid.",
		msgValidUntilBeforeCreated: "The valid-until date must not be before the creation date.",
		msgClientRequired:          "Select an existing client or enter the details of a new one.",
	},
}

func invalid(locale domain.Locale, field string, id messageID) *ValidationError {
	table, ok := messages[locale]
	if !ok {
		table = messages[domain.LocaleES]
	}
	return &ValidationError{Field: field, Message: table[id]}
}
