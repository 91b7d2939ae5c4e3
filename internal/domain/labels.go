package domain

// Locale identifies the language of user-facing text
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// ParseLocale falls back to Spanish for unknown values
func ParseLocale(value string) Locale {
	if Locale(value) == LocaleEN {
		return LocaleEN
	}
	return LocaleES
}

// Labels holds the display strings of one locale
type Labels struct {
	DeletedClient string
	Statuses      map[OfferStatus]string
	Columns       map[ColumnKey]string
}

var labels = map[Locale]Labels{
	LocaleES: {
		DeletedClient: "Cliente eliminado",
		Statuses: map[OfferStatus]string{
			OfferStatusDraft:    "Borrador",
			OfferStatusInReview: "En revisión",
			OfferStatusSent:     "Enviada",
			OfferStatusWon:      "Ganada",
			OfferStatusLost:     "Perdida",
		},
		Columns: map[ColumnKey]string{
			ColumnOfferNumber: "Número de oferta",
			ColumnClient:      "Cliente",
			ColumnPrice:       "Precio",
			ColumnCost:        "Costo",
			ColumnMargin:      "Margen",
			ColumnCreatedAt:   "Fecha de creación",
			ColumnValidUntil:  "Vigente hasta",
			ColumnStatus:      "Estado",
		},
	},
	LocaleEN: {
		DeletedClient: "Deleted client",
		Statuses: map[OfferStatus]string{
			OfferStatusDraft:    "Draft",
			OfferStatusInReview: "In review",
			OfferStatusSent:     "Sent",
			OfferStatusWon:      "Won",
			OfferStatusLost:     "Lost",
		},
		Columns: map[ColumnKey]string{
			ColumnOfferNumber: "Offer number",
			ColumnClient:      "Client",
			ColumnPrice:       "Price",
			ColumnCost:        "Cost",
			ColumnMargin:      "Margin",
			ColumnCreatedAt:   "Created",
			ColumnValidUntil:  "Valid until",
			ColumnStatus:      "Status",
		},
	},
}

// LabelsFor returns the display strings for a locale
func LabelsFor(locale Locale) Labels {
	if l, ok := labels[locale]; ok {
		return l
	}
	return labels[LocaleES]
}

// StatusLabel returns the display label of a status
func (l Labels) StatusLabel(status OfferStatus) string {
	if label, ok := l.Statuses[status]; ok {
		return label
	}
	return string(status)
}
