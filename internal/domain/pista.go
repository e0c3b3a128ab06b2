package domain

import "github.com/shopspring/decimal"

// Known values of Pista.Estado. The column is free text, so other values pass through.
const (
	EstadoDisponible    = "DISPONIBLE"
	EstadoMantenimiento = "MANTENIMIENTO"
	EstadoOcupada       = "OCUPADA"
	EstadoCerrada       = "CERRADA"
)

// Pista is a bookable sports facility (court).
type Pista struct {
	ID             int64
	Nombre         string
	Tipo           string
	Superficie     *string
	ImageURL       *string
	PrecioHoraBase decimal.Decimal // hourly base price, 2 dp in storage
	EsActiva       bool
	Estado         string
}
