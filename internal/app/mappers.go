package app

import (
	"encoding/json"

	"polimanage/internal/domain"
)

// PistaResponse is the public shape of a pista.
type PistaResponse struct {
	ID             int64       `json:"id"`
	Nombre         string      `json:"nombre"`
	Tipo           string      `json:"tipo"`
	Superficie     *string     `json:"superficie"`
	ImageURL       *string     `json:"image_url"`
	PrecioHoraBase json.Number `json:"precio_hora_base"`
	EsActiva       bool        `json:"es_activa"`
	Estado         string      `json:"estado"`
}

// ClubResponse drops the administrative columns (owner, fees, timestamps).
type ClubResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}

func toPistaResponse(p domain.Pista) PistaResponse {
	return PistaResponse{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Tipo:           p.Tipo,
		Superficie:     p.Superficie,
		ImageURL:       p.ImageURL,
		PrecioHoraBase: json.Number(p.PrecioHoraBase.StringFixed(2)),
		EsActiva:       p.EsActiva,
		Estado:         p.Estado,
	}
}

func toClubResponse(c domain.Club) ClubResponse {
	return ClubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		LogoURL:     c.LogoURL,
	}
}
