package storage

import "polimanage/internal/domain"

// Column names shared by every adapter.
const (
	PistaColumns = "id, nombre, tipo, superficie, image_url, precio_hora_base, es_activa, estado"
	ClubColumns  = "id, name, slug, description, logo_url, owner_id, max_members, monthly_fee_cents, status, is_active, created_at, updated_at"
)

const defaultMaxMembers = 50

// MapPista converts a pistas row into a Pista. A missing or NULL required
// column yields *domain.MissingFieldError; superficie and image_url are optional.
func MapPista(rec Record) (domain.Pista, error) {
	f := fields{entity: "pista", rec: rec}
	p := domain.Pista{
		ID:             f.int64("id"),
		Nombre:         f.str("nombre"),
		Tipo:           f.str("tipo"),
		Superficie:     f.optStr("superficie"),
		ImageURL:       f.optStr("image_url"),
		PrecioHoraBase: f.decimal("precio_hora_base"),
		EsActiva:       f.bool("es_activa"),
		Estado:         f.str("estado"),
	}
	if f.err != nil {
		return domain.Pista{}, f.err
	}
	return p, nil
}

// MapClub converts a clubs row into a Club. Administrative columns fall back
// to the table defaults when absent or of an unexpected type; owner_id is kept
// as an opaque string because deployments store it as a uuid or an integer.
func MapClub(rec Record) (domain.Club, error) {
	f := fields{entity: "club", rec: rec}
	c := domain.Club{
		ID:              f.int64("id"),
		Name:            f.str("name"),
		Slug:            f.str("slug"),
		Description:     f.optStr("description"),
		LogoURL:         f.optStr("logo_url"),
		IsActive:        f.bool("is_active"),
		OwnerID:         f.opaque("owner_id"),
		MaxMembers:      f.softInt("max_members", defaultMaxMembers),
		MonthlyFeeCents: f.softInt("monthly_fee_cents", 0),
		Status:          f.softStr("status", domain.ClubStatusActive),
		CreatedAt:       f.softTime("created_at"),
		UpdatedAt:       f.softTime("updated_at"),
	}
	if f.err != nil {
		return domain.Club{}, f.err
	}
	return c, nil
}

// PistaRecord is the inverse of MapPista, used to seed the in-memory adapter.
func PistaRecord(p domain.Pista) Record {
	return Record{
		"id":               p.ID,
		"nombre":           p.Nombre,
		"tipo":             p.Tipo,
		"superficie":       nullable(p.Superficie),
		"image_url":        nullable(p.ImageURL),
		"precio_hora_base": p.PrecioHoraBase.StringFixed(2),
		"es_activa":        p.EsActiva,
		"estado":           p.Estado,
	}
}

// ClubRecord is the inverse of MapClub.
func ClubRecord(c domain.Club) Record {
	return Record{
		"id":                c.ID,
		"name":              c.Name,
		"slug":              c.Slug,
		"description":       nullable(c.Description),
		"logo_url":          nullable(c.LogoURL),
		"owner_id":          nullable(c.OwnerID),
		"max_members":       int64(c.MaxMembers),
		"monthly_fee_cents": int64(c.MonthlyFeeCents),
		"status":            c.Status,
		"is_active":         c.IsActive,
		"created_at":        c.CreatedAt,
		"updated_at":        c.UpdatedAt,
	}
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
