package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"polimanage/internal/adapters/observability"
	"polimanage/internal/domain"
	"polimanage/internal/storage"
)

type PistaRepo struct{ s *Store }

func NewPistaRepo(s *Store) *PistaRepo { return &PistaRepo{s: s} }

func (r *PistaRepo) GetAll(ctx context.Context) (out []domain.Pista, err error) {
	defer observe("pistas", "get_all", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify("pistas.GetAll", err)
	}
	recs := r.s.snapshot(r.s.pistas)
	out = make([]domain.Pista, 0, len(recs))
	for _, rec := range recs {
		p, err := storage.MapPista(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Pista) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *PistaRepo) GetByID(ctx context.Context, id int64) (p *domain.Pista, err error) {
	defer observe("pistas", "get_by_id", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify("pistas.GetByID", err)
	}
	rec, ok := r.s.row(r.s.pistas, id)
	if !ok {
		return nil, nil
	}
	v, err := storage.MapPista(rec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type ClubRepo struct{ s *Store }

func NewClubRepo(s *Store) *ClubRepo { return &ClubRepo{s: s} }

func (r *ClubRepo) GetAll(ctx context.Context) (out []domain.Club, err error) {
	defer observe("clubs", "get_all", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify("clubs.GetAll", err)
	}
	recs := r.s.snapshot(r.s.clubs)
	out = make([]domain.Club, 0, len(recs))
	for _, rec := range recs {
		c, err := storage.MapClub(rec)
		if err != nil {
			return nil, err
		}
		if c.IsActive {
			out = append(out, c)
		}
	}
	// created_at DESC, id DESC
	slices.SortFunc(out, func(a, b domain.Club) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (r *ClubRepo) GetByID(ctx context.Context, id int64) (c *domain.Club, err error) {
	defer observe("clubs", "get_by_id", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify("clubs.GetByID", err)
	}
	rec, ok := r.s.row(r.s.clubs, id)
	if !ok {
		return nil, nil
	}
	v, err := storage.MapClub(rec)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ClubRepo) GetBySlug(ctx context.Context, slug string) (c *domain.Club, err error) {
	defer observe("clubs", "get_by_slug", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, storage.Classify("clubs.GetBySlug", err)
	}
	for _, rec := range r.s.snapshot(r.s.clubs) {
		if s, _ := rec["slug"].(string); s != slug {
			continue
		}
		v, err := storage.MapClub(rec)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
	return nil, nil
}

func observe(repo, op string, start time.Time, err *error) {
	observability.ObserveQuery(repo, op, *err, time.Since(start))
}
