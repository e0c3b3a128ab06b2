// Package postgres implements the repositories over a pgx connection pool.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"polimanage/internal/adapters/observability"
	"polimanage/internal/domain"
	"polimanage/internal/storage"
)

// query acquires a connection for the duration of one read, collects every
// row as a Record and releases the connection before any mapping happens.
func query(ctx context.Context, pool *pgxpool.Pool, op, sql string, args ...any) ([]storage.Record, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, storage.Classify(op, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, storage.Classify(op, err)
	}
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, storage.Classify(op, err)
	}
	out := make([]storage.Record, len(maps))
	for i, m := range maps {
		out[i] = m
	}
	return out, nil
}

type PistaRepo struct{ pool *pgxpool.Pool }

func NewPistaRepo(pool *pgxpool.Pool) *PistaRepo { return &PistaRepo{pool: pool} }

func (r *PistaRepo) GetAll(ctx context.Context) (out []domain.Pista, err error) {
	defer observe("pistas", "get_all", time.Now(), &err)
	recs, err := query(ctx, r.pool, "pistas.GetAll", selectPistasSQL)
	if err != nil {
		return nil, err
	}
	out = make([]domain.Pista, 0, len(recs))
	for _, rec := range recs {
		p, err := storage.MapPista(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PistaRepo) GetByID(ctx context.Context, id int64) (p *domain.Pista, err error) {
	defer observe("pistas", "get_by_id", time.Now(), &err)
	recs, err := query(ctx, r.pool, "pistas.GetByID", selectPistaByIDSQL, id)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	v, err := storage.MapPista(recs[0])
	if err != nil {
		return nil, err
	}
	return &v, nil
}

type ClubRepo struct{ pool *pgxpool.Pool }

func NewClubRepo(pool *pgxpool.Pool) *ClubRepo { return &ClubRepo{pool: pool} }

func (r *ClubRepo) GetAll(ctx context.Context) (out []domain.Club, err error) {
	defer observe("clubs", "get_all", time.Now(), &err)
	recs, err := query(ctx, r.pool, "clubs.GetAll", selectActiveClubsSQL)
	if err != nil {
		return nil, err
	}
	return mapClubs(recs)
}

func (r *ClubRepo) GetByID(ctx context.Context, id int64) (c *domain.Club, err error) {
	defer observe("clubs", "get_by_id", time.Now(), &err)
	recs, err := query(ctx, r.pool, "clubs.GetByID", selectClubByIDSQL, id)
	if err != nil {
		return nil, err
	}
	return firstClub(recs)
}

func (r *ClubRepo) GetBySlug(ctx context.Context, slug string) (c *domain.Club, err error) {
	defer observe("clubs", "get_by_slug", time.Now(), &err)
	recs, err := query(ctx, r.pool, "clubs.GetBySlug", selectClubBySlugSQL, slug)
	if err != nil {
		return nil, err
	}
	return firstClub(recs)
}

func mapClubs(recs []storage.Record) ([]domain.Club, error) {
	out := make([]domain.Club, 0, len(recs))
	for _, rec := range recs {
		c, err := storage.MapClub(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func firstClub(recs []storage.Record) (*domain.Club, error) {
	if len(recs) == 0 {
		return nil, nil
	}
	c, err := storage.MapClub(recs[0])
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func observe(repo, op string, start time.Time, err *error) {
	observability.ObserveQuery(repo, op, *err, time.Since(start))
}
