package mysql

import (
	"context"
	"database/sql"
	"time"

	"polimanage/internal/adapters/observability"
	"polimanage/internal/domain"
	"polimanage/internal/storage"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Pistas and Clubs expose the two repository ports over the same *sql.DB.
func (r *Repo) Pistas() *PistaRepo { return &PistaRepo{r} }
func (r *Repo) Clubs() *ClubRepo   { return &ClubRepo{r} }

// query pins one pooled connection for the read and returns it to the pool
// on every exit path. Rows are copied into Records before the connection goes back.
func (r *Repo) query(ctx context.Context, op, q string, args ...any) ([]storage.Record, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, storage.Classify(op, err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, storage.Classify(op, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, storage.Classify(op, err)
	}
	var out []storage.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		dest := make([]any, len(cols))
		for i := range vals {
			dest[i] = &vals[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, storage.Classify(op, err)
		}
		rec := make(storage.Record, len(cols))
		for i, c := range cols {
			rec[c] = vals[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Classify(op, err)
	}
	return out, nil
}

type PistaRepo struct{ r *Repo }

func (p *PistaRepo) GetAll(ctx context.Context) (out []domain.Pista, err error) {
	defer observe("pistas", "get_all", time.Now(), &err)
	recs, err := p.r.query(ctx, "pistas.GetAll", selectPistasSQL)
	if err != nil {
		return nil, err
	}
	out = make([]domain.Pista, 0, len(recs))
	for _, rec := range recs {
		v, err := storage.MapPista(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (p *PistaRepo) GetByID(ctx context.Context, id int64) (v *domain.Pista, err error) {
	defer observe("pistas", "get_by_id", time.Now(), &err)
	recs, err := p.r.query(ctx, "pistas.GetByID", selectPistaByIDSQL, id)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	pista, err := storage.MapPista(recs[0])
	if err != nil {
		return nil, err
	}
	return &pista, nil
}

type ClubRepo struct{ r *Repo }

func (c *ClubRepo) GetAll(ctx context.Context) (out []domain.Club, err error) {
	defer observe("clubs", "get_all", time.Now(), &err)
	recs, err := c.r.query(ctx, "clubs.GetAll", selectActiveClubsSQL)
	if err != nil {
		return nil, err
	}
	out = make([]domain.Club, 0, len(recs))
	for _, rec := range recs {
		v, err := storage.MapClub(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *ClubRepo) GetByID(ctx context.Context, id int64) (v *domain.Club, err error) {
	defer observe("clubs", "get_by_id", time.Now(), &err)
	recs, err := c.r.query(ctx, "clubs.GetByID", selectClubByIDSQL, id)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	club, err := storage.MapClub(recs[0])
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (c *ClubRepo) GetBySlug(ctx context.Context, slug string) (v *domain.Club, err error) {
	defer observe("clubs", "get_by_slug", time.Now(), &err)
	recs, err := c.r.query(ctx, "clubs.GetBySlug", selectClubBySlugSQL, slug)
	if err != nil || len(recs) == 0 {
		return nil, err
	}
	club, err := storage.MapClub(recs[0])
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func observe(repo, op string, start time.Time, err *error) {
	observability.ObserveQuery(repo, op, *err, time.Since(start))
}
