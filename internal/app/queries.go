package app

import (
	"context"

	"polimanage/internal/domain"
)

// PistaService serves read models for pistas. Every call is one repository read.
type PistaService struct {
	repo domain.PistaRepository
}

func NewPistaService(r domain.PistaRepository) *PistaService {
	return &PistaService{repo: r}
}

// GetAllPistas never returns a nil slice on success, so an empty table encodes as [].
func (s *PistaService) GetAllPistas(ctx context.Context) ([]PistaResponse, error) {
	ps, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PistaResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPistaResponse(p))
	}
	return out, nil
}

// GetPistaByID returns (nil, nil) when the pista does not exist.
func (s *PistaService) GetPistaByID(ctx context.Context, id int64) (*PistaResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	resp := toPistaResponse(*p)
	return &resp, nil
}

type ClubService struct {
	repo domain.ClubRepository
}

func NewClubService(r domain.ClubRepository) *ClubService {
	return &ClubService{repo: r}
}

func (s *ClubService) GetAllClubs(ctx context.Context) ([]ClubResponse, error) {
	cs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClubResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toClubResponse(c))
	}
	return out, nil
}

// GetClubByID returns (nil, nil) for an unknown id, active or not.
func (s *ClubService) GetClubByID(ctx context.Context, id int64) (*ClubResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil || c == nil {
		return nil, err
	}
	resp := toClubResponse(*c)
	return &resp, nil
}

func (s *ClubService) GetClubBySlug(ctx context.Context, slug string) (*ClubResponse, error) {
	c, err := s.repo.GetBySlug(ctx, slug)
	if err != nil || c == nil {
		return nil, err
	}
	resp := toClubResponse(*c)
	return &resp, nil
}
