package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"seraphmap/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid map request")

const defaultRevisionLimit = 20

type SaveUseCase struct {
	TxManager ports.TxManager
	Maps      ports.MapRepository
	Revisions ports.MapRevisionRepository
	Now       func() time.Time
}

func (u SaveUseCase) Execute(ctx context.Context, req SaveRequest) (SaveResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.ExpectedVersion < 0 {
		return SaveResponse{}, ErrInvalidRequest
	}
	if u.TxManager == nil || u.Maps == nil {
		return SaveResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()
	next := req.ExpectedVersion + 1

	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := u.Maps.SaveWithVersion(txCtx, ports.MapRecord{
			Name:      name,
			Document:  req.Document,
			Version:   next,
			UpdatedAt: now,
		}, req.ExpectedVersion); err != nil {
			return err
		}
		if u.Revisions == nil {
			return nil
		}
		if err := u.Revisions.Append(txCtx, ports.MapRevision{
			MapName:       name,
			Version:       next,
			Width:         req.Document.Width,
			Height:        req.Document.Height,
			LayerCount:    len(req.Document.Layers),
			BuildingCount: len(req.Document.Buildings),
			SavedAt:       now,
		}); err != nil {
			return fmt.Errorf("append revision: %w", err)
		}
		return nil
	})
	if err != nil {
		return SaveResponse{}, err
	}
	return SaveResponse{Name: name, Version: next}, nil
}

type LoadUseCase struct {
	Maps ports.MapRepository
}

func (u LoadUseCase) Execute(ctx context.Context, req LoadRequest) (LoadResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || u.Maps == nil {
		return LoadResponse{}, ErrInvalidRequest
	}
	rec, err := u.Maps.Get(ctx, name)
	if err != nil {
		return LoadResponse{}, err
	}
	return LoadResponse{Name: rec.Name, Version: rec.Version, Document: rec.Document}, nil
}

type ListUseCase struct {
	Maps ports.MapRepository
}

func (u ListUseCase) Execute(ctx context.Context) (ListResponse, error) {
	if u.Maps == nil {
		return ListResponse{}, ErrInvalidRequest
	}
	out, err := u.Maps.List(ctx)
	if err != nil {
		return ListResponse{}, err
	}
	return ListResponse{Maps: out}, nil
}

type RevisionsUseCase struct {
	Revisions ports.MapRevisionRepository
}

func (u RevisionsUseCase) Execute(ctx context.Context, req RevisionsRequest) (RevisionsResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || u.Revisions == nil {
		return RevisionsResponse{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultRevisionLimit
	}
	revs, err := u.Revisions.ListByMap(ctx, name, limit)
	if err != nil {
		return RevisionsResponse{}, err
	}
	return RevisionsResponse{Revisions: revs}, nil
}
