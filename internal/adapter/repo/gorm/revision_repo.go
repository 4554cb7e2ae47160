package gormrepo

import (
	"context"
	"errors"

	"seraphmap/internal/adapter/repo/gorm/model"
	"seraphmap/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RevisionRepo struct {
	db *gorm.DB
}

func NewRevisionRepo(db *gorm.DB) RevisionRepo {
	return RevisionRepo{db: db}
}

func (r RevisionRepo) Append(ctx context.Context, rev ports.MapRevision) error {
	row := model.MapRevision{
		MapName:       rev.MapName,
		Version:       rev.Version,
		Width:         int32(rev.Width),
		Height:        int32(rev.Height),
		LayerCount:    int32(rev.LayerCount),
		BuildingCount: int32(rev.BuildingCount),
		SavedAt:       rev.SavedAt,
	}
	err := getDBFromCtx(ctx, r.db).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrConflict
	}
	return err
}

func (r RevisionRepo) ListByMap(ctx context.Context, mapName string, limit int) ([]ports.MapRevision, error) {
	rows := []model.MapRevision{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.MapRevision{MapName: mapName}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "version"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]ports.MapRevision, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.MapRevision{
			MapName:       row.MapName,
			Version:       row.Version,
			Width:         int(row.Width),
			Height:        int(row.Height),
			LayerCount:    int(row.LayerCount),
			BuildingCount: int(row.BuildingCount),
			SavedAt:       row.SavedAt,
		})
	}
	return out, nil
}
