package gormrepo

import (
	"context"
	"errors"
	"fmt"

	"seraphmap/internal/adapter/repo/gorm/model"
	"seraphmap/internal/app/mapio"
	"seraphmap/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MapRepo struct {
	db *gorm.DB
}

func NewMapRepo(db *gorm.DB) MapRepo {
	return MapRepo{db: db}
}

func (r MapRepo) Get(ctx context.Context, name string) (ports.MapRecord, error) {
	var row model.TileMap
	if err := getDBFromCtx(ctx, r.db).Where("name = ?", name).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.MapRecord{}, ports.ErrNotFound
		}
		return ports.MapRecord{}, err
	}
	doc, err := mapio.Unmarshal(row.Document)
	if err != nil {
		return ports.MapRecord{}, fmt.Errorf("decode map %q: %w", name, err)
	}
	return ports.MapRecord{
		Name:      row.Name,
		Document:  doc,
		Version:   row.Version,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r MapRepo) SaveWithVersion(ctx context.Context, rec ports.MapRecord, expectedVersion int64) error {
	b, err := mapio.Marshal(rec.Document)
	if err != nil {
		return err
	}
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		row := model.TileMap{
			Name:      rec.Name,
			Width:     int32(rec.Document.Width),
			Height:    int32(rec.Document.Height),
			Document:  b,
			Version:   rec.Version,
			UpdatedAt: rec.UpdatedAt,
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ports.ErrConflict
		}
		return nil
	}

	res := db.Model(&model.TileMap{}).
		Where("name = ? AND version = ?", rec.Name, expectedVersion).
		Updates(map[string]any{
			"width":      int32(rec.Document.Width),
			"height":     int32(rec.Document.Height),
			"document":   b,
			"version":    rec.Version,
			"updated_at": rec.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}

func (r MapRepo) List(ctx context.Context) ([]ports.MapSummary, error) {
	rows := []model.TileMap{}
	err := getDBFromCtx(ctx, r.db).
		Select("name", "width", "height", "version", "updated_at").
		Order(clause.OrderByColumn{Column: clause.Column{Name: "name"}}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ports.MapSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.MapSummary{
			Name:      row.Name,
			Width:     int(row.Width),
			Height:    int(row.Height),
			Version:   row.Version,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return out, nil
}
