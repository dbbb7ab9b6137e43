package repository

import (
	"context"
	"errors"

	"go-retail-analytics/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository hands out monotonically increasing numbers per name.
type SequenceRepository interface {
	// Next increments and returns the counter. Database-backed counters use
	// tx so the increment rolls back with it.
	Next(ctx context.Context, tx *gorm.DB, name string) (int64, error)
	// Ensure raises the counter to at least floor.
	Ensure(ctx context.Context, name string, floor int64) error
}

type sequenceRepo struct {
	db *gorm.DB
}

func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db}
}

func (r *sequenceRepo) Next(ctx context.Context, tx *gorm.DB, name string) (int64, error) {
	if tx == nil {
		tx = r.db
	}
	db := tx.WithContext(ctx)

	if err := r.increment(db, name); err != nil {
		return 0, err
	}

	var seq model.Sequence
	if err := db.First(&seq, "name = ?", name).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}

func (r *sequenceRepo) increment(db *gorm.DB, name string) error {
	res := db.Model(&model.Sequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// first use of this counter
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Sequence{Name: name, Value: 0}).Error; err != nil {
		return err
	}
	res = db.Model(&model.Sequence{}).
		Where("name = ?", name).
		UpdateColumn("value", gorm.Expr("value + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("sequence " + name + " could not be incremented")
	}
	return nil
}

func (r *sequenceRepo) Ensure(ctx context.Context, name string, floor int64) error {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Sequence{Name: name, Value: floor}).Error; err != nil {
		return err
	}
	return db.Model(&model.Sequence{}).
		Where("name = ? AND value < ?", name, floor).
		UpdateColumn("value", floor).Error
}
