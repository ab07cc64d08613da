package infra

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Transactor runs a unit of work. Repositories bound to tx through their
// WithTx method all take part in the same transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTransactor(db *gorm.DB, logger *zap.Logger) Transactor {
	return &gormTransactor{db: db, logger: logger}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	tx := StartTransaction(t.db.WithContext(ctx))
	if tx.Error != nil {
		return fmt.Errorf("begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	return ReleaseTransaction(tx, fn(tx), t.logger)
}

func StartTransaction(db *gorm.DB) *gorm.DB {
	return db.Begin()
}

// ReleaseTransaction commits when err is nil and rolls back otherwise. The
// original error is returned on rollback so callers can match it.
func ReleaseTransaction(tx *gorm.DB, err error, logger *zap.Logger) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			logger.Error("rollback transaction", zap.Error(rollbackErr), zap.NamedError("cause", err))
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		return fmt.Errorf("commit transaction: %w", commitErr)
	}
	return nil
}
