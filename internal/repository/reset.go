package repository

import (
	"context"
	"fmt"

	"github.com/snnyvrz/bookshelf-api/internal/model"
	"gorm.io/gorm"
)

// ResetProcedure is the server-side procedure that empties the books table.
const ResetProcedure = "reset_books"

const createResetProcedureSQL = `CREATE OR REPLACE PROCEDURE ` + ResetProcedure + `()
LANGUAGE plpgsql
AS $$
BEGIN
	TRUNCATE TABLE books RESTART IDENTITY;
END;
$$;`

type BookResetter interface {
	ResetAll(ctx context.Context) error
}

type GormBookResetter struct {
	db *gorm.DB
}

func NewGormBookResetter(db *gorm.DB) *GormBookResetter {
	return &GormBookResetter{db: db}
}

// ResetAll removes every book in one atomic step. On PostgreSQL it calls
// ResetProcedure; SQLite has no procedures, so the same effect runs in a
// single transaction.
func (r *GormBookResetter) ResetAll(ctx context.Context) error {
	db := r.db.WithContext(ctx)

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CALL " + ResetProcedure + "()").Error; err != nil {
			return fmt.Errorf("call %s: %w", ResetProcedure, err)
		}
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&model.Book{}).Error; err != nil {
			return err
		}
		if tx.Migrator().HasTable("sqlite_sequence") {
			return tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", model.Book{}.TableName()).Error
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reset books: %w", err)
	}
	return nil
}

// InstallResetProcedure creates or replaces ResetProcedure. It is a no-op on
// databases without stored procedures.
func InstallResetProcedure(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	if err := db.WithContext(ctx).Exec(createResetProcedureSQL).Error; err != nil {
		return fmt.Errorf("install %s: %w", ResetProcedure, err)
	}
	return nil
}
