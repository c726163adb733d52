package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/snnyvrz/bookshelf-api/internal/listquery"
	"github.com/snnyvrz/bookshelf-api/internal/model"
	"gorm.io/gorm"
)

var ErrBookNotFound = errors.New("book not found")

// filterColumns maps list filter keys to book columns.
var filterColumns = map[string]string{
	"title":  "title",
	"author": "author",
	"desc":   "description",
}

type BookRepository interface {
	Count(ctx context.Context, filter listquery.Filter) (int64, error)
	Find(ctx context.Context, filter listquery.Filter, skip, take int) ([]model.Book, error)
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Count(ctx context.Context, filter listquery.Filter) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Scopes(matching(filter)).
		Count(&total).Error; err != nil {

		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

func (r *GormBookRepository) Find(ctx context.Context, filter listquery.Filter, skip, take int) ([]model.Book, error) {
	books := []model.Book{}
	if err := r.db.WithContext(ctx).
		Scopes(matching(filter)).
		Order("id DESC").
		Offset(skip).
		Limit(take).
		Find(&books).Error; err != nil {

		return nil, fmt.Errorf("find books: %w", err)
	}
	return books, nil
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).
		First(&book, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, fmt.Errorf("find book %d: %w", id, err)
	}
	return &book, nil
}

func (r *GormBookRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var book model.Book
	err := r.db.WithContext(ctx).
		Select("id").
		Take(&book, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check book %d: %w", id, err)
	}
	return true, nil
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// Update overwrites every writable column of book. Zero timestamps are left
// to gorm: UpdatedAt is refreshed and CreatedAt is kept.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	fields := map[string]any{
		"title":       book.Title,
		"author":      book.Author,
		"description": book.Description,
	}
	if !book.CreatedAt.IsZero() {
		fields["created_at"] = book.CreatedAt
	}
	if !book.UpdatedAt.IsZero() {
		fields["updated_at"] = book.UpdatedAt
	}

	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", book.ID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update book %d: %w", book.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Book{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete book %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

// matching constrains a query to books whose columns contain every filter
// pattern, ignoring case. Keys missing from filter match anything. Both sides
// are folded by the database's LOWER so column and pattern fold alike.
func matching(filter listquery.Filter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, key := range listquery.FilterKeys {
			pattern, ok := filter[key]
			if !ok || pattern == "" {
				continue
			}
			col := filterColumns[key]
			tx = tx.Where(
				"LOWER("+col+") LIKE LOWER(CAST(? AS TEXT)) ESCAPE '\\'",
				"%"+escapeLike(pattern)+"%",
			)
		}
		return tx
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
