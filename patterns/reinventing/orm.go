package reinventing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jeffsasaki/antipatterns/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository replaces CustomORM with gorm over an existing postgres
// connection.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(conn *sql.DB) (*ProductRepository, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return &ProductRepository{db: db}, nil
}

// Save inserts p and sets its generated id.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Find(ctx context.Context, id int) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("find product %d: %w", id, err)
	}
	return p, nil
}
