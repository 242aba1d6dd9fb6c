package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/linemk/online-store/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage описывает методы для работы с таблицей товаров.
type ProductStorage interface {
	// ListProducts возвращает все товары, отсортированные по id.
	ListProducts(ctx context.Context) ([]*models.Product, error)
	// GetProductByID ищет товар по идентификатору.
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	// CreateProduct вставляет товар и заполняет id и created_at, выданные БД.
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	// CreateProductTx делает то же самое внутри транзакции.
	CreateProductTx(ctx context.Context, tx *sql.Tx, product *models.Product) (*models.Product, error)
	// LockProductByIDTx читает товар и блокирует строку до конца транзакции.
	LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	// UpdateProductStockTx записывает новый остаток товара.
	UpdateProductStockTx(ctx context.Context, tx *sql.Tx, id int64, stock int) error
	// CountProductsTx возвращает количество товаров.
	CountProductsTx(ctx context.Context, tx *sql.Tx) (int, error)
}

// querier - общее подмножество *sql.DB и *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт новый репозиторий товаров.
func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = "id, name, description, price, category, stock, created_at"

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Category, &product.Stock, &product.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	return scanProduct(row)
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return insertProduct(ctx, r.db, product)
}

func (r *productRepository) CreateProductTx(ctx context.Context, tx *sql.Tx, product *models.Product) (*models.Product, error) {
	return insertProduct(ctx, tx, product)
}

// LockProductByIDTx блокирует строку товара (FOR UPDATE), параллельные заказы
// на этот же товар ждут окончания текущей транзакции
func (r *productRepository) LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1 FOR UPDATE", id)
	return scanProduct(row)
}

func (r *productRepository) UpdateProductStockTx(ctx context.Context, tx *sql.Tx, id int64, stock int) error {
	res, err := tx.ExecContext(ctx, "UPDATE products SET stock = $1 WHERE id = $2", stock, id)
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) CountProductsTx(ctx context.Context, tx *sql.Tx) (int, error) {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func insertProduct(ctx context.Context, q querier, product *models.Product) (*models.Product, error) {
	query := `INSERT INTO products (name, description, price, category, stock)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := q.QueryRowContext(ctx, query,
		product.Name, product.Description, product.Price, product.Category, product.Stock,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func scanProduct(row *sql.Row) (*models.Product, error) {
	product := &models.Product{}
	if err := row.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Category, &product.Stock, &product.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
