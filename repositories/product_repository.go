package repositories

import (
	"context"
	"database/sql"
	"errors"

	"backoffice-service/models"
	"backoffice-service/store"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p models.Product) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO products (name, price, stock, category_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, NULL)",
		p.Name, p.Price, p.Stock, p.CategoryID, p.CreatedAt)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *ProductRepository) Get(ctx context.Context, id int) (*models.Product, error) {
	var (
		p            models.Product
		updatedAt    sql.NullTime
		categoryID   sql.NullInt64
		categoryName sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.price, p.stock, p.category_id, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = ?
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &categoryID, &p.CreatedAt, &updatedAt, &categoryName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if updatedAt.Valid {
		p.UpdatedAt = &updatedAt.Time
	}
	if categoryID.Valid {
		cid := int(categoryID.Int64)
		p.CategoryID = &cid
		p.Category = &models.Category{ID: cid, Name: categoryName.String}
	}
	return &p, nil
}

func (r *ProductRepository) List(ctx context.Context, page, size int, name string, categoryID int) ([]models.Product, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if name != "" {
		where += " AND p.name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	if categoryID > 0 {
		where += " AND p.category_id = ?"
		args = append(args, categoryID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products p"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, size, (page-1)*size)
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.stock, p.category_id, p.created_at, p.updated_at, c.name
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id`+where+`
		ORDER BY p.id ASC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var (
			p            models.Product
			updatedAt    sql.NullTime
			catID        sql.NullInt64
			categoryName sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &catID, &p.CreatedAt, &updatedAt, &categoryName); err != nil {
			return nil, 0, err
		}
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}
		if catID.Valid {
			cid := int(catID.Int64)
			p.CategoryID = &cid
			p.Category = &models.Category{ID: cid, Name: categoryName.String}
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p models.Product) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE products SET name = ?, price = ?, stock = ?, category_id = ?, updated_at = ? WHERE id = ?",
		p.Name, p.Price, p.Stock, p.CategoryID, p.UpdatedAt, p.ID)
	return err
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
