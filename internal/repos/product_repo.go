package repos

import (
	"encoding/json"
	"errors"

	"craftroots/internal/domain"

	"github.com/jmoiron/sqlx"
)

// ErrInsufficientStock reports a decrement larger than the stock on hand.
var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, seller_id, category, name, description, price, stock, images_json, active,
    created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) Create(p *domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,seller_id,category,name,description,price,stock,images_json,active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, p.ID, p.SellerID, p.Category, p.Name, p.Description, p.Price, p.Stock, p.ImagesJSON, p.Active, p.CreatedAt)
	return mapDBErr(err)
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, mapDBErr(err)
}

func (r *ProductRepo) List(category string, limit, offset int) ([]domain.Product, error) {
	out := []domain.Product{}
	where := `active = 1`
	args := []any{}
	if category != "" {
		where += ` AND category = ?`
		args = append(args, category)
	}
	args = append(args, limit, offset)
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE `+where+`
	  ORDER BY created_at DESC
	  LIMIT ? OFFSET ?
	`, args...)
	return out, err
}

// CountInStock counts active products with stock on hand, optionally
// narrowed to a category.
func (r *ProductRepo) CountInStock(category string) (int, error) {
	var n int
	if category == "" {
		err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE active = 1 AND stock > 0`)
		return n, err
	}
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE active = 1 AND stock > 0 AND category = ?`, category)
	return n, err
}

func (r *ProductRepo) UpdateStock(id string, stock int) error {
	res, err := r.db.Exec(`UPDATE products SET stock = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, stock, id)
	if err != nil {
		return mapDBErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DecrementStock subtracts "by" units if enough stock exists; the WHERE
// guard keeps the check-and-subtract atomic.
func (r *ProductRepo) DecrementStock(id string, by int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

// AdminRow is the trimmed listing the back office uses.
type AdminRow struct {
	ID         string   `db:"id" json:"id"`
	Name       string   `db:"name" json:"name"`
	ImagesJSON string   `db:"images_json" json:"-"`
	Images     []string `db:"-" json:"images"`
}

// ListAdmin returns all products; withoutStories narrows to products that
// have no story yet, so the back office can see what still needs one.
func (r *ProductRepo) ListAdmin(withoutStories bool) ([]AdminRow, error) {
	out := []AdminRow{}
	q := `SELECT p.id, p.name, p.images_json FROM products p`
	if withoutStories {
		q += ` LEFT JOIN stories s ON s.product_id = p.id WHERE s.id IS NULL`
	}
	q += ` ORDER BY p.name`
	if err := r.db.Select(&out, q); err != nil {
		return nil, err
	}
	for i := range out {
		if err := json.Unmarshal([]byte(out[i].ImagesJSON), &out[i].Images); err != nil {
			out[i].Images = []string{}
		}
	}
	return out, nil
}

// Rate records or replaces a shopper's star rating for a product.
func (r *ProductRepo) Rate(productID, accountID string, value int) error {
	_, err := r.db.Exec(`
	  INSERT INTO product_ratings(product_id, account_id, value, created_at)
	  VALUES(?, ?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(product_id, account_id) DO UPDATE SET value = excluded.value, created_at = CURRENT_TIMESTAMP
	`, productID, accountID, value)
	return mapDBErr(err)
}

type RatingSummary struct {
	Average float64 `db:"average" json:"average"`
	Count   int     `db:"count" json:"count"`
}

func (r *ProductRepo) RatingSummary(productID string) (RatingSummary, error) {
	var s RatingSummary
	err := r.db.Get(&s, `
	  SELECT COALESCE(AVG(value),0) AS average, COUNT(*) AS count
	  FROM product_ratings WHERE product_id = ?
	`, productID)
	return s, err
}
