package repos

import (
	"errors"
	"time"

	"craftroots/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WishlistRepo struct{ db *sqlx.DB }

func NewWishlistRepo(db *sqlx.DB) *WishlistRepo { return &WishlistRepo{db: db} }

// Ensure returns the account's wishlist id, creating the list on first use.
// The unique index on account_id keeps it one-per-account; a concurrent
// create losing the race falls back to reading the winner's row.
func (r *WishlistRepo) Ensure(accountID string) (string, error) {
	var id string
	if err := r.db.Get(&id, `SELECT id FROM wishlists WHERE account_id=?`, accountID); err == nil {
		return id, nil
	}
	id = uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO wishlists(id,account_id,updated_at) VALUES(?,?,?)`,
		id, accountID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		if errors.Is(mapDBErr(err), ErrDuplicate) {
			if gerr := r.db.Get(&id, `SELECT id FROM wishlists WHERE account_id=?`, accountID); gerr == nil {
				return id, nil
			}
		}
		return "", mapDBErr(err)
	}
	return id, nil
}

// Create inserts a wishlist row directly. A second wishlist for the same
// account fails with ErrDuplicate.
func (r *WishlistRepo) Create(w *domain.Wishlist) error {
	_, err := r.db.Exec(`INSERT INTO wishlists(id,account_id,updated_at) VALUES(?,?,?)`,
		w.ID, w.AccountID, time.Now().UTC().Format(time.RFC3339))
	return mapDBErr(err)
}

func (r *WishlistRepo) Add(wishlistID, productID string) error {
	_, err := r.db.Exec(`
	  INSERT INTO wishlist_items(wishlist_id, product_id, position, created_at)
	  VALUES(?, ?, COALESCE((SELECT MAX(position)+1 FROM wishlist_items WHERE wishlist_id=?), 0), CURRENT_TIMESTAMP)
	  ON CONFLICT(wishlist_id, product_id) DO NOTHING
	`, wishlistID, productID, wishlistID)
	return err
}

func (r *WishlistRepo) Remove(wishlistID, productID string) error {
	res, err := r.db.Exec(`DELETE FROM wishlist_items WHERE wishlist_id=? AND product_id=?`, wishlistID, productID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// WishlistRow is a wishlist entry with the product fields populated.
type WishlistRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Category  string  `db:"category" json:"category"`
	Price     float64 `db:"price" json:"price"`
	Stock     int     `db:"stock" json:"stock"`
	Active    bool    `db:"active" json:"active"`
}

func (r *WishlistRepo) List(wishlistID string) ([]WishlistRow, error) {
	out := []WishlistRow{}
	err := r.db.Select(&out, `
	  SELECT p.id AS product_id, p.name, p.category, p.price, p.stock, p.active
	  FROM wishlist_items wi
	  JOIN products p ON p.id = wi.product_id
	  WHERE wi.wishlist_id = ?
	  ORDER BY wi.position
	`, wishlistID)
	return out, err
}
