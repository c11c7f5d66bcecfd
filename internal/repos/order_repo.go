package repos

import (
	"craftroots/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create inserts the order header and its line items in one transaction.
func (r *OrderRepo) Create(o *domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, account_id, total, status, created_at)
	  VALUES(?, ?, ?, ?, ?)
	`, o.ID, o.AccountID, o.Total, o.Status, o.CreatedAt); err != nil {
		return mapDBErr(err)
	}
	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, qty, price)
		  VALUES(?, ?, ?, ?)
		`, o.ID, it.ProductID, it.Qty, it.Price); err != nil {
			return mapDBErr(err)
		}
	}
	return tx.Commit()
}

type OrderItemRow struct {
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Qty       int     `db:"qty" json:"qty"`
	Price     float64 `db:"price" json:"price"`
	Subtotal  float64 `db:"subtotal" json:"subtotal"`
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []OrderItemRow, error) {
	var o domain.Order
	if err := r.db.Get(&o, `
		SELECT id, account_id, total, status, created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders WHERE id = ?
	`, orderID); err != nil {
		return domain.Order{}, nil, mapDBErr(err)
	}

	items := []OrderItemRow{}
	if err := r.db.Select(&items, `
		SELECT oi.product_id, p.name, oi.qty, oi.price, (oi.qty * oi.price) AS subtotal
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY p.name
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT id, account_id, total, status, created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (r *OrderRepo) ListByAccount(accountID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
		SELECT id, account_id, total, status, created_at, COALESCE(updated_at,'') AS updated_at
		FROM orders
		WHERE account_id = ?
		ORDER BY datetime(created_at) DESC
	`, accountID)
	return out, err
}

// AccountPurchased reports whether the account has a non-cancelled order
// containing the product. Feeds the verified-purchase flag on reviews.
func (r *OrderRepo) AccountPurchased(accountID, productID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*)
	  FROM orders o
	  JOIN order_items oi ON oi.order_id = o.id
	  WHERE o.account_id = ? AND oi.product_id = ? AND o.status != 'cancelled'
	`, accountID, productID)
	return n > 0, err
}

// UpdateStatus overwrites the status only when the current value still
// matches "from", so two concurrent transitions cannot both win.
func (r *OrderRepo) UpdateStatus(id string, from, to domain.OrderStatus) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ?
	`, to, id, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
