package repos

import (
	"craftroots/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ReviewRepo struct{ db *sqlx.DB }

func NewReviewRepo(db *sqlx.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewCols = `id, product_id, account_id, rating, body, verified, helpful_votes,
    created_at, COALESCE(updated_at,'') AS updated_at`

// Create inserts a review. A second review for the same (product, account)
// pair violates the compound unique index and returns ErrDuplicate.
func (r *ReviewRepo) Create(rv *domain.Review) error {
	_, err := r.db.Exec(`
	  INSERT INTO reviews(id, product_id, account_id, rating, body, verified, helpful_votes, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, rv.ID, rv.ProductID, rv.AccountID, rv.Rating, rv.Body, rv.Verified, rv.HelpfulVotes, rv.CreatedAt)
	return mapDBErr(err)
}

func (r *ReviewRepo) Get(id string) (domain.Review, error) {
	var rv domain.Review
	err := r.db.Get(&rv, `SELECT `+reviewCols+` FROM reviews WHERE id = ?`, id)
	return rv, mapDBErr(err)
}

func (r *ReviewRepo) ListByProduct(productID string) ([]domain.Review, error) {
	out := []domain.Review{}
	err := r.db.Select(&out, `
	  SELECT `+reviewCols+`
	  FROM reviews
	  WHERE product_id = ?
	  ORDER BY datetime(created_at) DESC
	`, productID)
	return out, err
}

func (r *ReviewRepo) AddHelpfulVote(id string) error {
	res, err := r.db.Exec(`
	  UPDATE reviews SET helpful_votes = helpful_votes + 1, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
