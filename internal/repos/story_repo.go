package repos

import (
	"craftroots/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StoryRepo struct{ db *sqlx.DB }

func NewStoryRepo(db *sqlx.DB) *StoryRepo { return &StoryRepo{db: db} }

const storyCols = `id, product_id, artisan, region, process, image,
    created_at, COALESCE(updated_at,'') AS updated_at`

// Upsert writes the product's story; the unique index keeps it one per
// product, so a second write replaces the narrative in place.
func (r *StoryRepo) Upsert(s *domain.Story) error {
	_, err := r.db.Exec(`
	  INSERT INTO stories(id, product_id, artisan, region, process, image, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	  ON CONFLICT(product_id) DO UPDATE SET
	    artisan = excluded.artisan,
	    region = excluded.region,
	    process = excluded.process,
	    image = excluded.image,
	    updated_at = CURRENT_TIMESTAMP
	`, s.ID, s.ProductID, s.Artisan, s.Region, s.Process, s.Image, s.CreatedAt)
	return mapDBErr(err)
}

func (r *StoryRepo) ByProduct(productID string) (domain.Story, error) {
	var s domain.Story
	err := r.db.Get(&s, `SELECT `+storyCols+` FROM stories WHERE product_id = ?`, productID)
	return s, mapDBErr(err)
}
