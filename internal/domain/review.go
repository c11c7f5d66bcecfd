package domain

// Review is a written product review. One review per (product, account)
// pair, enforced by a compound unique index at the storage layer.
type Review struct {
	ID           string `db:"id" json:"id"`
	ProductID    string `db:"product_id" json:"productId"`
	AccountID    string `db:"account_id" json:"accountId"`
	Rating       int    `db:"rating" json:"rating"`
	Body         string `db:"body" json:"body"`
	Verified     bool   `db:"verified" json:"verifiedPurchase"`
	HelpfulVotes int    `db:"helpful_votes" json:"helpfulVotes"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
	UpdatedAt    string `db:"updated_at" json:"updatedAt,omitempty"`
}

type Wishlist struct {
	ID        string `db:"id" json:"id"`
	AccountID string `db:"account_id" json:"accountId"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}
