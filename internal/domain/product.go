package domain

type Product struct {
	ID          string  `db:"id" json:"id"`
	SellerID    string  `db:"seller_id" json:"sellerId"`
	Category    string  `db:"category" json:"category"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	Stock       int     `db:"stock" json:"stock"`
	ImagesJSON  string  `db:"images_json" json:"-"`
	Active      bool    `db:"active" json:"active"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
	UpdatedAt   string  `db:"updated_at" json:"updatedAt,omitempty"`
}

// Rating is a single star rating a shopper left on a product.
type Rating struct {
	ProductID string `db:"product_id" json:"productId"`
	AccountID string `db:"account_id" json:"accountId"`
	Value     int    `db:"value" json:"value"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

// Story is the seller-written provenance narrative shown on a product page.
// At most one story exists per product.
type Story struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	Artisan   string `db:"artisan" json:"artisan"`
	Region    string `db:"region" json:"region"`
	Process   string `db:"process" json:"process"`
	Image     string `db:"image" json:"image"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}
