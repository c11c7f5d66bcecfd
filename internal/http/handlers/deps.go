package handlers

import (
	"github.com/jmoiron/sqlx"

	"craftroots/internal/config"
	"craftroots/internal/repos"
	"craftroots/internal/services"
)

// Deps bundles the wired handlers so route registration in cmd/ stays flat.
type Deps struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	Wishlist *services.WishlistService
	Inquiry  *services.InquiryService

	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	StoryHandler    *StoryHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	WishlistHandler *WishlistHandler
	ReviewHandler   *ReviewHandler
	ContactHandler  *ContactHandler
	AdminHandler    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	accounts := repos.NewAccountRepo(db)
	products := repos.NewProductRepo(db)
	stories := repos.NewStoryRepo(db)
	carts := repos.NewCartRepo(db)
	orders := repos.NewOrderRepo(db)
	reviews := repos.NewReviewRepo(db)
	wishlists := repos.NewWishlistRepo(db)
	inquiries := repos.NewInquiryRepo(db)

	auth := &services.AuthService{Accounts: accounts}
	catalog := services.NewCatalogService(products, stories)
	cart := services.NewCartService(carts, products)
	order := services.NewOrderService(carts, products, orders)
	review := services.NewReviewService(reviews, products, orders)
	wish := services.NewWishlistService(wishlists)
	inquiry := services.NewInquiryService(inquiries)

	return &Deps{
		Auth:     auth,
		Catalog:  catalog,
		Orders:   order,
		Reviews:  review,
		Wishlist: wish,
		Inquiry:  inquiry,

		AuthHandler:     &AuthHandler{Auth: auth},
		ProductHandler:  &ProductHandler{Catalog: catalog},
		StoryHandler:    &StoryHandler{Catalog: catalog},
		CartHandler:     &CartHandler{Cart: cart},
		OrderHandler:    &OrderHandler{Order: order},
		WishlistHandler: &WishlistHandler{Wish: wish},
		ReviewHandler:   &ReviewHandler{Reviews: review},
		ContactHandler:  &ContactHandler{Inquiries: inquiry},
		AdminHandler:    &AdminHandler{Catalog: catalog, Order: order, Inquiries: inquiry},
	}
}
