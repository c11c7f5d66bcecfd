package services

import (
	"craftroots/internal/domain"
	"craftroots/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Prods   *repos.ProductRepo
	Stories *repos.StoryRepo
}

func NewCatalogService(prods *repos.ProductRepo, stories *repos.StoryRepo) *CatalogService {
	return &CatalogService{Prods: prods, Stories: stories}
}

func (s *CatalogService) ListProducts(category string, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	offset := (page - 1) * pageSize
	return s.Prods.List(category, pageSize, offset)
}

// ProductDetail is a product with its rating summary attached.
type ProductDetail struct {
	domain.Product
	Ratings repos.RatingSummary `json:"ratings"`
}

func (s *CatalogService) GetProduct(id string) (ProductDetail, error) {
	p, err := s.Prods.Get(id)
	if err != nil {
		return ProductDetail{}, err
	}
	sum, err := s.Prods.RatingSummary(id)
	if err != nil {
		return ProductDetail{}, err
	}
	return ProductDetail{Product: p, Ratings: sum}, nil
}

func (s *CatalogService) CountInStock(category string) (int, error) {
	return s.Prods.CountInStock(category)
}

func (s *CatalogService) CreateProduct(p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Active = true
	if err := domain.ValidateProduct(p); err != nil {
		return err
	}
	return s.Prods.Create(p)
}

func (s *CatalogService) UpdateStock(productID string, stock int) error {
	if stock < 0 {
		return &domain.ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return s.Prods.UpdateStock(productID, stock)
}

// RateProduct records a shopper's star rating after checking the product
// exists and the value sits in [1,5].
func (s *CatalogService) RateProduct(productID, accountID string, value int) error {
	if err := domain.ValidateRating(value); err != nil {
		return err
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return err
	}
	return s.Prods.Rate(productID, accountID, value)
}

func (s *CatalogService) ListAdmin(withoutStories bool) ([]repos.AdminRow, error) {
	return s.Prods.ListAdmin(withoutStories)
}

// GetStory returns the product's story, repos.ErrNotFound when none exists.
func (s *CatalogService) GetStory(productID string) (domain.Story, error) {
	return s.Stories.ByProduct(productID)
}

func (s *CatalogService) UpsertStory(st *domain.Story) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if err := domain.ValidateStory(st); err != nil {
		return err
	}
	if _, err := s.Prods.Get(st.ProductID); err != nil {
		return err
	}
	return s.Stories.Upsert(st)
}
