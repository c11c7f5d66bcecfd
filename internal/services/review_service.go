package services

import (
	"craftroots/internal/domain"
	"craftroots/internal/repos"

	"github.com/google/uuid"
)

type ReviewService struct {
	Reviews *repos.ReviewRepo
	Prods   *repos.ProductRepo
	Orders  *repos.OrderRepo
}

func NewReviewService(reviews *repos.ReviewRepo, prods *repos.ProductRepo, orders *repos.OrderRepo) *ReviewService {
	return &ReviewService{Reviews: reviews, Prods: prods, Orders: orders}
}

// Submit creates the account's review of a product. The compound unique
// index allows one per pair; a second attempt surfaces repos.ErrDuplicate.
// The verified flag is derived from order history, never from the caller.
func (s *ReviewService) Submit(productID, accountID string, rating int, body string) (*domain.Review, error) {
	rv := &domain.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		AccountID: accountID,
		Rating:    rating,
		Body:      body,
	}
	if err := domain.ValidateReview(rv); err != nil {
		return nil, err
	}
	if _, err := s.Prods.Get(productID); err != nil {
		return nil, err
	}
	purchased, err := s.Orders.AccountPurchased(accountID, productID)
	if err != nil {
		return nil, err
	}
	rv.Verified = purchased
	if err := s.Reviews.Create(rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) ListByProduct(productID string) ([]domain.Review, error) {
	return s.Reviews.ListByProduct(productID)
}

func (s *ReviewService) VoteHelpful(reviewID string) error {
	return s.Reviews.AddHelpfulVote(reviewID)
}
