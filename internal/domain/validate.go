package domain

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required"}
}

func nowStamp() string { return time.Now().UTC().Format(time.RFC3339) }

// ValidateAccount normalizes and checks an account before it is persisted.
// Email is lowercased; an empty role defaults to "user".
func ValidateAccount(a *Account) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Email == "" {
		return missing("email")
	}
	if a.Name == "" {
		return missing("name")
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	if !a.Role.Valid() {
		return invalid("role", "must be one of user, seller, admin")
	}
	if a.CreatedAt == "" {
		a.CreatedAt = nowStamp()
	}
	return nil
}

func ValidateProduct(p *Product) error {
	if p.Name == "" {
		return missing("name")
	}
	if p.SellerID == "" {
		return missing("sellerId")
	}
	if p.Category == "" {
		return missing("category")
	}
	if p.Price < 0 {
		return invalid("price", "must not be negative")
	}
	if p.Stock < 0 {
		return invalid("stock", "must not be negative")
	}
	if p.ImagesJSON == "" {
		p.ImagesJSON = "[]"
	}
	if p.CreatedAt == "" {
		p.CreatedAt = nowStamp()
	}
	return nil
}

// ValidateRating checks a star value against the permitted [1,5] window.
func ValidateRating(value int) error {
	if value < 1 || value > 5 {
		return invalid("rating", "must be between 1 and 5")
	}
	return nil
}

func ValidateReview(r *Review) error {
	if r.ProductID == "" {
		return missing("productId")
	}
	if r.AccountID == "" {
		return missing("accountId")
	}
	if err := ValidateRating(r.Rating); err != nil {
		return err
	}
	if strings.TrimSpace(r.Body) == "" {
		return missing("body")
	}
	if r.HelpfulVotes < 0 {
		r.HelpfulVotes = 0
	}
	if r.CreatedAt == "" {
		r.CreatedAt = nowStamp()
	}
	return nil
}

func ValidateOrder(o *Order, items []OrderItem) error {
	if o.AccountID == "" {
		return missing("accountId")
	}
	if len(items) == 0 {
		return invalid("items", "order must contain at least one line item")
	}
	for _, it := range items {
		if it.ProductID == "" {
			return missing("items.productId")
		}
		if it.Qty < 1 {
			return invalid("items.qty", "must be at least 1")
		}
		if it.Price < 0 {
			return invalid("items.price", "must not be negative")
		}
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	if !o.Status.Valid() {
		return invalid("status", "unknown order status")
	}
	if o.CreatedAt == "" {
		o.CreatedAt = nowStamp()
	}
	return nil
}

func ValidateStory(s *Story) error {
	if s.ProductID == "" {
		return missing("productId")
	}
	if s.Artisan == "" {
		return missing("artisan")
	}
	if s.Region == "" {
		return missing("region")
	}
	if strings.TrimSpace(s.Process) == "" {
		return missing("process")
	}
	if s.CreatedAt == "" {
		s.CreatedAt = nowStamp()
	}
	return nil
}

func ValidateInquiry(q *ContactInquiry) error {
	q.Email = strings.ToLower(strings.TrimSpace(q.Email))
	if q.Email == "" {
		return missing("email")
	}
	if q.Name == "" {
		return missing("name")
	}
	if strings.TrimSpace(q.Message) == "" {
		return missing("message")
	}
	if q.Type == "" {
		q.Type = InquiryGeneral
	}
	if !q.Type.Valid() {
		return invalid("type", "unknown inquiry type")
	}
	if q.Status == "" {
		q.Status = InquiryPending
	}
	if !q.Status.Valid() {
		return invalid("status", "unknown inquiry status")
	}
	if q.CreatedAt == "" {
		q.CreatedAt = nowStamp()
	}
	return nil
}
