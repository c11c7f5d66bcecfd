package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"craftroots/internal/domain"
	"craftroots/internal/repos"
	"craftroots/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// The verified flag comes from order history, never from the caller.
func TestReviewVerifiedFromPurchaseHistory(t *testing.T) {
	db := memdb(t)
	orderRepo := repos.NewOrderRepo(db)
	svc := services.NewReviewService(repos.NewReviewRepo(db), repos.NewProductRepo(db), orderRepo)

	// no purchase yet: unverified
	rv, err := svc.Submit("cer-001", "u-ravi", 4, "pretty glaze")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rv.Verified {
		t.Fatal("review without a purchase must be unverified")
	}

	// a delivered order makes the next reviewer verified
	o := &domain.Order{ID: "o1", AccountID: "u-asha", Total: 34.50, Status: domain.OrderDelivered}
	if err := orderRepo.Create(o, []domain.OrderItem{{ProductID: "cer-001", Qty: 1, Price: 34.50}}); err != nil {
		t.Fatal(err)
	}
	rv2, err := svc.Submit("cer-001", "u-asha", 5, "survived daily use")
	if err != nil {
		t.Fatalf("submit verified: %v", err)
	}
	if !rv2.Verified {
		t.Fatal("reviewer with a purchase must be verified")
	}

	// a cancelled order does not count as a purchase
	oc := &domain.Order{ID: "o2", AccountID: "u-admin", Total: 42.00, Status: domain.OrderCancelled}
	if err := orderRepo.Create(oc, []domain.OrderItem{{ProductID: "tex-001", Qty: 1, Price: 42.00}}); err != nil {
		t.Fatal(err)
	}
	rv3, err := svc.Submit("tex-001", "u-admin", 3, "never arrived")
	if err != nil {
		t.Fatalf("submit after cancel: %v", err)
	}
	if rv3.Verified {
		t.Fatal("cancelled order must not verify a review")
	}
}

func TestReviewSecondSubmissionConflicts(t *testing.T) {
	db := memdb(t)
	svc := services.NewReviewService(repos.NewReviewRepo(db), repos.NewProductRepo(db), repos.NewOrderRepo(db))

	if _, err := svc.Submit("cer-001", "u-asha", 5, "first take"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit("cer-001", "u-asha", 2, "second take"); !errors.Is(err, repos.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestReviewUnknownProductRejected(t *testing.T) {
	db := memdb(t)
	svc := services.NewReviewService(repos.NewReviewRepo(db), repos.NewProductRepo(db), repos.NewOrderRepo(db))

	if _, err := svc.Submit("nope-001", "u-asha", 5, "ghost product"); !errors.Is(err, repos.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
