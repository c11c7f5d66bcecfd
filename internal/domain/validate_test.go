package domain

import (
	"errors"
	"testing"
)

func TestValidateAccountNormalizesAndDefaults(t *testing.T) {
	a := &Account{ID: "a1", Email: "  Mixed@Example.COM ", Name: "Mixed"}
	if err := ValidateAccount(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Email != "mixed@example.com" {
		t.Fatalf("email not lowercased: %q", a.Email)
	}
	if a.Role != RoleUser {
		t.Fatalf("empty role should default to user, got %q", a.Role)
	}
	if a.CreatedAt == "" {
		t.Fatal("created_at not stamped")
	}

	bad := &Account{ID: "a2", Email: "x@example.com", Name: "X", Role: "superuser"}
	var verr *ValidationError
	if err := ValidateAccount(bad); !errors.As(err, &verr) || verr.Field != "role" {
		t.Fatalf("expected role validation error, got %v", err)
	}
}

func TestValidateRatingBounds(t *testing.T) {
	for _, v := range []int{1, 3, 5} {
		if err := ValidateRating(v); err != nil {
			t.Fatalf("value %d should pass: %v", v, err)
		}
	}
	for _, v := range []int{0, 6, -1} {
		if err := ValidateRating(v); err == nil {
			t.Fatalf("value %d should fail", v)
		}
	}
}

func TestValidateInquiryDefaults(t *testing.T) {
	q := &ContactInquiry{ID: "q1", Email: "PAT@Example.com", Name: "Pat", Message: "hi"}
	if err := ValidateInquiry(q); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Type != InquiryGeneral || q.Status != InquiryPending {
		t.Fatalf("expected general/pending defaults, got %s/%s", q.Type, q.Status)
	}
	if q.Email != "pat@example.com" {
		t.Fatalf("email not lowercased: %q", q.Email)
	}

	q2 := &ContactInquiry{ID: "q2", Email: "pat@example.com", Name: "Pat", Message: "hi", Type: "billing"}
	if err := ValidateInquiry(q2); err == nil {
		t.Fatal("unknown type should fail")
	}
}

func TestValidateOrderRequiresLineItems(t *testing.T) {
	o := &Order{ID: "o1", AccountID: "a1"}
	if err := ValidateOrder(o, nil); err == nil {
		t.Fatal("empty order should fail")
	}
	items := []OrderItem{{ProductID: "p1", Qty: 1, Price: 10}}
	if err := ValidateOrder(o, items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Status != OrderPending {
		t.Fatalf("expected pending default, got %s", o.Status)
	}
}

func TestOrderTransitionEdges(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderPending, OrderProcessing},
		{OrderPending, OrderCancelled},
		{OrderProcessing, OrderShipped},
		{OrderProcessing, OrderCancelled},
		{OrderShipped, OrderDelivered},
		{OrderDelivered, OrderRefunded},
	}
	for _, e := range allowed {
		if !e.from.CanTransitionTo(e.to) {
			t.Errorf("%s -> %s should be allowed", e.from, e.to)
		}
	}
	denied := []struct{ from, to OrderStatus }{
		{OrderPending, OrderShipped},
		{OrderPending, OrderDelivered},
		{OrderShipped, OrderCancelled},
		{OrderDelivered, OrderProcessing},
		{OrderCancelled, OrderPending},
		{OrderRefunded, OrderPending},
		{OrderDelivered, OrderDelivered},
	}
	for _, e := range denied {
		if e.from.CanTransitionTo(e.to) {
			t.Errorf("%s -> %s should be denied", e.from, e.to)
		}
	}
}

func TestInquiryTransitionEdges(t *testing.T) {
	if !InquiryPending.CanTransitionTo(InquiryInProgress) {
		t.Error("pending -> in-progress should be allowed")
	}
	if !InquiryPending.CanTransitionTo(InquiryResolved) {
		t.Error("pending -> resolved should be allowed")
	}
	if !InquiryInProgress.CanTransitionTo(InquiryResolved) {
		t.Error("in-progress -> resolved should be allowed")
	}
	if InquiryResolved.CanTransitionTo(InquiryPending) || InquiryResolved.CanTransitionTo(InquiryInProgress) {
		t.Error("resolved must be terminal")
	}
	if InquiryInProgress.CanTransitionTo(InquiryPending) {
		t.Error("in-progress -> pending should be denied")
	}
}
