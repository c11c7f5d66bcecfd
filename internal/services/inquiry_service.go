package services

import (
	"fmt"
	"strings"

	"craftroots/internal/domain"
	"craftroots/internal/repos"

	"github.com/google/uuid"
)

type InquiryService struct {
	Inquiries *repos.InquiryRepo
}

func NewInquiryService(inquiries *repos.InquiryRepo) *InquiryService {
	return &InquiryService{Inquiries: inquiries}
}

func (s *InquiryService) Submit(email, name string, typ domain.InquiryType, message string) (*domain.ContactInquiry, error) {
	q := &domain.ContactInquiry{
		ID:      uuid.NewString(),
		Email:   email,
		Name:    name,
		Type:    typ,
		Message: message,
	}
	if err := domain.ValidateInquiry(q); err != nil {
		return nil, err
	}
	if err := s.Inquiries.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *InquiryService) Get(id string) (domain.ContactInquiry, error) {
	return s.Inquiries.Get(id)
}

func (s *InquiryService) ListForEmail(email string) ([]domain.ContactInquiry, error) {
	return s.Inquiries.ListByEmail(email)
}

func (s *InquiryService) UnreadCount(email string) (int, error) {
	return s.Inquiries.CountUnread(email)
}

func (s *InquiryService) ListLatest(limit int) ([]domain.ContactInquiry, error) {
	return s.Inquiries.ListLatest(limit)
}

// Transition moves an inquiry along the declared status edges.
func (s *InquiryService) Transition(id string, to domain.InquiryStatus) (domain.ContactInquiry, error) {
	if !to.Valid() {
		return domain.ContactInquiry{}, &domain.ValidationError{Field: "status", Reason: "unknown inquiry status"}
	}
	q, err := s.Inquiries.Get(id)
	if err != nil {
		return domain.ContactInquiry{}, err
	}
	if !q.Status.CanTransitionTo(to) {
		return domain.ContactInquiry{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, to)
	}
	ok, err := s.Inquiries.UpdateStatus(id, q.Status, to)
	if err != nil {
		return domain.ContactInquiry{}, err
	}
	if !ok {
		return domain.ContactInquiry{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, q.Status, to)
	}
	q.Status = to
	return q, nil
}

// Respond attaches a staff response; the inquiry moves to in-progress if it
// was still pending so the status reflects that someone picked it up.
func (s *InquiryService) Respond(id, response string) (domain.ContactInquiry, error) {
	if response == "" {
		return domain.ContactInquiry{}, &domain.ValidationError{Field: "response", Reason: "required"}
	}
	q, err := s.Inquiries.Get(id)
	if err != nil {
		return domain.ContactInquiry{}, err
	}
	if err := s.Inquiries.Respond(id, response); err != nil {
		return domain.ContactInquiry{}, err
	}
	if q.Status == domain.InquiryPending {
		// a concurrent transition losing the compare-and-swap is fine;
		// a storage failure is not
		if _, err := s.Inquiries.UpdateStatus(id, domain.InquiryPending, domain.InquiryInProgress); err != nil {
			return domain.ContactInquiry{}, err
		}
	}
	return s.Inquiries.Get(id)
}

// MarkViewed records that the submitter read the response. Only the
// submitter may clear their own unread flag.
func (s *InquiryService) MarkViewed(id, email string) error {
	q, err := s.Inquiries.Get(id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(q.Email, email) {
		return repos.ErrNotFound
	}
	return s.Inquiries.MarkViewed(id)
}
