package repos

import (
	"craftroots/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InquiryRepo struct{ db *sqlx.DB }

func NewInquiryRepo(db *sqlx.DB) *InquiryRepo { return &InquiryRepo{db: db} }

const inquiryCols = `id, email, name, type, message, status, response, responded_at, viewed,
    created_at, COALESCE(updated_at,'') AS updated_at`

func (r *InquiryRepo) Create(q *domain.ContactInquiry) error {
	_, err := r.db.Exec(`
	  INSERT INTO inquiries(id, email, name, type, message, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, q.ID, q.Email, q.Name, q.Type, q.Message, q.Status, q.CreatedAt)
	return mapDBErr(err)
}

func (r *InquiryRepo) Get(id string) (domain.ContactInquiry, error) {
	var q domain.ContactInquiry
	err := r.db.Get(&q, `SELECT `+inquiryCols+` FROM inquiries WHERE id = ?`, id)
	return q, mapDBErr(err)
}

// ListByEmail returns the submitter's inquiries, newest first.
func (r *InquiryRepo) ListByEmail(email string) ([]domain.ContactInquiry, error) {
	out := []domain.ContactInquiry{}
	err := r.db.Select(&out, `
	  SELECT `+inquiryCols+`
	  FROM inquiries
	  WHERE LOWER(email) = LOWER(?)
	  ORDER BY datetime(created_at) DESC
	`, email)
	return out, err
}

func (r *InquiryRepo) ListLatest(limit int) ([]domain.ContactInquiry, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.ContactInquiry{}
	err := r.db.Select(&out, `
	  SELECT `+inquiryCols+`
	  FROM inquiries
	  ORDER BY datetime(created_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// CountUnread counts inquiries that have a response the submitter has not
// viewed yet. Viewed is independent of status, so a resolved inquiry still
// counts until its response is read.
func (r *InquiryRepo) CountUnread(email string) (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM inquiries
	  WHERE LOWER(email) = LOWER(?) AND response != '' AND viewed = 0
	`, email)
	return n, err
}

// UpdateStatus overwrites the status only when the current value still
// matches "from", so concurrent transitions cannot both win.
func (r *InquiryRepo) UpdateStatus(id string, from, to domain.InquiryStatus) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE inquiries SET status = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND status = ?
	`, to, id, from)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Respond attaches the staff response and resets the viewed flag so the
// submitter sees it as unread.
func (r *InquiryRepo) Respond(id, response string) error {
	res, err := r.db.Exec(`
	  UPDATE inquiries
	  SET response = ?, responded_at = CURRENT_TIMESTAMP, viewed = 0, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, response, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkViewed flags the response as read by the submitter.
func (r *InquiryRepo) MarkViewed(id string) error {
	res, err := r.db.Exec(`
	  UPDATE inquiries SET viewed = 1, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND response != ''
	`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
