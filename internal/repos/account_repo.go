package repos

import (
	"craftroots/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AccountRepo struct{ DB *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = `id,email,name,password_hash,role,addr_country,addr_city,addr_street,addr_postal,created_at,COALESCE(updated_at,'') AS updated_at`

func (r *AccountRepo) Create(a *domain.Account) error {
	_, err := r.DB.Exec(`
	  INSERT INTO accounts(id,email,name,password_hash,role,addr_country,addr_city,addr_street,addr_postal,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?)
	`, a.ID, a.Email, a.Name, a.Hash, a.Role, a.Country, a.City, a.Street, a.PostalCode, a.CreatedAt)
	return mapDBErr(err)
}

func (r *AccountRepo) ByEmail(email string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `SELECT `+accountCols+` FROM accounts WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, mapDBErr(err)
	}
	return &a, nil
}

func (r *AccountRepo) ByID(id string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `SELECT `+accountCols+` FROM accounts WHERE id=?`, id)
	if err != nil {
		return nil, mapDBErr(err)
	}
	return &a, nil
}

func (r *AccountRepo) BindSession(sid, accountID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,account_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET account_id=excluded.account_id,last_seen=CURRENT_TIMESTAMP`, sid, accountID)
	return err
}

func (r *AccountRepo) SessionAccount(sid string) (*domain.Account, error) {
	var a domain.Account
	err := r.DB.Get(&a, `
      SELECT a.id,a.email,a.name,a.password_hash,a.role,
             a.addr_country,a.addr_city,a.addr_street,a.addr_postal,
             a.created_at,COALESCE(a.updated_at,'') AS updated_at
      FROM sessions s
      JOIN accounts a ON a.id=s.account_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, mapDBErr(err)
	}
	return &a, nil
}

func (r *AccountRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET account_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
