package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if the DB is empty (sellers/products/stories)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure baseline accounts exist (idempotent; safe to run every start)
	if err := seedAccounts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Accounts
CREATE TABLE IF NOT EXISTS accounts(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('user','seller','admin')),
  addr_country TEXT NOT NULL DEFAULT '',
  addr_city    TEXT NOT NULL DEFAULT '',
  addr_street  TEXT NOT NULL DEFAULT '',
  addr_postal  TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email ON accounts(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  account_id TEXT NULL REFERENCES accounts(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_account ON sessions(account_id);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE RESTRICT,
  category TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  images_json TEXT NOT NULL DEFAULT '[]',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_seller     ON products(seller_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Star ratings, one per shopper per product
CREATE TABLE IF NOT EXISTS product_ratings(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  value INTEGER NOT NULL CHECK (value BETWEEN 1 AND 5),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY(product_id, account_id)
);

-- Written reviews, compound-unique per (product, account)
CREATE TABLE IF NOT EXISTS reviews(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  body TEXT NOT NULL,
  verified INTEGER NOT NULL DEFAULT 0,
  helpful_votes INTEGER NOT NULL DEFAULT 0 CHECK (helpful_votes >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_product_account ON reviews(product_id, account_id);
CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);

-- Seller stories, one per product
CREATE TABLE IF NOT EXISTS stories(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  artisan TEXT NOT NULL,
  region TEXT NOT NULL,
  process TEXT NOT NULL,
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_stories_product ON stories(product_id);

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price_at_add NUMERIC NOT NULL,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES accounts(id),
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','processing','shipped','delivered','cancelled','refunded')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_orders_account    ON orders(account_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Wishlists, one per account
CREATE TABLE IF NOT EXISTS wishlists(
  id TEXT PRIMARY KEY,
  account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_wishlists_account ON wishlists(account_id);

CREATE TABLE IF NOT EXISTS wishlist_items(
  wishlist_id TEXT NOT NULL REFERENCES wishlists(id) ON DELETE CASCADE,
  product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  position    INTEGER NOT NULL DEFAULT 0,
  created_at  TEXT,
  PRIMARY KEY (wishlist_id, product_id)
);

-- Contact inquiries, response sub-record owned inline
CREATE TABLE IF NOT EXISTS inquiries(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  name  TEXT NOT NULL,
  type TEXT NOT NULL DEFAULT 'general'
    CHECK (type IN ('general','order','product','complaint')),
  message TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending'
    CHECK (status IN ('pending','in-progress','resolved')),
  response TEXT NOT NULL DEFAULT '',
  responded_at TEXT NOT NULL DEFAULT '',
  viewed INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_inquiries_email      ON inquiries(LOWER(email));
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo sellers/products/stories")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	h, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), 12)
	tx.MustExec(`INSERT INTO accounts(id,email,name,password_hash,role) VALUES
	  ('s-mira','mira@craftroots.test','Mira Devi',?,'seller'),
	  ('s-anil','anil@craftroots.test','Anil Kumar',?,'seller')
	  ON CONFLICT(email) DO NOTHING`, string(h), string(h))

	tx.MustExec(`INSERT INTO products(id,seller_id,category,name,description,price,stock,images_json) VALUES
	  ('cer-001','s-mira','ceramics','Terracotta Water Jug','Hand-thrown terracotta jug, natural cooling.',34.50,12,'["products/cer-001/main.jpg"]'),
	  ('cer-002','s-mira','ceramics','Blue Pottery Bowl Set','Set of four Jaipur blue pottery bowls.',58.00,6,'["products/cer-002/main.jpg"]'),
	  ('tex-001','s-anil','textiles','Ikat Table Runner','Double-ikat cotton runner, natural dyes.',42.00,20,'["products/tex-001/main.jpg"]')`)

	tx.MustExec(`INSERT INTO stories(id,product_id,artisan,region,process,image) VALUES
	  ('st-001','cer-001','Mira Devi','Rajasthan','Thrown on a kick wheel from local river clay, sun-dried for a week, then fired in a wood kiln.','stories/st-001.jpg'),
	  ('st-002','tex-001','Anil Kumar','Odisha','Warp and weft are tie-dyed before weaving so the pattern emerges on the loom.','stories/st-002.jpg')`)

	return tx.Commit()
}

// seedAccounts ensures two shoppers and one admin exist (idempotent).
func seedAccounts(db *sqlx.DB) error {
	type a struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) a {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return a{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	accounts := []a{
		mk("u-asha", "asha@craftroots.test", "Asha", "user", "Passw0rd!"),
		mk("u-ravi", "ravi@craftroots.test", "Ravi", "user", "Passw0rd!"),
		mk("u-admin", "admin@craftroots.test", "Admin", "admin", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range accounts {
		if _, err := tx.Exec(`
			INSERT INTO accounts(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
