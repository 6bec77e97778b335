// Package mockapi is a local stand-in for the marketplace backend. It
// serves the same endpoints and payloads as the real API so the client
// core can be exercised in development and integration tests.
package mockapi

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"stuma/internal/domain"
)

var (
	ErrEmailTaken   = errors.New("email already registered")
	ErrBadCreds     = errors.New("invalid email or password")
	ErrUnknownToken = errors.New("invalid or expired token")
)

type User struct {
	ID      int    `db:"id"`
	Name    string `db:"name"`
	Phone   string `db:"phone"`
	Address string `db:"address"`
	Email   string `db:"email"`
	Hash    string `db:"password_hash"`
}

// Store owns the sqlite database behind the mock API.
type Store struct{ db *sqlx.DB }

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	if err := s.seedIfEmpty(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema() error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS tokens(
  token TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tokens_user ON tokens(user_id);

CREATE TABLE IF NOT EXISTS items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  items_name TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL CHECK (stock >= 0),
  price NUMERIC NOT NULL CHECK (price >= 0),
  seller_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_category ON items(LOWER(category));
CREATE INDEX IF NOT EXISTS idx_items_seller   ON items(seller_id);
`
	_, err := s.db.Exec(schema)
	return err
}

// seedIfEmpty inserts a demo seller and a handful of listings across
// the fixed categories. Idempotent; safe to run every start.
func (s *Store) seedIfEmpty() error {
	var n int
	if err := s.db.Get(&n, `SELECT COUNT(*) FROM users`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx := s.db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO users(name, phone, address, email, password_hash) VALUES
	  ('Alya','+628111111111','Dorm A','alya@campus.test',?),
	  ('Budi','+628122222222','Dorm B','budi@campus.test',?)`, string(hash), string(hash))

	tx.MustExec(`INSERT INTO items(items_name, category, description, stock, price, seller_id) VALUES
	  ('Study Desk','Furniture','Solid wood desk, minor scratches',2,500000,1),
	  ('Desk Chair','Furniture','Ergonomic chair',5,150000,1),
	  ('Campus Hoodie','Clothes','Size L, worn twice',3,90000,2),
	  ('Notebook Pack','Stationery','5 ruled notebooks',10,25000,2),
	  ('USB Lamp','Electronic','Clip-on reading lamp',4,35000,1)`)

	return tx.Commit()
}

func (s *Store) CreateUser(req domain.RegisterRequest) error {
	if _, err := s.UserByEmail(req.Email); err == nil {
		return ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO users(name, phone, address, email, password_hash) VALUES(?,?,?,?,?)`,
		req.Name, req.Phone, req.Address, req.Email, string(hash))
	return err
}

func (s *Store) UserByEmail(email string) (User, error) {
	var u User
	err := s.db.Get(&u, `SELECT id, name, phone, address, email, password_hash FROM users WHERE LOWER(email)=LOWER(?)`, email)
	return u, err
}

// Authenticate verifies the credentials and issues a bearer token.
func (s *Store) Authenticate(email, password, token string) error {
	u, err := s.UserByEmail(email)
	if err != nil {
		return ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return ErrBadCreds
	}
	_, err = s.db.Exec(`INSERT INTO tokens(token, user_id) VALUES(?,?)`, token, u.ID)
	return err
}

func (s *Store) UserByToken(token string) (User, error) {
	var u User
	err := s.db.Get(&u, `
	  SELECT u.id, u.name, u.phone, u.address, u.email, u.password_hash
	  FROM tokens t JOIN users u ON u.id = t.user_id
	  WHERE t.token = ?`, token)
	if err == sql.ErrNoRows {
		return User{}, ErrUnknownToken
	}
	return u, err
}

func (s *Store) Items() ([]domain.Item, error) {
	out := []domain.Item{}
	err := s.db.Select(&out, `
	  SELECT i.id, i.items_name, i.category, i.description, i.stock, i.price,
	         u.name AS seller_name, i.created_at, COALESCE(i.updated_at,'') AS updated_at
	  FROM items i JOIN users u ON u.id = i.seller_id
	  ORDER BY i.created_at DESC, i.id DESC
	`)
	return out, err
}

func (s *Store) InsertItem(sellerID int, req domain.SellRequest) error {
	_, err := s.db.Exec(`
	  INSERT INTO items(items_name, category, description, stock, price, seller_id)
	  VALUES(?,?,?,?,?,?)`,
		req.Name, req.Category, req.Description, req.Stock, req.Price, sellerID)
	return err
}

func (s *Store) UpdateProfile(userID int, req domain.UpdateProfileRequest) error {
	_, err := s.db.Exec(`UPDATE users SET name=?, phone=?, address=?, updated_at=? WHERE id=?`,
		req.Name, req.Phone, req.Address, time.Now().UTC().Format(time.RFC3339), userID)
	return err
}

// ChangePassword swaps the hash after verifying the old password.
func (s *Store) ChangePassword(userID int, oldPassword, newPassword string) error {
	var hash string
	if err := s.db.Get(&hash, `SELECT password_hash FROM users WHERE id=?`, userID); err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return ErrBadCreds
	}
	next, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`UPDATE users SET password_hash=?, updated_at=? WHERE id=?`,
		string(next), time.Now().UTC().Format(time.RFC3339), userID)
	return err
}
