package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inamate/inamate/editor-go/internal/db"
)

// UserRecord is a stored user including the password hash.
type UserRecord struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

// Users persists user accounts.
type Users interface {
	CreateUser(ctx context.Context, u UserRecord) (UserRecord, error)
	UserByEmail(ctx context.Context, email string) (UserRecord, error)
	UserByID(ctx context.Context, id string) (UserRecord, error)
}

var (
	errNoUser    = errors.New("user not found")
	errDuplicate = errors.New("duplicate user")
)

// PGUsers stores users in Postgres.
type PGUsers struct {
	db db.DBTX
}

func NewPGUsers(conn db.DBTX) *PGUsers {
	return &PGUsers{db: conn}
}

const userColumns = `id, email, password, display_name`

func (s *PGUsers) CreateUser(ctx context.Context, u UserRecord) (UserRecord, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name) VALUES ($1, $2, $3, $4) RETURNING `+userColumns,
		u.ID, u.Email, u.Password, u.DisplayName)
	out, err := scanUser(row)
	if isDuplicateKeyError(err) {
		return UserRecord{}, errDuplicate
	}
	return out, err
}

func (s *PGUsers) UserByEmail(ctx context.Context, email string) (UserRecord, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *PGUsers) UserByID(ctx context.Context, id string) (UserRecord, error) {
	return scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func scanUser(row pgx.Row) (UserRecord, error) {
	var u UserRecord
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return UserRecord{}, errNoUser
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
