package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"careerquest/internal/database"
	"careerquest/internal/domain/user"

	"github.com/google/uuid"
)

// UserRepository keeps its hot statements prepared for the life of the
// process; auth sits on every request path.
type UserRepository struct {
	stmtCreate      *sql.Stmt
	stmtGetByID     *sql.Stmt
	stmtGetByEmail  *sql.Stmt
	stmtExistsEmail *sql.Stmt
}

func NewUserRepository(db database.DB) (*UserRepository, error) {
	sqldb := db.SQLDB()
	if sqldb == nil {
		return nil, fmt.Errorf("nil sql db")
	}

	r := &UserRepository{}

	var err error
	r.stmtCreate, err = sqldb.PrepareContext(
		context.Background(),
		`INSERT INTO users (id, email, password_hash, first_name, last_name) VALUES ($1, $2, $3, $4, $5)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByID, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at, updated_at
		 FROM users WHERE id = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtGetByEmail, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT id, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), created_at, updated_at
		 FROM users WHERE email = $1`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	r.stmtExistsEmail, err = sqldb.PrepareContext(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
	)
	if err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExistsEmail)

	return firstErr
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName)
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsEmail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanUser(row *sql.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
