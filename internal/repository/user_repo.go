package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-api/internal/domain"
)

// ErrNotFound se devuelve cuando la fila buscada no existe.
var ErrNotFound = errors.New("not found")

// UserRepository define el contrato de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	// UpdateVerificationCode reemplaza el hash del OTP pendiente.
	UpdateVerificationCode(ctx context.Context, id, codeHash string) error
	// ClearVerificationCode borra el hash solo si sigue siendo expectedHash.
	// Devuelve true si esta llamada fue la que lo borro.
	ClearVerificationCode(ctx context.Context, id, expectedHash string) (bool, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, email, verification_code, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.VerificationCodeHash,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	const query = `
		SELECT id, email, verification_code, created_at
		FROM users
		WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT id, email, verification_code, created_at
		FROM users
		WHERE email = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) UpdateVerificationCode(ctx context.Context, id, codeHash string) error {
	const query = `
		UPDATE users SET verification_code = $2
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, codeHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgUserRepository) ClearVerificationCode(ctx context.Context, id, expectedHash string) (bool, error) {
	// Una sola sentencia: dos canjes concurrentes no pueden ver el codigo
	// pendiente despues de que uno lo haya borrado.
	const query = `
		UPDATE users SET verification_code = NULL
		WHERE id = $1 AND verification_code = $2
	`
	tag, err := r.pool.Exec(ctx, query, id, expectedHash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.VerificationCodeHash,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
