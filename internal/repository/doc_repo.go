package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-api/internal/domain"
)

// DocRepository define el contrato de persistencia para documentos. Todas las
// operaciones se acotan al userID duenio; un documento ajeno es ErrNotFound.
type DocRepository interface {
	Create(ctx context.Context, doc domain.Doc) error
	List(ctx context.Context, userID string) ([]domain.DocSummary, error)
	Search(ctx context.Context, userID, query string) ([]domain.DocSummary, error)
	Get(ctx context.Context, userID, id string) (domain.Doc, error)
	Update(ctx context.Context, userID, id string, input domain.DocInput) (domain.Doc, error)
	Delete(ctx context.Context, userID, id string) (domain.Doc, error)
}

type PgDocRepository struct {
	pool *pgxpool.Pool
}

func NewPgDocRepository(pool *pgxpool.Pool) *PgDocRepository {
	return &PgDocRepository{pool: pool}
}

const docColumns = `id, user_id, title, content_text, content_json, content_html, created_at, updated_at`

func (r *PgDocRepository) Create(ctx context.Context, doc domain.Doc) error {
	const query = `
		INSERT INTO docs (id, user_id, title, content_text, content_json, content_html, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.UserID,
		doc.Title,
		doc.ContentText,
		jsonOrNull(doc.ContentJSON),
		doc.ContentHTML,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

func (r *PgDocRepository) List(ctx context.Context, userID string) ([]domain.DocSummary, error) {
	const query = `
		SELECT id, title
		FROM docs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]domain.DocSummary, 0)
	for rows.Next() {
		var d domain.DocSummary
		if err := rows.Scan(&d.ID, &d.Title); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *PgDocRepository) Search(ctx context.Context, userID, search string) ([]domain.DocSummary, error) {
	const query = `
		SELECT id, title, content_text
		FROM docs
		WHERE user_id = $1
		  AND (to_tsvector('simple', title) || to_tsvector('simple', content_text))
		      @@ plainto_tsquery('simple', $2)
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]domain.DocSummary, 0)
	for rows.Next() {
		var (
			d    domain.DocSummary
			text string
		)
		if err := rows.Scan(&d.ID, &d.Title, &text); err != nil {
			return nil, err
		}
		d.ContentText = &text
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *PgDocRepository) Get(ctx context.Context, userID, id string) (domain.Doc, error) {
	query := `SELECT ` + docColumns + ` FROM docs WHERE user_id = $1 AND id = $2`
	return scanDoc(r.pool.QueryRow(ctx, query, userID, id))
}

func (r *PgDocRepository) Update(ctx context.Context, userID, id string, input domain.DocInput) (domain.Doc, error) {
	query := `
		UPDATE docs
		SET title = $3, content_text = $4, content_json = $5, content_html = $6, updated_at = $7
		WHERE user_id = $1 AND id = $2
		RETURNING ` + docColumns
	return scanDoc(r.pool.QueryRow(ctx, query,
		userID,
		id,
		input.Title,
		input.ContentText,
		jsonOrNull(input.ContentJSON),
		input.ContentHTML,
		time.Now().UTC(),
	))
}

func (r *PgDocRepository) Delete(ctx context.Context, userID, id string) (domain.Doc, error) {
	query := `DELETE FROM docs WHERE user_id = $1 AND id = $2 RETURNING ` + docColumns
	return scanDoc(r.pool.QueryRow(ctx, query, userID, id))
}

func scanDoc(row pgx.Row) (domain.Doc, error) {
	var (
		d           domain.Doc
		contentJSON []byte
	)
	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Title,
		&d.ContentText,
		&contentJSON,
		&d.ContentHTML,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Doc{}, ErrNotFound
	}
	if err != nil {
		return domain.Doc{}, err
	}
	d.ContentJSON = contentJSON
	return d, nil
}

// jsonOrNull evita insertar un jsonb vacio, que Postgres rechaza.
func jsonOrNull(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
