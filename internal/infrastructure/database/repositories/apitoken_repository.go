package repositories

import (
	"context"
	"encoding/json"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type apiTokenRepository struct {
	pool *pgxpool.Pool
}

func NewAPITokenRepository(pool *pgxpool.Pool) repositories.APITokenRepository {
	return &apiTokenRepository{pool: pool}
}

const apiTokenColumns = `id, name, description, token_hash, token_preview, permissions, created_by, created_at, last_used`

func (r *apiTokenRepository) Create(ctx context.Context, token *entities.APIToken) error {
	permissions, err := json.Marshal(token.Permissions)
	if err != nil {
		return err
	}

	query := `INSERT INTO api_tokens (id, name, description, token_hash, token_preview, permissions, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.pool.Exec(ctx, query,
		token.ID, token.Name, token.Description, token.TokenHash,
		token.TokenPreview, permissions, token.CreatedBy, token.CreatedAt,
	)
	return err
}

func (r *apiTokenRepository) GetByID(ctx context.Context, id string) (*entities.APIToken, error) {
	return scanAPIToken(r.pool.QueryRow(ctx,
		`SELECT `+apiTokenColumns+` FROM api_tokens WHERE id = $1`, id))
}

func (r *apiTokenRepository) GetByName(ctx context.Context, name string) (*entities.APIToken, error) {
	return scanAPIToken(r.pool.QueryRow(ctx,
		`SELECT `+apiTokenColumns+` FROM api_tokens WHERE name = $1`, name))
}

func (r *apiTokenRepository) GetByHash(ctx context.Context, hash string) (*entities.APIToken, error) {
	return scanAPIToken(r.pool.QueryRow(ctx,
		`SELECT `+apiTokenColumns+` FROM api_tokens WHERE token_hash = $1`, hash))
}

func (r *apiTokenRepository) List(ctx context.Context) ([]*entities.APIToken, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+apiTokenColumns+` FROM api_tokens ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*entities.APIToken
	for rows.Next() {
		token, err := scanAPIToken(rows)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// Update persists the mutable fields only; permissions and the secret
// commitment are written once at creation.
func (r *apiTokenRepository) Update(ctx context.Context, token *entities.APIToken) error {
	query := `UPDATE api_tokens SET name = $1, description = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, token.Name, token.Description, token.ID)
	return err
}

func (r *apiTokenRepository) TouchLastUsed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE api_tokens SET last_used = NOW() WHERE id = $1`, id)
	return err
}

func (r *apiTokenRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM api_tokens WHERE id = $1`, id)
	return err
}

func scanAPIToken(row pgx.Row) (*entities.APIToken, error) {
	var token entities.APIToken
	var permissions []byte

	err := row.Scan(
		&token.ID, &token.Name, &token.Description, &token.TokenHash,
		&token.TokenPreview, &permissions, &token.CreatedBy, &token.CreatedAt, &token.LastUsed,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(permissions, &token.Permissions); err != nil {
		return nil, err
	}
	return &token, nil
}
