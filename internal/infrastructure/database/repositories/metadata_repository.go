package repositories

import (
	"context"
	"encoding/json"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type metadataRepository struct {
	pool *pgxpool.Pool
}

func NewMetadataRepository(pool *pgxpool.Pool) repositories.MetadataRepository {
	return &metadataRepository{pool: pool}
}

func (r *metadataRepository) Create(ctx context.Context, def *entities.MetadataDefinition) error {
	options, err := encodeOptions(def.Options)
	if err != nil {
		return err
	}

	query := `INSERT INTO metadata_definitions (id, name, field_type, visible, options, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = r.pool.Exec(ctx, query, def.ID, def.Name, def.FieldType, def.Visible, options, def.CreatedAt)
	return err
}

func (r *metadataRepository) GetByID(ctx context.Context, id string) (*entities.MetadataDefinition, error) {
	query := `SELECT id, name, field_type, visible, options, created_at FROM metadata_definitions WHERE id = $1`
	return scanDefinition(r.pool.QueryRow(ctx, query, id))
}

func (r *metadataRepository) List(ctx context.Context) ([]*entities.MetadataDefinition, error) {
	query := `SELECT id, name, field_type, visible, options, created_at FROM metadata_definitions ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []*entities.MetadataDefinition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (r *metadataRepository) Update(ctx context.Context, def *entities.MetadataDefinition) error {
	options, err := encodeOptions(def.Options)
	if err != nil {
		return err
	}

	query := `UPDATE metadata_definitions SET name = $1, field_type = $2, visible = $3, options = $4 WHERE id = $5`
	_, err = r.pool.Exec(ctx, query, def.Name, def.FieldType, def.Visible, options, def.ID)
	return err
}

func (r *metadataRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workspace_metadata WHERE metadata_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM metadata_definitions WHERE id = $1`, id)
		return err
	})
}

func encodeOptions(options []string) (*string, error) {
	if options == nil {
		return nil, nil
	}
	data, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}
	encoded := string(data)
	return &encoded, nil
}

func scanDefinition(row pgx.Row) (*entities.MetadataDefinition, error) {
	var def entities.MetadataDefinition
	var options *string

	if err := row.Scan(&def.ID, &def.Name, &def.FieldType, &def.Visible, &options, &def.CreatedAt); err != nil {
		return nil, err
	}

	if options != nil {
		if err := json.Unmarshal([]byte(*options), &def.Options); err != nil {
			return nil, err
		}
	}
	return &def, nil
}
