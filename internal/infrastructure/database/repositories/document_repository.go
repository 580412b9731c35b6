package repositories

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"

	"github.com/jmoiron/sqlx"
)

type documentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) repositories.DocumentRepository {
	return &documentRepository{db: db}
}

type metadataJSON map[string]string

func (m metadataJSON) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *metadataJSON) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}
}

type documentRow struct {
	ID          string       `db:"id"`
	WorkspaceID string       `db:"workspace_id"`
	FilePath    string       `db:"file_path"`
	FileName    string       `db:"file_name"`
	PublicURL   string       `db:"public_url"`
	Metadata    metadataJSON `db:"metadata"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}

func (row *documentRow) toEntity() *entities.Document {
	metadata := map[string]string(row.Metadata)
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &entities.Document{
		ID:          row.ID,
		WorkspaceID: row.WorkspaceID,
		FilePath:    row.FilePath,
		FileName:    row.FileName,
		PublicURL:   row.PublicURL,
		Metadata:    metadata,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

const documentColumns = `id, workspace_id, file_path, file_name, public_url, metadata, created_at, updated_at`

func (r *documentRepository) Create(ctx context.Context, doc *entities.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.WorkspaceID, doc.FilePath, doc.FileName, doc.PublicURL,
		metadataJSON(doc.Metadata), doc.CreatedAt, doc.UpdatedAt,
	)
	return err
}

func (r *documentRepository) GetByID(ctx context.Context, id string) (*entities.Document, error) {
	var row documentRow
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *documentRepository) GetByPublicURL(ctx context.Context, publicURL string) (*entities.Document, error) {
	var row documentRow
	query := `SELECT ` + documentColumns + ` FROM documents WHERE public_url = $1`
	if err := r.db.GetContext(ctx, &row, query, publicURL); err != nil {
		return nil, err
	}
	return row.toEntity(), nil
}

func (r *documentRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*entities.Document, error) {
	var rows []documentRow
	query := `SELECT ` + documentColumns + ` FROM documents WHERE workspace_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, workspaceID); err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *documentRepository) Search(ctx context.Context, filter *repositories.DocumentFilter) ([]*entities.Document, error) {
	like := "%" + filter.Query + "%"

	query, args, err := sqlx.In(`SELECT `+documentColumns+` FROM documents
		WHERE workspace_id IN (?)
		AND (file_name ILIKE ? OR file_path ILIKE ? OR metadata::text ILIKE ?)
		ORDER BY created_at DESC
		LIMIT ?`,
		filter.WorkspaceIDs, like, like, like, filter.Limit,
	)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var rows []documentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

func (r *documentRepository) Update(ctx context.Context, doc *entities.Document) error {
	query := `UPDATE documents SET file_path = $1, file_name = $2, metadata = $3, updated_at = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query,
		doc.FilePath, doc.FileName, metadataJSON(doc.Metadata), doc.UpdatedAt, doc.ID,
	)
	return err
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	return err
}

func toEntities(rows []documentRow) []*entities.Document {
	docs := make([]*entities.Document, len(rows))
	for i := range rows {
		docs[i] = rows[i].toEntity()
	}
	return docs
}
