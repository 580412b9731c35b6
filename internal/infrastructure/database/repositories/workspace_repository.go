package repositories

import (
	"context"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type workspaceRepository struct {
	pool *pgxpool.Pool
}

func NewWorkspaceRepository(pool *pgxpool.Pool) repositories.WorkspaceRepository {
	return &workspaceRepository{pool: pool}
}

func (r *workspaceRepository) Create(ctx context.Context, ws *entities.Workspace) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `INSERT INTO workspaces (id, name, description, created_at) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, query, ws.ID, ws.Name, ws.Description, ws.CreatedAt); err != nil {
			return err
		}

		for _, metaID := range ws.MetadataIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO workspace_metadata (workspace_id, metadata_id) VALUES ($1, $2)`,
				ws.ID, metaID,
			); err != nil {
				return err
			}
		}
		for _, teamID := range ws.TeamIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO workspace_teams (workspace_id, team_id) VALUES ($1, $2)`,
				ws.ID, teamID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workspaceRepository) GetByID(ctx context.Context, id string) (*entities.Workspace, error) {
	query := `SELECT id, name, description, created_at FROM workspaces WHERE id = $1`

	var ws entities.Workspace
	row := r.pool.QueryRow(ctx, query, id)

	if err := row.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.CreatedAt); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *workspaceRepository) List(ctx context.Context) ([]*entities.Workspace, error) {
	query := `SELECT id, name, description, created_at FROM workspaces ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *workspaceRepository) ListByTeamIDs(ctx context.Context, teamIDs []string) ([]*entities.Workspace, error) {
	query := `SELECT DISTINCT w.id, w.name, w.description, w.created_at
		FROM workspaces w
		JOIN workspace_teams wt ON wt.workspace_id = w.id
		WHERE wt.team_id = ANY($1)
		ORDER BY w.created_at DESC`
	return r.list(ctx, query, teamIDs)
}

func (r *workspaceRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Workspace, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workspaces []*entities.Workspace
	for rows.Next() {
		var ws entities.Workspace
		if err := rows.Scan(&ws.ID, &ws.Name, &ws.Description, &ws.CreatedAt); err != nil {
			return nil, err
		}
		workspaces = append(workspaces, &ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ws := range workspaces {
		if err := r.loadRelations(ctx, ws); err != nil {
			return nil, err
		}
	}
	return workspaces, nil
}

func (r *workspaceRepository) Update(ctx context.Context, ws *entities.Workspace) error {
	query := `UPDATE workspaces SET name = $1, description = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, ws.Name, ws.Description, ws.ID)
	return err
}

func (r *workspaceRepository) SetMetadataIDs(ctx context.Context, workspaceID string, metadataIDs []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workspace_metadata WHERE workspace_id = $1`, workspaceID); err != nil {
			return err
		}
		for _, metaID := range metadataIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO workspace_metadata (workspace_id, metadata_id) VALUES ($1, $2)`,
				workspaceID, metaID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workspaceRepository) SetTeamIDs(ctx context.Context, workspaceID string, teamIDs []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM workspace_teams WHERE workspace_id = $1`, workspaceID); err != nil {
			return err
		}
		for _, teamID := range teamIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO workspace_teams (workspace_id, team_id) VALUES ($1, $2)`,
				workspaceID, teamID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *workspaceRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE workspace_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workspace_metadata WHERE workspace_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workspace_teams WHERE workspace_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
		return err
	})
}

func (r *workspaceRepository) loadRelations(ctx context.Context, ws *entities.Workspace) error {
	var err error
	if ws.MetadataIDs, err = r.relatedIDs(ctx,
		`SELECT metadata_id FROM workspace_metadata WHERE workspace_id = $1`, ws.ID); err != nil {
		return err
	}
	ws.TeamIDs, err = r.relatedIDs(ctx,
		`SELECT team_id FROM workspace_teams WHERE workspace_id = $1`, ws.ID)
	return err
}

func (r *workspaceRepository) relatedIDs(ctx context.Context, query, workspaceID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
