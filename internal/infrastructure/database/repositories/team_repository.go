package repositories

import (
	"context"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type teamRepository struct {
	pool *pgxpool.Pool
}

func NewTeamRepository(pool *pgxpool.Pool) repositories.TeamRepository {
	return &teamRepository{pool: pool}
}

func (r *teamRepository) Create(ctx context.Context, team *entities.Team) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `INSERT INTO teams (id, name, description, created_at) VALUES ($1, $2, $3, $4)`
		if _, err := tx.Exec(ctx, query, team.ID, team.Name, team.Description, team.CreatedAt); err != nil {
			return err
		}

		for _, userID := range team.UserIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO team_users (team_id, user_id) VALUES ($1, $2)`,
				team.ID, userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*entities.Team, error) {
	query := `SELECT id, name, description, created_at FROM teams WHERE id = $1`

	var team entities.Team
	row := r.pool.QueryRow(ctx, query, id)

	err := row.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt)
	if err != nil {
		return nil, err
	}

	team.UserIDs, err = r.userIDs(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) List(ctx context.Context) ([]*entities.Team, error) {
	query := `SELECT id, name, description, created_at FROM teams ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*entities.Team
	for rows.Next() {
		var team entities.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Description, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, &team)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, team := range teams {
		if team.UserIDs, err = r.userIDs(ctx, team.ID); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (r *teamRepository) Update(ctx context.Context, team *entities.Team) error {
	query := `UPDATE teams SET name = $1, description = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, team.Name, team.Description, team.ID)
	return err
}

func (r *teamRepository) SetUserIDs(ctx context.Context, teamID string, userIDs []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_users WHERE team_id = $1`, teamID); err != nil {
			return err
		}
		for _, userID := range userIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO team_users (team_id, user_id) VALUES ($1, $2)`,
				teamID, userID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *teamRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_users WHERE team_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM workspace_teams WHERE team_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
		return err
	})
}

func (r *teamRepository) userIDs(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id FROM team_users WHERE team_id = $1`, teamID)
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
