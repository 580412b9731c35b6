package repositories

import (
	"context"

	"dochub-server/internal/domain/entities"
	"dochub-server/internal/domain/repositories"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) repositories.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `INSERT INTO users (id, email, password_hash, role, first_login, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
		if _, err := tx.Exec(ctx, query,
			user.ID, user.Email, user.PasswordHash, user.Role, user.FirstLogin, user.CreatedAt,
		); err != nil {
			return err
		}

		for _, teamID := range user.TeamIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO team_users (team_id, user_id) VALUES ($1, $2)`,
				teamID, user.ID,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return r.getBy(ctx, `SELECT id, email, password_hash, role, first_login, created_at FROM users WHERE id = $1`, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getBy(ctx, `SELECT id, email, password_hash, role, first_login, created_at FROM users WHERE email = $1`, email)
}

func (r *userRepository) getBy(ctx context.Context, query string, arg any) (*entities.User, error) {
	var user entities.User
	row := r.pool.QueryRow(ctx, query, arg)

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.FirstLogin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}

	user.TeamIDs, err = r.teamIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*entities.User, error) {
	query := `SELECT id, email, password_hash, role, first_login, created_at FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		var user entities.User
		if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.FirstLogin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.TeamIDs, err = r.teamIDs(ctx, user.ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *entities.User) error {
	query := `UPDATE users SET email = $1, role = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, user.Email, user.Role, user.ID)
	return err
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string, firstLogin bool) error {
	query := `UPDATE users SET password_hash = $1, first_login = $2 WHERE id = $3`
	_, err := r.pool.Exec(ctx, query, passwordHash, firstLogin, id)
	return err
}

func (r *userRepository) SetTeamIDs(ctx context.Context, userID string, teamIDs []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_users WHERE user_id = $1`, userID); err != nil {
			return err
		}
		for _, teamID := range teamIDs {
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

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_users WHERE user_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		return err
	})
}

func (r *userRepository) teamIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT team_id FROM team_users WHERE user_id = $1`, userID)
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
