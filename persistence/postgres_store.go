package persistence

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"gridrealm/models"
)

// PostgresStore persists episodes using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id TEXT PRIMARY KEY,
		env_name TEXT NOT NULL,
		seed BIGINT NOT NULL,
		steps INTEGER NOT NULL,
		total_reward DOUBLE PRECISION NOT NULL,
		terminated BOOLEAN NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveEpisode saves an episode to the database
func (ps *PostgresStore) SaveEpisode(episode *models.Episode) error {
	query := `
	INSERT INTO episodes (id, env_name, seed, steps, total_reward, terminated)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id)
	DO UPDATE SET
		steps = $4, total_reward = $5, terminated = $6,
		updated_at = NOW()
	`

	_, err := ps.db.Exec(query,
		episode.ID, episode.EnvName, episode.Seed,
		episode.Steps, episode.TotalReward, episode.Terminated)

	if err != nil {
		return fmt.Errorf("failed to save episode: %v", err)
	}

	return nil
}

// LoadEpisode loads an episode from the database by ID
func (ps *PostgresStore) LoadEpisode(episodeID string) (*models.Episode, error) {
	query := `SELECT id, env_name, seed, steps, total_reward, terminated, created_at, updated_at FROM episodes WHERE id = $1`

	var episode models.Episode
	err := ps.db.QueryRow(query, episodeID).Scan(
		&episode.ID, &episode.EnvName, &episode.Seed,
		&episode.Steps, &episode.TotalReward, &episode.Terminated,
		&episode.CreatedAt, &episode.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("episode with ID %s not found", episodeID)
		}
		return nil, fmt.Errorf("failed to load episode: %v", err)
	}

	return &episode, nil
}

// ListEpisodes returns the most recent episodes, newest first
func (ps *PostgresStore) ListEpisodes(limit int) ([]*models.Episode, error) {
	query := `SELECT id, env_name, seed, steps, total_reward, terminated, created_at, updated_at FROM episodes ORDER BY created_at DESC LIMIT $1`

	rows, err := ps.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %v", err)
	}
	defer rows.Close()

	var episodes []*models.Episode
	for rows.Next() {
		var episode models.Episode
		if err := rows.Scan(
			&episode.ID, &episode.EnvName, &episode.Seed,
			&episode.Steps, &episode.TotalReward, &episode.Terminated,
			&episode.CreatedAt, &episode.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan episode: %v", err)
		}
		episodes = append(episodes, &episode)
	}
	return episodes, rows.Err()
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
