package persistence

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"gridrealm/models"
)

// SQLiteStore persists episodes in a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite storage manager
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (ss *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS episodes (
		id TEXT PRIMARY KEY,
		env_name TEXT NOT NULL,
		seed INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		total_reward REAL NOT NULL,
		terminated INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := ss.db.Exec(schema)
	return err
}

// SaveEpisode saves an episode to the database
func (ss *SQLiteStore) SaveEpisode(episode *models.Episode) error {
	query := `
	INSERT INTO episodes (id, env_name, seed, steps, total_reward, terminated)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (id)
	DO UPDATE SET
		steps = excluded.steps,
		total_reward = excluded.total_reward,
		terminated = excluded.terminated,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := ss.db.Exec(query,
		episode.ID, episode.EnvName, episode.Seed,
		episode.Steps, episode.TotalReward, episode.Terminated)

	if err != nil {
		return fmt.Errorf("failed to save episode: %v", err)
	}

	return nil
}

// LoadEpisode loads an episode from the database by ID
func (ss *SQLiteStore) LoadEpisode(episodeID string) (*models.Episode, error) {
	query := `SELECT id, env_name, seed, steps, total_reward, terminated, created_at, updated_at FROM episodes WHERE id = ?`

	var episode models.Episode
	err := ss.db.QueryRow(query, episodeID).Scan(
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
func (ss *SQLiteStore) ListEpisodes(limit int) ([]*models.Episode, error) {
	query := `SELECT id, env_name, seed, steps, total_reward, terminated, created_at, updated_at FROM episodes ORDER BY created_at DESC LIMIT ?`

	rows, err := ss.db.Query(query, limit)
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
func (ss *SQLiteStore) Close() error {
	return ss.db.Close()
}
