package services

import (
	"fmt"
	"time"

	"gridrealm/models"
	"gridrealm/persistence"
)

// EpisodeService records episode results into the configured storage
// backend and serves them back
type EpisodeService struct {
	store persistence.Storage
}

// NewEpisodeService creates a new episode service
func NewEpisodeService(store persistence.Storage) *EpisodeService {
	return &EpisodeService{store: store}
}

// RecordEpisode snapshots the environment's current episode into storage.
// Calling it again for the same episode updates the stored row.
func (es *EpisodeService) RecordEpisode(envName string, env *Environment) (*models.Episode, error) {
	if env.EpisodeID() == "" {
		return nil, fmt.Errorf("environment has no active episode")
	}
	episode := &models.Episode{
		ID:          env.EpisodeID(),
		EnvName:     envName,
		Seed:        env.Seed(),
		Steps:       env.StepCount(),
		TotalReward: env.TotalReward(),
		Terminated:  env.Done(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := es.store.SaveEpisode(episode); err != nil {
		return nil, fmt.Errorf("failed to save episode: %v", err)
	}
	return episode, nil
}

// GetEpisode retrieves an episode by ID
func (es *EpisodeService) GetEpisode(episodeID string) (*models.Episode, error) {
	return es.store.LoadEpisode(episodeID)
}

// RecentEpisodes returns the most recent episodes, newest first
func (es *EpisodeService) RecentEpisodes(limit int) ([]*models.Episode, error) {
	return es.store.ListEpisodes(limit)
}
