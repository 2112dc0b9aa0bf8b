package persistence

import "gridrealm/models"

// Storage defines the interface for episode persistence
type Storage interface {
	SaveEpisode(episode *models.Episode) error
	LoadEpisode(episodeID string) (*models.Episode, error)
	ListEpisodes(limit int) ([]*models.Episode, error)
	Close() error
}
