package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"gridrealm/models"
)

// JSONStore handles episode persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Episodes map[string]*models.Episode `json:"episodes"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Episodes: make(map[string]*models.Episode),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %v", err)
		}
	} else {
		// Create file if it doesn't exist
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %v", err)
		}
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(file, js.data)
}

// saveToFile saves data to the JSON file
func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveEpisode saves an episode to the store
func (js *JSONStore) SaveEpisode(episode *models.Episode) error {
	js.mutex.Lock()
	js.data.Episodes[episode.ID] = episode
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadEpisode loads an episode by ID
func (js *JSONStore) LoadEpisode(episodeID string) (*models.Episode, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	episode, exists := js.data.Episodes[episodeID]
	if !exists {
		return nil, fmt.Errorf("episode with ID %s not found", episodeID)
	}

	return episode, nil
}

// ListEpisodes returns the most recent episodes, newest first
func (js *JSONStore) ListEpisodes(limit int) ([]*models.Episode, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	episodes := make([]*models.Episode, 0, len(js.data.Episodes))
	for _, episode := range js.data.Episodes {
		episodes = append(episodes, episode)
	}
	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].CreatedAt.After(episodes[j].CreatedAt)
	})
	if limit > 0 && len(episodes) > limit {
		episodes = episodes[:limit]
	}
	return episodes, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}
