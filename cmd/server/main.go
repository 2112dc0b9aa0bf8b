package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"gridrealm/handlers"
	"gridrealm/persistence"
	"gridrealm/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development
		return true
	},
}

func main() {
	// Local overrides live in .env; absence is fine.
	_ = godotenv.Load()

	// Initialize episode storage
	dbType := os.Getenv("DB_TYPE")
	var db persistence.Storage
	var err error

	switch dbType {
	case "postgres":
		dbConnectionString := os.Getenv("DATABASE_URL")
		if dbConnectionString == "" {
			dbConnectionString = "host=localhost user=gridrealm password=gridrealm dbname=gridrealm sslmode=disable"
		}
		db, err = persistence.NewPostgresStore(dbConnectionString)
		log.Println("Using PostgreSQL persistence")
	case "sqlite":
		dbFile := os.Getenv("DB_FILE")
		if dbFile == "" {
			dbFile = "episodes.db"
		}
		db, err = persistence.NewSQLiteStore(dbFile)
		log.Println("Using SQLite persistence")
	default:
		// Default to JSON store
		dbFile := os.Getenv("DB_FILE")
		if dbFile == "" {
			dbFile = "episodes.json"
		}
		db, err = persistence.NewJSONStore(dbFile)
		log.Println("Using JSON persistence")
	}

	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	replayDir := os.Getenv("REPLAY_DIR")
	if replayDir != "" {
		if err := os.MkdirAll(replayDir, 0755); err != nil {
			log.Fatalf("Failed to create replay directory: %v", err)
		}
		log.Printf("Recording episode replays to %s", replayDir)
	}

	// Initialize services
	episodeService := services.NewEpisodeService(db)
	sessionManager := handlers.NewSessionManager()

	// Set up HTTP routes
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		// Handle the session connection
		handlers.HandleSessionConnection(conn, episodeService, sessionManager, replayDir)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}
