package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gridrealm/config"
	"gridrealm/models"
	"gridrealm/persistence"
	"gridrealm/services"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridctl",
		Short: "gridctl inspects, validates and plays gridrealm environments.",
	}

	_ = godotenv.Load()

	rootCmd.AddCommand(presetsCmd(), validateCmd(), playCmd(), episodesCmd(), replayCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the bundled environments",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.PresetNames() {
				fmt.Println(name)
			}
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate an environment configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadFile(args[0]); err != nil {
				return err
			}
			fmt.Printf("%s is valid\n", args[0])
			return nil
		},
	}
}

func playCmd() *cobra.Command {
	var seed int64
	var configFile string

	cmd := &cobra.Command{
		Use:   "play [environment]",
		Short: "Play an environment interactively on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			var err error
			switch {
			case configFile != "":
				cfg, err = config.LoadFile(configFile)
			case len(args) == 1:
				cfg, err = config.LoadPreset(args[0])
			default:
				return fmt.Errorf("name an environment or pass --config")
			}
			if err != nil {
				return err
			}

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			env, err := services.NewEnvironment(cfg, seed)
			if err != nil {
				return err
			}
			return playLoop(env)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&configFile, "config", "", "environment config file instead of a preset name")
	return cmd
}

// keyActions maps single-key commands to actions for the play loop
var keyActions = map[string]models.Action{
	"w": models.ActionMoveForward,
	"s": models.ActionMoveBackward,
	"a": models.ActionMoveLeft,
	"d": models.ActionMoveRight,
	"q": models.ActionTurnLeft,
	"e": models.ActionTurnRight,
	"f": models.ActionActuate,
	"g": models.ActionPickNDrop,
}

func playLoop(env *services.Environment) error {
	obs, err := env.Reset()
	if err != nil {
		return err
	}
	fmt.Println(renderObservation(obs))
	fmt.Println("w/s/a/d move, q/e turn, f actuate, g pick/drop, r reset, x quit")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))
		switch input {
		case "x":
			return nil
		case "r":
			if obs, err = env.Reset(); err != nil {
				return err
			}
			fmt.Println(renderObservation(obs))
			continue
		case "":
			continue
		}

		action, ok := keyActions[input]
		if !ok {
			// Full action names work too.
			if action, err = models.ParseAction(input); err != nil {
				fmt.Println("unknown command", input)
				continue
			}
		}

		obs, reward, done, err := env.Step(action)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(renderObservation(obs))
		fmt.Printf("step %d  reward %.3f  total %.3f\n", env.StepCount(), reward, env.TotalReward())
		if done {
			fmt.Println("episode over, r to reset or x to quit")
		}
	}
	return scanner.Err()
}

func episodesCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "List recorded episodes from the configured storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStorage()
			if err != nil {
				return err
			}
			defer db.Close()

			episodes, err := services.NewEpisodeService(db).RecentEpisodes(limit)
			if err != nil {
				return err
			}
			for _, episode := range episodes {
				fmt.Printf("%s  %-24s steps=%-5d reward=%-8.3f terminated=%v\n",
					episode.ID, episode.EnvName, episode.Steps, episode.TotalReward, episode.Terminated)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum episodes to list")
	return cmd
}

// openStorage selects the episode store the same way the server does
func openStorage() (persistence.Storage, error) {
	switch os.Getenv("DB_TYPE") {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = "host=localhost user=gridrealm password=gridrealm dbname=gridrealm sslmode=disable"
		}
		return persistence.NewPostgresStore(dsn)
	case "sqlite":
		file := os.Getenv("DB_FILE")
		if file == "" {
			file = "episodes.db"
		}
		return persistence.NewSQLiteStore(file)
	default:
		file := os.Getenv("DB_FILE")
		if file == "" {
			file = "episodes.json"
		}
		return persistence.NewJSONStore(file)
	}
}

func replayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Print the step records of a recorded replay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			header, records, err := persistence.ReadReplay(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("episode %s  env %s  seed %d\n", header.EpisodeID, header.EnvName, header.Seed)
			for _, record := range records {
				fmt.Printf("%4d  %-14s reward=%-8.3f pos=(%d,%d) facing %s done=%v\n",
					record.Step, record.Action, record.Reward,
					record.AgentPos.Row, record.AgentPos.Col, record.Orientation, record.Done)
			}
			return nil
		},
	}
}

func init() {
	log.SetFlags(0)
}
