package persistence

import (
	"path/filepath"
	"testing"

	"gridrealm/models"
)

func TestReplayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "episode.replay")
	header := ReplayHeader{EpisodeID: "ep-1", EnvName: "Empty-5x5", Seed: 42}

	writer, err := NewReplayWriter(path, header)
	if err != nil {
		t.Fatal(err)
	}
	records := []models.StepRecord{
		{Step: 1, Action: "MOVE_FORWARD", Reward: 0, AgentPos: models.Position{Row: 1, Col: 2}, Orientation: "east"},
		{Step: 2, Action: "TURN_RIGHT", Reward: 0, AgentPos: models.Position{Row: 1, Col: 2}, Orientation: "south"},
		{Step: 3, Action: "MOVE_FORWARD", Reward: 1, Done: true, AgentPos: models.Position{Row: 2, Col: 2}, Orientation: "south"},
	}
	for _, record := range records {
		if err := writer.Append(record); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	gotHeader, gotRecords, err := ReadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	if gotHeader.EpisodeID != "ep-1" || gotHeader.EnvName != "Empty-5x5" || gotHeader.Seed != 42 {
		t.Errorf("header = %+v", gotHeader)
	}
	if gotHeader.Version != 1 {
		t.Errorf("version = %d", gotHeader.Version)
	}
	if len(gotRecords) != len(records) {
		t.Fatalf("read %d records, want %d", len(gotRecords), len(records))
	}
	for i := range records {
		if gotRecords[i] != records[i] {
			t.Errorf("record %d = %+v, want %+v", i, gotRecords[i], records[i])
		}
	}

	last := gotRecords[len(gotRecords)-1]
	if !last.Done || last.Reward != 1 {
		t.Errorf("final record = %+v", last)
	}
}

func TestReplayEmptyEpisode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.replay")
	writer, err := NewReplayWriter(path, ReplayHeader{EpisodeID: "ep-2"})
	if err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	header, records, err := ReadReplay(path)
	if err != nil {
		t.Fatal(err)
	}
	if header.EpisodeID != "ep-2" || len(records) != 0 {
		t.Errorf("header=%+v records=%v", header, records)
	}
}

func TestReadReplayMissingFile(t *testing.T) {
	if _, _, err := ReadReplay(filepath.Join(t.TempDir(), "nope.replay")); err == nil {
		t.Error("expected error for missing file")
	}
}
