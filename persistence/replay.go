package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"

	"gridrealm/models"
)

// ReplayHeader opens every replay file and identifies its episode
type ReplayHeader struct {
	Version   int    `json:"version"`
	EpisodeID string `json:"episode_id"`
	EnvName   string `json:"env_name"`
	Seed      int64  `json:"seed"`
}

const replayVersion = 1

// ReplayWriter streams the step records of one episode into a
// zstd-compressed file, one JSON document per line
type ReplayWriter struct {
	file *os.File
	zw   *zstd.Encoder
	buf  *bufio.Writer
}

// NewReplayWriter creates a replay file and writes its header
func NewReplayWriter(path string, header ReplayHeader) (*ReplayWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create replay file: %v", err)
	}
	zw, err := zstd.NewWriter(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open zstd writer: %v", err)
	}
	w := &ReplayWriter{file: file, zw: zw, buf: bufio.NewWriter(zw)}

	header.Version = replayVersion
	if err := w.writeLine(header); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Append writes one step record to the replay
func (w *ReplayWriter) Append(record models.StepRecord) error {
	return w.writeLine(record)
}

func (w *ReplayWriter) writeLine(v interface{}) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal replay line: %v", err)
	}
	if _, err := w.buf.Write(line); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Close flushes and closes the replay file
func (w *ReplayWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.zw.Close()
		_ = w.file.Close()
		return err
	}
	if err := w.zw.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// ReadReplay loads a replay file back into its header and step records
func ReadReplay(path string) (ReplayHeader, []models.StepRecord, error) {
	var header ReplayHeader

	file, err := os.Open(path)
	if err != nil {
		return header, nil, fmt.Errorf("failed to open replay file: %v", err)
	}
	defer file.Close()

	zr, err := zstd.NewReader(file)
	if err != nil {
		return header, nil, fmt.Errorf("failed to open zstd reader: %v", err)
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return header, nil, err
		}
		return header, nil, io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
		return header, nil, fmt.Errorf("failed to parse replay header: %v", err)
	}
	if header.Version != replayVersion {
		return header, nil, fmt.Errorf("unsupported replay version %d", header.Version)
	}

	var records []models.StepRecord
	for scanner.Scan() {
		var record models.StepRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return header, nil, fmt.Errorf("failed to parse replay line: %v", err)
		}
		records = append(records, record)
	}
	return header, records, scanner.Err()
}
