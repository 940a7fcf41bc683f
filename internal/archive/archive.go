/*
Package archive keeps a dated JSON copy of each delivered payload so a day's delivery can be
inspected or replayed by hand.
*/
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/shanehull/birthdaybot/internal/types"
)

const (
	archiveDirName = "birthdaybot"
	filePrefix     = "birthdays_"
	dateLayout     = "2006-01-02"
)

var ErrNotArchived = errors.New("no archived payload for date")

type Store struct {
	dir      string
	location *time.Location
	logger   *zap.Logger
	mutex    sync.Mutex
}

// NewStore creates the archive directory. An empty dir uses a folder under os.TempDir();
// an empty tzName uses the local zone.
func NewStore(dir, tzName string, logger *zap.Logger) (*Store, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), archiveDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", dir, err)
	}

	loc := time.Local
	if tzName != "" {
		l, err := time.LoadLocation(tzName)
		if err != nil {
			return nil, fmt.Errorf("invalid time zone name '%s': %w", tzName, err)
		}
		loc = l
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, location: loc, logger: logger}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// PathFor returns the archive file for the day containing t.
func (s *Store) PathFor(t time.Time) string {
	return s.pathForDate(t.In(s.location).Format(dateLayout))
}

func (s *Store) pathForDate(date string) string {
	return filepath.Join(s.dir, filePrefix+date+".json")
}

// Save writes p under the day it was delivered, replacing an earlier run of that day.
func (s *Store) Save(p types.RunPayload, at time.Time) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload for archive: %w", err)
	}

	path := s.PathFor(at)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to move archive file into place %s: %w", path, err)
	}

	s.logger.Info("Payload archived", zap.String("path", path), zap.Int("records", len(p.Records)))
	return path, nil
}

// Load reads the payload archived for date (YYYY-MM-DD).
func (s *Store) Load(date string) (*types.RunPayload, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid archive date %q: %w", date, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	path := s.pathForDate(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotArchived, date)
		}
		return nil, fmt.Errorf("failed to read archive file %s: %w", path, err)
	}

	var p types.RunPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal archive file %s: %w", path, err)
	}
	return &p, nil
}
