package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Snorps/better-medical-alerts/internal/config"
	"github.com/Snorps/better-medical-alerts/internal/domain/health"
	codec "github.com/Snorps/better-medical-alerts/internal/snapshot"
)

// Repository defines read access to the latest roster snapshot.
type Repository interface {
	Load(ctx context.Context) (*health.Roster, error)
}

// FileRepository reads and writes the roster snapshot as a JSON file.
type FileRepository struct {
	// path is the filesystem location of the snapshot file.
	path string
	// mu serializes file access within this process.
	mu sync.Mutex
}

// ErrNotFound is returned when the snapshot file does not exist yet.
var ErrNotFound = errors.New("snapshot not found")

// NewFileRepository creates a repository for the JSON file at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the snapshot file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads and decodes the snapshot.
func (r *FileRepository) Load(_ context.Context) (*health.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var doc structpb.Struct
	if err = protojson.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot file: %w", err)
	}

	roster, err := codec.DecodeRoster(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	return roster, nil
}

// Save encodes the roster and writes it to disk. The game normally owns the
// file; Save exists for tooling and tests.
func (r *FileRepository) Save(_ context.Context, roster *health.Roster) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := codec.EncodeRoster(roster)
	if err != nil {
		return err
	}

	marshalOptions := protojson.MarshalOptions{
		Multiline:       true,
		EmitUnpopulated: true,
	}

	data, err := marshalOptions.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	// Write then rename so a concurrent reader never sees a torn file.
	tmp := r.path + ".tmp"
	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	return nil
}
