package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/desk-planner/internal/config"
	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// Repository defines how rosters are read and written.
type Repository interface {
	Load(ctx context.Context) ([]desk.Person, error)
	Save(ctx context.Context, people []desk.Person) error
}

// FileRepository keeps a roster in a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the roster file.
	path string
	// mu serializes access to the file.
	mu sync.Mutex
}

var (
	// ErrNotFound is returned when the roster file does not exist.
	ErrNotFound = errors.New("roster not found")
	// ErrInvalid is returned when the roster fails validation.
	ErrInvalid = errors.New("invalid roster")
	// ErrDuplicateID is returned when two entries share an id.
	ErrDuplicateID = errors.New("duplicate person id")
)

// NewFileRepository creates a repository that reads and writes the roster at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the roster file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the roster from disk.
func (r *FileRepository) Load(_ context.Context) ([]desk.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read roster file: %w", err)
	}

	return Decode(contents)
}

// Save writes the people to disk in the given order.
func (r *FileRepository) Save(_ context.Context, people []desk.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := Encode(people)
	if err != nil {
		return err
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write roster file: %w", err)
	}

	return nil
}

// Decode parses and validates a YAML or JSON roster, keeping the entry order.
func Decode(contents []byte) ([]desk.Person, error) {
	var file fileRoster
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}

	if err := rosterValidate.Struct(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var (
		people = make([]desk.Person, 0, len(file.People))
		seen   = make(map[string]int, len(file.People))
	)

	for i, entry := range file.People {
		person, err := fromFilePerson(&entry)
		if err != nil {
			return nil, fmt.Errorf("%w: people[%d]: %w", ErrInvalid, i, err)
		}

		if first, ok := seen[person.ID]; ok {
			return nil, fmt.Errorf("%w: %q at people[%d] and people[%d]", ErrDuplicateID, person.ID, first, i)
		}

		seen[person.ID] = i

		people = append(people, person)
	}

	return people, nil
}

// ReadFrom decodes a roster from r, used for standard input.
func ReadFrom(r io.Reader) ([]desk.Person, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	return Decode(contents)
}

// Encode renders the people as a YAML roster.
func Encode(people []desk.Person) ([]byte, error) {
	file := fileRoster{
		People: make([]filePerson, 0, len(people)),
	}

	for i := range people {
		file.People = append(file.People, toFilePerson(&people[i]))
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("encode roster: %w", err)
	}

	return data, nil
}

// fromFilePerson converts a validated entry into a domain person.
func fromFilePerson(entry *filePerson) (desk.Person, error) {
	status, err := desk.ParseDogStatus(entry.DogStatus)
	if err != nil {
		return desk.Person{}, err
	}

	person := desk.Person{
		ID:        entry.ID,
		Name:      entry.Name,
		DogStatus: status,
	}

	if person.ID == "" {
		person.ID = uuid.NewString()
	}

	if entry.Team != nil {
		person.Team = &desk.Team{
			ID:   entry.Team.ID,
			Name: entry.Team.Name,
		}

		if person.Team.Name == "" {
			person.Team.Name = person.Team.ID
		}
	}

	return person, nil
}
