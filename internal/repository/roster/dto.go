package roster

import (
	"github.com/go-playground/validator/v10"

	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// fileRoster is the on-disk shape of a roster.
type fileRoster struct {
	People []filePerson `yaml:"people" validate:"dive"`
}

// filePerson is one roster entry.
type filePerson struct {
	ID        string    `yaml:"id,omitempty" validate:"max=128"`
	Name      string    `yaml:"name" validate:"required,max=256"`
	DogStatus string    `yaml:"dog_status,omitempty" validate:"dogstatus"`
	Team      *fileTeam `yaml:"team,omitempty"`
}

// fileTeam is the team of a roster entry.
type fileTeam struct {
	ID   string `yaml:"id" validate:"required,max=128"`
	Name string `yaml:"name,omitempty" validate:"max=256"`
}

// rosterValidate validates roster entries.
//
//nolint:gochecknoglobals // Validator caches struct metadata, so it is shared.
var rosterValidate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // Registration only fails for an empty tag.
	_ = v.RegisterValidation("dogstatus", validateDogStatus)

	return v
}

// validateDogStatus accepts HAVE, LIKE, AVOID in any case or an empty value.
func validateDogStatus(fl validator.FieldLevel) bool {
	_, err := desk.ParseDogStatus(fl.Field().String())

	return err == nil
}

// toFilePerson converts a domain person into a roster entry.
func toFilePerson(p *desk.Person) filePerson {
	entry := filePerson{
		ID:        p.ID,
		Name:      p.Name,
		DogStatus: p.DogStatus.String(),
	}

	if p.Team != nil {
		entry.Team = &fileTeam{
			ID:   p.Team.ID,
			Name: p.Team.Name,
		}
	}

	return entry
}
