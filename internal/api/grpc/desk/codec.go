package desk

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/desk-planner/internal/domain/desk"
)

// Field names of the Struct payloads.
const (
	fieldPeople    = "people"
	fieldID        = "id"
	fieldName      = "name"
	fieldDogStatus = "dog_status"
	fieldTeam      = "team"
	fieldScore     = "score"

	fieldKind       = "kind"
	fieldMessage    = "message"
	fieldTeamID     = "team_id"
	fieldNoTeam     = "no_team"
	fieldIndex      = "index"
	fieldAvoidIndex = "avoid_index"
	fieldAvoidID    = "avoid_id"
	fieldHaveIndex  = "have_index"
	fieldHaveID     = "have_id"

	kindTeamSplit = "team_split"
	kindAdjacency = "adjacency"
)

var (
	// errMalformedPerson is returned when a people entry is not an object.
	errMalformedPerson = errors.New("person must be an object")
	// errMissingID is returned when a person has no id.
	errMissingID = errors.New("person id is required")
	// errDuplicateID is returned when two people share an id.
	errDuplicateID = errors.New("duplicate person id")
	// errUnknownViolation is returned for violation details of an unknown kind.
	errUnknownViolation = errors.New("unknown violation kind")
)

// EncodePeople builds a {"people": [...]} payload.
func EncodePeople(people []domain.Person) (*structpb.Struct, error) {
	entries := make([]any, 0, len(people))

	for i := range people {
		entries = append(entries, encodePerson(&people[i]))
	}

	payload, err := structpb.NewStruct(map[string]any{
		fieldPeople: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("encode people: %w", err)
	}

	return payload, nil
}

func encodePerson(p *domain.Person) map[string]any {
	entry := map[string]any{
		fieldID:        p.ID,
		fieldName:      p.Name,
		fieldDogStatus: p.DogStatus.String(),
	}

	if p.Team != nil {
		entry[fieldTeam] = map[string]any{
			fieldID:   p.Team.ID,
			fieldName: p.Team.Name,
		}
	}

	return entry
}

// DecodePeople reads the people of a {"people": [...]} payload in order.
// A payload without people decodes to an empty row.
func DecodePeople(payload *structpb.Struct) ([]domain.Person, error) {
	values := payload.GetFields()[fieldPeople].GetListValue().GetValues()

	var (
		people = make([]domain.Person, 0, len(values))
		seen   = make(map[string]struct{}, len(values))
	)

	for i, value := range values {
		entry := value.GetStructValue()
		if entry == nil {
			return nil, fmt.Errorf("people[%d]: %w", i, errMalformedPerson)
		}

		person, err := decodePerson(entry.GetFields())
		if err != nil {
			return nil, fmt.Errorf("people[%d]: %w", i, err)
		}

		if _, ok := seen[person.ID]; ok {
			return nil, fmt.Errorf("people[%d]: %w %q", i, errDuplicateID, person.ID)
		}

		seen[person.ID] = struct{}{}

		people = append(people, person)
	}

	return people, nil
}

func decodePerson(fields map[string]*structpb.Value) (domain.Person, error) {
	id := fields[fieldID].GetStringValue()
	if id == "" {
		return domain.Person{}, errMissingID
	}

	status, err := domain.ParseDogStatus(fields[fieldDogStatus].GetStringValue())
	if err != nil {
		return domain.Person{}, err
	}

	person := domain.Person{
		ID:        id,
		Name:      fields[fieldName].GetStringValue(),
		DogStatus: status,
	}

	if team := fields[fieldTeam].GetStructValue(); team != nil {
		teamFields := team.GetFields()
		person.Team = &domain.Team{
			ID:   teamFields[fieldID].GetStringValue(),
			Name: teamFields[fieldName].GetStringValue(),
		}
	}

	return person, nil
}

// EncodeScore builds a {"score": n} payload.
func EncodeScore(score int) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldScore: structpb.NewNumberValue(float64(score)),
		},
	}
}

// DecodeScore reads the score of a {"score": n} payload.
func DecodeScore(payload *structpb.Struct) int {
	return int(payload.GetFields()[fieldScore].GetNumberValue())
}

// EncodeViolation describes a constraint violation as a Struct.
// It returns false for errors that are not violations.
func EncodeViolation(err error) (*structpb.Struct, bool) {
	var (
		split     *domain.TeamSplitError
		adjacency *domain.AdjacencyError
		fields    map[string]*structpb.Value
	)

	switch {
	case errors.As(err, &split):
		fields = map[string]*structpb.Value{
			fieldKind:   structpb.NewStringValue(kindTeamSplit),
			fieldTeamID: structpb.NewStringValue(split.Team.ID),
			fieldNoTeam: structpb.NewBoolValue(split.Team.NoTeam),
			fieldIndex:  structpb.NewNumberValue(float64(split.Index)),
		}
	case errors.As(err, &adjacency):
		fields = map[string]*structpb.Value{
			fieldKind:       structpb.NewStringValue(kindAdjacency),
			fieldAvoidIndex: structpb.NewNumberValue(float64(adjacency.AvoidIndex)),
			fieldAvoidID:    structpb.NewStringValue(adjacency.AvoidID),
			fieldHaveIndex:  structpb.NewNumberValue(float64(adjacency.HaveIndex)),
			fieldHaveID:     structpb.NewStringValue(adjacency.HaveID),
		}
	default:
		return nil, false
	}

	fields[fieldMessage] = structpb.NewStringValue(err.Error())

	return &structpb.Struct{Fields: fields}, true
}

// DecodeViolation rebuilds the typed violation described by EncodeViolation.
func DecodeViolation(details *structpb.Struct) error {
	fields := details.GetFields()

	switch kind := fields[fieldKind].GetStringValue(); kind {
	case kindTeamSplit:
		return &domain.TeamSplitError{
			Team: domain.TeamKey{
				ID:     fields[fieldTeamID].GetStringValue(),
				NoTeam: fields[fieldNoTeam].GetBoolValue(),
			},
			Index: int(fields[fieldIndex].GetNumberValue()),
		}
	case kindAdjacency:
		return &domain.AdjacencyError{
			AvoidIndex: int(fields[fieldAvoidIndex].GetNumberValue()),
			AvoidID:    fields[fieldAvoidID].GetStringValue(),
			HaveIndex:  int(fields[fieldHaveIndex].GetNumberValue()),
			HaveID:     fields[fieldHaveID].GetStringValue(),
		}
	default:
		return fmt.Errorf("%w: %q", errUnknownViolation, kind)
	}
}
