package desk

import (
	"errors"
	"fmt"
	"strings"
)

// DogStatus describes how a person relates to dogs in the office.
type DogStatus uint8

const (
	// DogStatusUnset means the person did not state a preference.
	DogStatusUnset DogStatus = iota
	// DogStatusHave marks a dog owner.
	DogStatusHave
	// DogStatusLike marks a person who is fine with dogs but has none.
	DogStatusLike
	// DogStatusAvoid marks a person who dislikes dogs.
	DogStatusAvoid
)

// dogStatusRanks orders statuses inside a team block: owners first, avoiders last.
//
//nolint:gochecknoglobals // Immutable lookup table.
var dogStatusRanks = [...]int{
	DogStatusHave:  0,
	DogStatusLike:  1,
	DogStatusUnset: 1,
	DogStatusAvoid: 2,
}

// errUnknownDogStatus is returned when a dog status string is not recognized.
var errUnknownDogStatus = errors.New("unknown dog status")

// ParseDogStatus converts HAVE, LIKE, AVOID (any case) or an empty string to a DogStatus.
func ParseDogStatus(s string) (DogStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return DogStatusUnset, nil
	case "HAVE":
		return DogStatusHave, nil
	case "LIKE":
		return DogStatusLike, nil
	case "AVOID":
		return DogStatusAvoid, nil
	default:
		return DogStatusUnset, fmt.Errorf("%w: %q", errUnknownDogStatus, s)
	}
}

// String returns the wire name of the status, empty for DogStatusUnset.
func (s DogStatus) String() string {
	switch s {
	case DogStatusHave:
		return "HAVE"
	case DogStatusLike:
		return "LIKE"
	case DogStatusAvoid:
		return "AVOID"
	default:
		return ""
	}
}

// Rank returns the position of the status in the HAVE < LIKE < AVOID order.
// Unknown values rank with LIKE.
func (s DogStatus) Rank() int {
	if int(s) >= len(dogStatusRanks) {
		return dogStatusRanks[DogStatusLike]
	}

	return dogStatusRanks[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s DogStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DogStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseDogStatus(string(text))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}

// Team is a group of people that must sit together.
type Team struct {
	// ID uniquely identifies the team.
	ID string
	// Name is the display name of the team.
	Name string
}

// Person is somebody who needs a desk.
type Person struct {
	// ID uniquely identifies the person.
	ID string
	// Name is the display name.
	Name string
	// DogStatus is the person's relation to dogs.
	DogStatus DogStatus
	// Team is the team the person belongs to, nil when unassigned.
	Team *Team
}

// TeamKey identifies the contiguity group of a person.
// Members of real teams carry their team id, people without a team share
// the NoTeam key which never equals a real team key.
type TeamKey struct {
	// ID is the team id, empty for the no-team group.
	ID string
	// NoTeam is set for people without a team.
	NoTeam bool
}

// String renders the key for logs and error messages.
func (k TeamKey) String() string {
	if k.NoTeam {
		return "<no team>"
	}

	return k.ID
}

// TeamKey returns the contiguity group of the person.
func (p *Person) TeamKey() TeamKey {
	if p.Team == nil {
		return TeamKey{NoTeam: true}
	}

	return TeamKey{ID: p.Team.ID}
}

// Clone returns a copy of the person that does not share the team pointer.
func (p *Person) Clone() Person {
	cloned := *p

	if p.Team != nil {
		team := *p.Team
		cloned.Team = &team
	}

	return cloned
}

// ClonePeople copies a row of people so the result can be reordered freely.
func ClonePeople(people []Person) []Person {
	if people == nil {
		return nil
	}

	result := make([]Person, len(people))
	for i := range people {
		result[i] = people[i].Clone()
	}

	return result
}
