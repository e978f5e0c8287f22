package desk

import "strconv"

// Factory builds people with sequential ids.
// Each Factory owns its counter, so independent fixtures never share ids state.
type Factory struct {
	next int
}

// NewFactory returns a factory whose first id is "0".
func NewFactory() *Factory {
	return new(Factory)
}

// Person returns a member of the team with the given id; the id doubles as the team name.
func (f *Factory) Person(teamID string, status DogStatus) Person {
	p := f.Unassigned(status)
	p.Team = &Team{
		ID:   teamID,
		Name: teamID,
	}

	return p
}

// Unassigned returns a person without a team.
func (f *Factory) Unassigned(status DogStatus) Person {
	id := strconv.Itoa(f.next)
	f.next++

	return Person{
		ID:        id,
		Name:      id,
		DogStatus: status,
	}
}
