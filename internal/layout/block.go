package layout

import (
	"slices"
	"strings"

	"github.com/oshokin/desk-planner/internal/domain/desk"
)

// endKind classifies the person sitting at one end of a team block.
type endKind uint8

const (
	endNeutral endKind = iota
	endAvoid
	endHave
)

// compatible reports whether two block ends may touch.
func compatible(left, right endKind) bool {
	return !(left == endAvoid && right == endHave) && !(left == endHave && right == endAvoid)
}

// endOf classifies a single person.
func endOf(p *desk.Person) endKind {
	switch p.DogStatus {
	case desk.DogStatusAvoid:
		return endAvoid
	case desk.DogStatusHave:
		return endHave
	default:
		return endNeutral
	}
}

// variant is one seating of a team block.
type variant struct {
	people      []desk.Person
	left, right endKind
}

func newVariant(people []desk.Person) variant {
	return variant{
		people: people,
		left:   endOf(&people[0]),
		right:  endOf(&people[len(people)-1]),
	}
}

// block holds every member of one team and the seatings considered for it.
type block struct {
	key      desk.TeamKey
	avoiders int
	owners   int
	variants []variant
}

// class orders blocks for the greedy layout: avoiders left, owners right.
func (b *block) class() int {
	switch {
	case b.avoiders > 0 && b.owners == 0:
		return 0
	case b.avoiders > 0:
		return 1
	case b.owners == 0:
		return 2
	default:
		return 3
	}
}

// buildBlocks groups people by team and builds the seating variants of each group.
// Groups are ordered by team id with the no-team group first or last.
func buildBlocks(people []desk.Person, placement Placement) []*block {
	sorted := slices.Clone(people)
	slices.SortStableFunc(sorted, func(a, b desk.Person) int {
		if c := compareKeys(a.TeamKey(), b.TeamKey(), placement); c != 0 {
			return c
		}

		if c := a.DogStatus.Rank() - b.DogStatus.Rank(); c != 0 {
			return c
		}

		return strings.Compare(a.ID, b.ID)
	})

	var blocks []*block

	for start := 0; start < len(sorted); {
		key := sorted[start].TeamKey()

		end := start + 1
		for end < len(sorted) && sorted[end].TeamKey() == key {
			end++
		}

		blocks = append(blocks, newBlock(key, sorted[start:end]))
		start = end
	}

	return blocks
}

// compareKeys orders team keys by id, placing the no-team group per placement.
func compareKeys(a, b desk.TeamKey, placement Placement) int {
	switch {
	case a.NoTeam && b.NoTeam:
		return 0
	case a.NoTeam:
		if placement == PlacementFirst {
			return -1
		}

		return 1
	case b.NoTeam:
		if placement == PlacementFirst {
			return 1
		}

		return -1
	default:
		return strings.Compare(a.ID, b.ID)
	}
}

// newBlock builds the variants of a team whose members are sorted by rank then id.
func newBlock(key desk.TeamKey, members []desk.Person) *block {
	var owners, neutrals, avoiders []desk.Person

	for _, p := range members {
		switch p.DogStatus {
		case desk.DogStatusHave:
			owners = append(owners, p)
		case desk.DogStatusAvoid:
			avoiders = append(avoiders, p)
		default:
			neutrals = append(neutrals, p)
		}
	}

	var canonical []desk.Person
	if len(avoiders) == 0 {
		canonical = spreadOwners(owners, neutrals)
	} else {
		// Every buffer seat between the avoiders and the owners is worth
		// AvoidWeight per avoider, more than spreading owners could gain.
		canonical = slices.Concat(avoiders, neutrals, owners)
	}

	candidates := [][]desk.Person{
		canonical,
		reversed(canonical),
		slices.Concat(owners, neutrals, avoiders),
		slices.Concat(avoiders, neutrals, owners),
	}

	b := &block{
		key:      key,
		avoiders: len(avoiders),
		owners:   len(owners),
	}

	seen := make(map[string]struct{}, len(candidates))

	for _, c := range candidates {
		signature := signatureOf(c)
		if _, ok := seen[signature]; ok {
			continue
		}

		seen[signature] = struct{}{}
		b.variants = append(b.variants, newVariant(c))
	}

	return b
}

// spreadOwners seats owners at both ends and shares the neutral seats evenly between them.
func spreadOwners(owners, neutrals []desk.Person) []desk.Person {
	if len(owners) < 2 {
		return slices.Concat(owners, neutrals)
	}

	var (
		gaps   = len(owners) - 1
		result = make([]desk.Person, 0, len(owners)+len(neutrals))
		next   = 0
	)

	for i, owner := range owners {
		result = append(result, owner)

		if i == gaps {
			break
		}

		size := len(neutrals) / gaps
		if i < len(neutrals)%gaps {
			size++
		}

		result = append(result, neutrals[next:next+size]...)
		next += size
	}

	return result
}

func reversed(people []desk.Person) []desk.Person {
	result := slices.Clone(people)
	slices.Reverse(result)

	return result
}

// signatureOf identifies a seating by the ids in order.
func signatureOf(people []desk.Person) string {
	var sb strings.Builder

	for _, p := range people {
		sb.WriteString(p.ID)
		sb.WriteByte(0)
	}

	return sb.String()
}
