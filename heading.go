package crossroad

import "fmt"

//     |   |   |     .n.
//     |   |   |     w e
//     |   |↲  |     .s.
// ----+ - - - +----
//     :       :
//     :       :
// ----:       :----
//     :       :
//     :       :
// ----+ - - - +----
//     |  ↱|   |
//     |   |   |
//     |   |   |

// Direction is a compass direction a road leaves the intersection in
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// NumDirections is the number of roads meeting at the intersection
const NumDirections = 4

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "invalid-direction"
}

// Group identifies the light controller responsible for a set of headings
type Group int

const (
	// TrunkForward serves straight and left-turning traffic on the trunk road
	TrunkForward Group = iota
	// MinorForward serves straight and left-turning traffic on the minor road
	MinorForward
	// TrunkRight serves right-turning traffic on the trunk road
	TrunkRight
)

// Groups lists the controller groups in ring order
var Groups = []Group{TrunkForward, MinorForward, TrunkRight}

func (g Group) String() string {
	switch g {
	case TrunkForward:
		return "trunk-forward"
	case MinorForward:
		return "minor-forward"
	case TrunkRight:
		return "trunk-right"
	}
	return "invalid-group"
}

// Heading is the (start, end) pair a vehicle travels
type Heading struct {
	Start Direction
	End   Direction
}

// Lane returns the lane the heading queues in. Left turns share a lane with
// straight traffic, so the lane is the start direction
func (h Heading) Lane() Direction {
	return h.Start
}

func (h Heading) String() string {
	if entry, ok := lookupHeading(h); ok {
		return entry.name
	}
	return "invalid-heading"
}

// Valid reports whether h is one of the valid headings
func (h Heading) Valid() bool {
	_, ok := lookupHeading(h)
	return ok
}

// Group returns the controller group serving h
func (h Heading) Group() (Group, bool) {
	entry, ok := lookupHeading(h)
	return entry.group, ok
}

type headingEntry struct {
	heading Heading
	group   Group
	name    string
}

// Right turns on the minor road are not allowed
var headingTable = []headingEntry{
	{Heading{North, South}, TrunkForward, "n2s"},
	{Heading{North, East}, TrunkForward, "n2e"},
	{Heading{South, North}, TrunkForward, "s2n"},
	{Heading{South, West}, TrunkForward, "s2w"},

	{Heading{East, West}, MinorForward, "e2w"},
	{Heading{East, South}, MinorForward, "e2s"},
	{Heading{West, East}, MinorForward, "w2e"},
	{Heading{West, North}, MinorForward, "w2n"},

	{Heading{North, West}, TrunkRight, "n2w"},
	{Heading{South, East}, TrunkRight, "s2e"},
}

// Identifying heading pair of each controller group
var groupIDs = map[Group][2]Heading{
	TrunkForward: {{North, South}, {South, North}},
	MinorForward: {{East, West}, {West, East}},
	TrunkRight:   {{North, West}, {South, East}},
}

// ControllerName returns the identifier of the controller serving g, e.g. "(n2s, s2n)"
func ControllerName(g Group) string {
	id := groupIDs[g]
	return fmt.Sprintf("(%s, %s)", id[0], id[1])
}

func lookupHeading(h Heading) (headingEntry, bool) {
	for _, entry := range headingTable {
		if entry.heading == h {
			return entry, true
		}
	}
	return headingEntry{}, false
}

// Headings returns every valid heading
func Headings() []Heading {
	result := make([]Heading, len(headingTable))
	for i, entry := range headingTable {
		result[i] = entry.heading
	}
	return result
}

// GroupHeadings returns the headings served by group g
func GroupHeadings(g Group) []Heading {
	result := make([]Heading, 0)
	for _, entry := range headingTable {
		if entry.group == g {
			result = append(result, entry.heading)
		}
	}
	return result
}

// ParseHeading resolves a name such as "n2s"
func ParseHeading(name string) (Heading, error) {
	for _, entry := range headingTable {
		if entry.name == name {
			return entry.heading, nil
		}
	}
	return Heading{}, NewHeadingError(name)
}
