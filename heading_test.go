package crossroad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeading_Table(t *testing.T) {
	headings := Headings()
	assert.Len(t, headings, 10)

	seen := make(map[string]bool)
	for _, h := range headings {
		assert.True(t, h.Valid(), h.String())
		assert.False(t, seen[h.String()], "duplicate heading %s", h)
		seen[h.String()] = true
		assert.Equal(t, h.Start, h.Lane())
	}
}

func TestHeading_Groups(t *testing.T) {
	testCases := []struct {
		name  string
		group Group
	}{
		{"n2s", TrunkForward},
		{"n2e", TrunkForward},
		{"s2n", TrunkForward},
		{"s2w", TrunkForward},
		{"e2w", MinorForward},
		{"e2s", MinorForward},
		{"w2e", MinorForward},
		{"w2n", MinorForward},
		{"n2w", TrunkRight},
		{"s2e", TrunkRight},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ParseHeading(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.name, h.String())

			group, ok := h.Group()
			assert.True(t, ok)
			assert.Equal(t, tc.group, group)
		})
	}
}

func TestHeading_Invalid(t *testing.T) {
	for _, h := range []Heading{{East, North}, {West, South}, {North, North}, {Direction(7), South}} {
		assert.False(t, h.Valid())
		assert.Equal(t, "invalid-heading", h.String())

		_, ok := h.Group()
		assert.False(t, ok)
	}

	_, err := ParseHeading("e2n")
	assert.True(t, IsHeadingError(err))
	assert.Equal(t, ErrCodeInvalidHeading, GetErrorCode(err))
}

func TestHeading_GroupHeadingsCoverTable(t *testing.T) {
	total := 0
	for _, g := range Groups {
		headings := GroupHeadings(g)
		total += len(headings)
		for _, h := range headings {
			group, _ := h.Group()
			assert.Equal(t, g, group)
		}
	}
	assert.Equal(t, len(Headings()), total)

	assert.Len(t, GroupHeadings(TrunkForward), 4)
	assert.Len(t, GroupHeadings(MinorForward), 4)
	assert.Len(t, GroupHeadings(TrunkRight), 2)
}

func TestControllerName(t *testing.T) {
	assert.Equal(t, "(n2s, s2n)", ControllerName(TrunkForward))
	assert.Equal(t, "(e2w, w2e)", ControllerName(MinorForward))
	assert.Equal(t, "(n2w, s2e)", ControllerName(TrunkRight))
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "north", North.String())
	assert.Equal(t, "west", West.String())
	assert.Equal(t, "invalid-direction", Direction(NumDirections).String())
	assert.Equal(t, "invalid-group", Group(len(Groups)).String())
}
