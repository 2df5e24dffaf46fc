package pcset

import (
	"testing"

	"github.com/jsphweid/chordex/pitch"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, pattern string) Set {
	t.Helper()
	s, err := Parse(pattern)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFromClassesCollapsesDuplicates(t *testing.T) {
	s := FromClasses([]pitch.Class{pitch.C, pitch.E, pitch.G, pitch.C, pitch.NewClass(16)})
	assert := assert.New(t)
	assert.Equal("100010010000", s.String())
	assert.Equal(3, s.Len())
	assert.Equal([]pitch.Class{pitch.C, pitch.E, pitch.G}, s.Classes())
}

func TestFromPitchesDropsOctave(t *testing.T) {
	s := FromPitches([]pitch.Specific{
		pitch.NewSpecific(pitch.E, 2),
		pitch.NewSpecific(pitch.B, 2),
		pitch.NewSpecific(pitch.E, 3),
		pitch.NewSpecific(pitch.GSharp, 3),
	})
	assert.Equal(t, FromClasses([]pitch.Class{pitch.E, pitch.GSharp, pitch.B}), s)
}

func TestParseRejectsMalformedPatterns(t *testing.T) {
	for _, p := range []string{"", "10001001000", "1000100100000", "10001001000x"} {
		_, err := Parse(p)
		assert.Error(t, err, "pattern %q", p)
	}
}

func TestRotateMovesRight(t *testing.T) {
	s := mustParse(t, "100010010000")
	assert := assert.New(t)
	assert.Equal("010001001000", s.Rotate(1).String())
	assert.Equal("100001000100", s.Rotate(5).String())
	assert.Equal("000100100001", s.Rotate(-1).String())
	assert.Equal("100010010000", s.String(), "receiver must not change")
}

func TestRotationIdentity(t *testing.T) {
	patterns := []string{"100010010000", "101101010010", "110000000001", "000000000000", "111111111111"}
	for _, p := range patterns {
		s := mustParse(t, p)
		assert.Equal(t, s, s.Rotate(12), p)
		for a := 0; a < 12; a++ {
			for b := 0; b < 12; b++ {
				assert.Equal(t, s.Rotate((a+b)%12), s.Rotate(a).Rotate(b), "%s a=%d b=%d", p, a, b)
			}
		}
	}
}

func TestRotationsYieldsTwelveFreshSets(t *testing.T) {
	s := mustParse(t, "100100010000")
	var steps []int
	for step, r := range s.Rotations() {
		steps = append(steps, step)
		assert.Equal(t, s.Rotate(step), r)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, steps)
}

func TestRotationsCanStopEarlyAndRestart(t *testing.T) {
	s := mustParse(t, "100100010000")
	for step := range s.Rotations() {
		if step == 4 {
			break
		}
	}
	assert.Equal(t, "100100010000", s.String())

	var first Set
	for _, r := range s.Rotations() {
		first = r
		break
	}
	assert.Equal(t, s, first)
}

func TestTransposeMovesClassesUp(t *testing.T) {
	cMajor := FromClasses([]pitch.Class{pitch.C, pitch.E, pitch.G})
	dMajor := FromClasses([]pitch.Class{pitch.D, pitch.FSharp, pitch.A})
	assert.Equal(t, dMajor, cMajor.Transpose(2))
}

func TestEmptySet(t *testing.T) {
	assert := assert.New(t)
	assert.True(Set{}.IsEmpty())
	assert.Equal(0, Set{}.Len())
	assert.False(FromClasses([]pitch.Class{pitch.A}).IsEmpty())
	assert.True(FromClasses([]pitch.Class{pitch.A}).Contains(pitch.A))
}
