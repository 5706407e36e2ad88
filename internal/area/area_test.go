package area

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFlagsRoundTrip(t *testing.T) {
	// Перебираем типы, флаги и "мусорные" значения
	tags := []Tag{0, Ground, Water | FlagDoor, Road | FlagJump | FlagDisabled, 0xdeadbeef, 0xffffffff, FlagMask}
	for _, tag := range tags {
		combined, err := Combine(TypeOf(tag), FlagsOf(tag))
		require.NoError(t, err)
		assert.Equal(t, tag, combined, "разбиение тега 0x%08x должно быть обратимым", uint32(tag))
	}
}

func TestTypesStayDistinguishable(t *testing.T) {
	flagSets := [][]Tag{nil, {FlagDoor}, {FlagJump, FlagDisabled}, {FlagDoor, FlagJump, FlagDisabled}}
	types := Types()
	for _, flags := range flagSets {
		for i := range types {
			for j := range types {
				if i == j {
					continue
				}
				a := MustCombine(types[i], flags...)
				b := MustCombine(types[j], flags...)
				assert.NotEqual(t, TypeOf(a), TypeOf(b))
			}
		}
	}
}

func TestCombineRejectsOverlappingBits(t *testing.T) {
	_, err := Combine(FlagDoor)
	assert.True(t, errors.Is(err, ErrTypeOutOfRange))

	_, err = Combine(Ground, Water)
	assert.True(t, errors.Is(err, ErrFlagOutOfRange))

	assert.Panics(t, func() { MustCombine(Ground, Grass) })
}

func TestMaskDropsStrayBits(t *testing.T) {
	assert.Equal(t, Road|FlagJump, Mask(Road|FlagDoor, FlagJump|Grass))
}

func TestFlagHelpers(t *testing.T) {
	tag := With(Grass, FlagDoor)
	assert.True(t, Has(tag, FlagDoor))
	assert.False(t, Has(tag, FlagJump))
	assert.False(t, Has(tag, 0))

	tag = Without(tag, FlagDoor)
	assert.Equal(t, Grass, tag)

	// Биты типа через With/Without не меняются
	assert.Equal(t, Grass, With(Grass, Water))
	assert.Equal(t, Grass, Without(Grass, Grass))
}

func TestStringAndParse(t *testing.T) {
	tag := MustCombine(Road, FlagDoor, FlagJump)
	assert.Equal(t, "road|door|jump", tag.String())
	assert.Equal(t, "type(42)", Tag(42).String())

	parsed, err := Parse("road|door|jump")
	require.NoError(t, err)
	assert.Equal(t, tag, parsed)

	_, err = Parse("lava")
	assert.Error(t, err)
	_, err = Parse("ground|teleport")
	assert.Error(t, err)
}

func TestColorByTypeAndFlags(t *testing.T) {
	assert.Equal(t, RGBA(0, 192, 255, 255), Color(Ground))
	assert.Equal(t, RGBA(255, 0, 0, 255), Color(Tag(99)))
	assert.NotEqual(t, Color(Water), Color(Water|FlagDoor))

	disabled := Color(Ground | FlagDisabled)
	assert.Equal(t, uint32(64), disabled>>24, "отключённые полигоны полупрозрачные")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "door", FlagName(FlagDoor))
	assert.Equal(t, "disabled", FlagName(FlagDisabled))
	assert.Equal(t, "flag(0x08000000)", FlagName(0x08000000))
}
