package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindBelowSentinel(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid())
		assert.Less(t, int(k), int(MaxKinds))
	}
	assert.Len(t, Kinds(), int(MaxKinds)-1)
	assert.False(t, MaxKinds.Valid())
	assert.False(t, Kind(-1).Valid())
}

func TestKindNames(t *testing.T) {
	assert.Equal(t, "navmesh-tester", KindNavMeshTester.String())
	assert.Equal(t, "Test Navmesh", KindNavMeshTester.Description())
	assert.Equal(t, "kind(42)", Kind(42).String())
	assert.Equal(t, "kind(42)", Kind(42).Description())

	for k := KindNone; k < MaxKinds; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("lasso")
	assert.Error(t, err)
}
