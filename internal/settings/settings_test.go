package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Equal(t, 0.3, s.CellSize)
	assert.Equal(t, PartitionWatershed, s.PartitionType)
	assert.True(t, s.FilterLedgeSpans)
	assert.Equal(t, 10, s.WalkableHeight())
	assert.Equal(t, 4, s.WalkableClimb())
	assert.Equal(t, 2, s.WalkableRadius())
}

func TestParsePartition(t *testing.T) {
	p, err := ParsePartition(" Layers ")
	require.NoError(t, err)
	assert.Equal(t, PartitionLayers, p)

	_, err = ParsePartition("voronoi")
	assert.True(t, errors.Is(err, ErrUnknownPartition))

	assert.Equal(t, "partition(7)", PartitionType(7).String())
	assert.False(t, PartitionType(-1).Valid())
}

func TestYAMLUsesPartitionNames(t *testing.T) {
	s := Defaults()
	s.PartitionType = PartitionMonotone

	data, err := yaml.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "partition_type: monotone")

	var bad BuildSettings
	err = yaml.Unmarshal([]byte("partition_type: hexagons\n"), &bad)
	assert.Error(t, err)
}

func TestZeroCellSizeDoesNotPanic(t *testing.T) {
	var s BuildSettings
	assert.Zero(t, s.WalkableHeight())
	assert.Zero(t, s.WalkableClimb())
	assert.Zero(t, s.WalkableRadius())
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "build.yaml")

	s := Defaults()
	s.CellSize = 0.25
	s.PartitionType = PartitionMonotone
	s.FilterLedgeSpans = false
	require.NoError(t, SaveFile(path, s))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agent_radius: 1.5\npartition_type: layers\n"), 0644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)

	expected := Defaults()
	expected.AgentRadius = 1.5
	expected.PartitionType = PartitionLayers
	assert.Equal(t, expected, loaded)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("partition_type: spiral\n"), 0644))
	_, err = LoadFile(path)
	assert.ErrorIs(t, err, ErrUnknownPartition)
}
