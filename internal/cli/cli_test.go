package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/annel0/navmesh-editor/internal/config"
	"github.com/annel0/navmesh-editor/internal/terrain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, "")

	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %v", err)
	return exitErr.Code
}

func TestParseClick(t *testing.T) {
	tests := []struct {
		in      string
		want    clickSpec
		wantErr bool
	}{
		{in: "1.5,2", want: clickSpec{X: 1.5, Z: 2}},
		{in: " 3 , 4 ,shift", want: clickSpec{X: 3, Z: 4, Shift: true}},
		{in: "1", wantErr: true},
		{in: "a,2", wantErr: true},
		{in: "1,b", wantErr: true},
		{in: "1,2,ctrl", wantErr: true},
		{in: "1,2,shift,4", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseClick(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDropClick(t *testing.T) {
	mesh := terrain.Generate(terrain.DefaultParams())

	c, ok := dropClick(mesh, clickSpec{X: 4.3, Z: 4.6, Shift: true})
	require.True(t, ok)
	assert.InDelta(t, 4.3, c.P.X, 1e-9)
	assert.InDelta(t, 4.6, c.P.Z, 1e-9)
	assert.True(t, c.Shift)
	assert.Greater(t, c.S.Y, c.P.Y)

	_, ok = dropClick(mesh, clickSpec{X: -5, Z: -5})
	assert.False(t, ok)
}

func TestAreasCmd(t *testing.T) {
	out, err := execute(t, "areas")
	require.NoError(t, err)
	assert.Contains(t, out, "ground")
	assert.Contains(t, out, "grass")
	assert.Contains(t, out, "0x04000000")
	assert.Contains(t, out, "0x00ffffff")

	out, err = execute(t, "areas", "road|door")
	require.NoError(t, err)
	assert.Contains(t, out, "0x01000003")

	_, err = execute(t, "areas", "lava")
	assert.Equal(t, exitUsage, exitCode(t, err))
}

func TestFilterCmd(t *testing.T) {
	out, err := execute(t, "filter", "--include", "ground,road", "--exclude", "water", "ground", "water")
	require.NoError(t, err)
	assert.Contains(t, out, "include=0x00000003 exclude=0x00000002")
	assert.Regexp(t, `ground\s+pass`, out)
	assert.Regexp(t, `water\s+reject`, out)

	_, err = execute(t, "filter", "--strict", "--exclude", "water", "water")
	assert.Equal(t, exitRejected, exitCode(t, err))

	out, err = execute(t, "filter", "--skip-disabled", "grass|disabled")
	require.NoError(t, err)
	assert.Contains(t, out, "reject")

	_, err = execute(t, "filter", "--include", "lava", "ground")
	assert.Equal(t, exitUsage, exitCode(t, err))
}

func TestSettingsCmd(t *testing.T) {
	store := t.TempDir()

	out, err := execute(t, "settings", "show", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "cell_size:")

	_, err = execute(t, "settings", "save", "hills", "--store", store)
	require.NoError(t, err)

	out, err = execute(t, "settings", "list", "--store", store)
	require.NoError(t, err)
	assert.Equal(t, "hills\n", out)

	out, err = execute(t, "settings", "load", "hills", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "name: hills")
	assert.Contains(t, out, "include_flags: 4294967295")

	_, err = execute(t, "settings", "delete", "hills", "--store", store)
	require.NoError(t, err)

	_, err = execute(t, "settings", "load", "hills", "--store", store)
	assert.Equal(t, exitStorage, exitCode(t, err))
}

func TestRunTileHighlight(t *testing.T) {
	out, err := execute(t, "run", "--tool", "tile-highlight", "--frames", "3", "--click", "12.3,20.6")
	require.NoError(t, err)
	assert.Contains(t, out, "tool:     tile-highlight")
	assert.Contains(t, out, "tile:     (1,2)")
}

func TestRunConvexVolumePreset(t *testing.T) {
	store := t.TempDir()

	out, err := execute(t, "run", "--store", store, "--tool", "convex-volume",
		"--click", "4.3,4.6", "--click", "12.3,4.6", "--click", "8.3,12.6",
		"--toggle", "--save-preset", "shape")
	require.NoError(t, err)
	assert.Contains(t, out, "volumes:  1")
	assert.Contains(t, out, `Preset "shape" saved.`)

	out, err = execute(t, "settings", "load", "shape", "--store", store)
	require.NoError(t, err)
	assert.Contains(t, out, "volumes:")

	// Пресет возвращает объём в новую сессию
	out, err = execute(t, "run", "--store", store, "--tool", "none", "--frames", "1", "--preset", "shape")
	require.NoError(t, err)
	assert.Contains(t, out, "volumes:  1")
}

func TestRunBuildAndTester(t *testing.T) {
	out, err := execute(t, "run", "--store", t.TempDir(), "--build", "--frames", "2",
		"--click", "4.3,4.6,shift", "--click", "20.3,20.6")
	require.NoError(t, err)
	assert.Contains(t, out, "tool:     navmesh-tester")
	assert.Contains(t, out, "path:")
	assert.Contains(t, out, "Build log:")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run", "--tool", "lava")
	assert.Equal(t, exitUsage, exitCode(t, err))

	_, err = execute(t, "run", "--tool", "crowd")
	assert.Equal(t, exitUsage, exitCode(t, err))

	_, err = execute(t, "run", "--click", "-50,-50")
	assert.Equal(t, exitUsage, exitCode(t, err))

	_, err = execute(t, "run", "--store", t.TempDir(), "--preset", "missing")
	assert.Equal(t, exitStorage, exitCode(t, err))
}
