package tool

import (
	"errors"
	"testing"

	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoActiveToolIsSilent(t *testing.T) {
	c := NewController(nil)
	assert.Equal(t, KindNone, c.ActiveKind())

	assert.NotPanics(t, func() {
		c.HandleClick(vec.Vec3{}, vec.Vec3{}, false)
		c.HandleToggle()
		c.HandleStep()
		c.HandleUpdate(0.1)
		c.HandleRender()
		c.HandleRenderOverlay(draw.Viewport{})
		c.HandleMenu(draw.NewScriptedUI())
		c.ResetActive()
		c.InitActive()
	})
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestSetToolInitsNewAndClosesPrevious(t *testing.T) {
	log := &journal{}
	host := &fakeHost{states: NewStateRegistry()}
	c := NewController(host)

	tester := newRecordingTool(KindNavMeshTester, log)
	volume := newRecordingTool(KindConvexVolume, log)

	c.SetTool(tester)
	assert.Equal(t, 1, tester.inits)
	assert.Same(t, host, tester.host)
	assert.Equal(t, KindNavMeshTester, c.ActiveKind())

	c.SetTool(volume)
	assert.Equal(t, 1, volume.inits)
	assert.Equal(t, 1, tester.closes)
	assert.Zero(t, volume.closes)

	// Закрытие предыдущего происходит до инициализации нового
	assert.Equal(t, []string{"navmesh-tester.init", "navmesh-tester.close", "convex-volume.init"}, log.calls)
}

func TestSetSameToolIsNoop(t *testing.T) {
	log := &journal{}
	c := NewController(nil)
	tl := newRecordingTool(KindCrowd, log)
	switches := 0
	c.OnSwitch(func(_, _ Kind) { switches++ })

	c.SetTool(tl)
	c.SetTool(tl)

	assert.Equal(t, 1, tl.inits)
	assert.Zero(t, tl.closes)
	assert.Equal(t, 1, switches)
}

func TestSetNilClearsTool(t *testing.T) {
	log := &journal{}
	c := NewController(nil)
	tl := newRecordingTool(KindTileEdit, log)
	var seen [][2]Kind
	c.OnSwitch(func(prev, next Kind) { seen = append(seen, [2]Kind{prev, next}) })

	c.SetTool(tl)
	c.SetTool(nil)

	assert.Equal(t, 1, tl.closes)
	assert.Equal(t, KindNone, c.ActiveKind())
	assert.Equal(t, [][2]Kind{{KindNone, KindTileEdit}, {KindTileEdit, KindNone}}, seen)

	log.calls = nil
	c.HandleStep()
	c.HandleRender()
	assert.Empty(t, log.calls, "события после снятия инструмента не доходят до него")
}

func TestEventsForwardVerbatim(t *testing.T) {
	log := &journal{}
	c := NewController(nil)
	c.SetTool(newRecordingTool(KindTempObstacle, log))
	log.calls = nil

	c.HandleClick(vec.Vec3{}, vec.Vec3{X: 3}, true)
	c.HandleToggle()
	c.HandleStep()
	c.HandleUpdate(0.25)
	c.HandleRender()
	c.HandleRenderOverlay(draw.Viewport{})
	c.HandleMenu(nil)
	c.ResetActive()

	assert.Equal(t, []string{
		"temp-obstacle.click(3,true)",
		"temp-obstacle.toggle",
		"temp-obstacle.step",
		"temp-obstacle.update(0.25)",
		"temp-obstacle.render",
		"temp-obstacle.overlay",
		"temp-obstacle.menu",
		"temp-obstacle.reset",
	}, log.calls)
}

func TestCloseErrorDoesNotBlockSwitch(t *testing.T) {
	log := &journal{}
	c := NewController(nil)
	failing := newRecordingTool(KindCrowd, log)
	failing.closeErr = errors.New("busy")

	c.SetTool(failing)
	c.SetTool(&plainTool{kind: KindNavMeshPrune})

	assert.Equal(t, KindNavMeshPrune, c.ActiveKind())
	assert.Equal(t, 1, failing.closes)
}

func TestControllerClose(t *testing.T) {
	log := &journal{}
	c := NewController(nil)
	tl := newRecordingTool(KindCrowd, log)
	c.SetTool(tl)
	c.Close()

	assert.Equal(t, 1, tl.closes)
	_, ok := c.Active()
	require.False(t, ok)
}

func TestBaseToolKeepsHost(t *testing.T) {
	host := &fakeHost{states: NewStateRegistry()}
	c := NewController(host)
	pt := &plainTool{kind: KindTileEdit}
	c.SetTool(pt)
	assert.Same(t, host, pt.Host())
}
