package renderable

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderableDefaults(t *testing.T) {
	r := NewRenderable(WithName("wall"))
	assert.Equal(t, "wall", r.Name)
	assert.Equal(t, common.IdentityMat4(), r.World)
	assert.Equal(t, transform.NoParent, r.Node)
	assert.Equal(t, common.MobilityStatic, r.Mobility)
	assert.Equal(t, DrawModeOpaque, r.Mode)
	assert.False(t, r.HasDiffuseMap())
	assert.False(t, r.HasNormalMap())
}

func TestStoreFiltersByMode(t *testing.T) {
	s := NewStore()
	a := s.Add(NewRenderable(WithName("a")))
	b := s.Add(NewRenderable(WithName("mirror"), WithMode(DrawModeReflective)))
	c := s.Add(NewRenderable(WithName("c")))

	assert.Equal(t, []int{0, 1, 2}, []int{a, b, c})
	assert.Equal(t, 3, s.Len())
	require.Len(t, s.Opaque(), 2)
	assert.Equal(t, "a", s.Opaque()[0].Name)
	assert.Equal(t, "c", s.Opaque()[1].Name)
	require.Len(t, s.Reflective(), 1)
	assert.Equal(t, "mirror", s.Reflective()[0].Name)
	assert.Len(t, s.All(), 3)
}

func TestStoreGetAndSetWorld(t *testing.T) {
	s := NewStore()
	i := s.Add(NewRenderable())

	var m [16]float32
	common.Translate(m[:], 1, 2, 3)
	require.NoError(t, s.SetWorld(i, m))
	assert.Equal(t, m, s.Get(i).World)

	assert.Nil(t, s.Get(5))
	assert.Nil(t, s.Get(-1))
	assert.ErrorIs(t, s.SetWorld(5, m), ErrUnknownRenderable)
}

func TestSyncFromArenaPullsDynamicOnly(t *testing.T) {
	arena := transform.NewArena()
	var sunLocal, planetLocal [16]float32
	common.Translate(sunLocal[:], 0, 8, 0)
	common.Translate(planetLocal[:], 0, 0, -4)
	sun, err := arena.Add(sunLocal, transform.NoParent)
	require.NoError(t, err)
	planet, err := arena.Add(planetLocal, sun)
	require.NoError(t, err)

	s := NewStore()
	staticIdx := s.Add(NewRenderable(WithNode(sun)))
	dynIdx := s.Add(NewRenderable(WithNode(planet), WithMobility(common.MobilityDynamic)))
	freeIdx := s.Add(NewRenderable(WithMobility(common.MobilityDynamic)))

	require.NoError(t, s.SyncFromArena(arena))

	assert.Equal(t, common.IdentityMat4(), s.Get(staticIdx).World)
	assert.Equal(t, common.IdentityMat4(), s.Get(freeIdx).World)
	world := s.Get(dynIdx).World
	assert.InDeltaSlice(t, []float32{0, 8, -4}, world[12:15], 1e-6)
}

func TestSyncFromArenaReportsUnknownNode(t *testing.T) {
	s := NewStore()
	s.Add(NewRenderable(WithNode(3), WithMobility(common.MobilityDynamic)))
	assert.ErrorIs(t, s.SyncFromArena(transform.NewArena()), transform.ErrUnknownNode)
}

func TestDrawModeString(t *testing.T) {
	assert.Equal(t, "opaque", DrawModeOpaque.String())
	assert.Equal(t, "reflective", DrawModeReflective.String())
}
