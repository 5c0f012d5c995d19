package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/bezier"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
)

// DefaultInactiveCameraColor is the color of the spot light drawn for the inactive camera.
var DefaultInactiveCameraColor = [3]float32{0.902, 0.043, 0.831}

// Cone and range of the inactive camera's spot light.
const (
	InactiveCameraInnerDeg    float32 = 12.5
	InactiveCameraOuterDeg    float32 = 17.5
	InactiveCameraMaxDistance float32 = 50

	// DefaultPathSamples is the number of line segments per Bézier curve in the path line strip.
	DefaultPathSamples = 32
)

// ErrNoHierarchy is returned by Hierarchy before SetHierarchy was called.
var ErrNoHierarchy = errors.New("scene has no hierarchy")

// Hierarchy names the three transform nodes animated by the orbit: the planet spins about the sun's Y axis and the
// moon about the planet's X axis.
type Hierarchy struct {
	Sun    transform.NodeID
	Planet transform.NodeID
	Moon   transform.NodeID
}

// Scene owns everything a frame is built from: the transform arena, the lights, the renderables, the path
// animator, two free-fly cameras and the render toggles. Update advances it by one tick and Render hands the
// result to a frame.FrameRenderer. Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Arena returns the transform arena renderables are bound to.
	//
	// Returns:
	//   - transform.Arena: the arena
	Arena() transform.Arena

	// Lights returns the light registry. Point light light.PathLightIndex is driven by the path animator.
	//
	// Returns:
	//   - light.Registry: the registry
	Lights() light.Registry

	// Store returns the renderable store.
	//
	// Returns:
	//   - renderable.Store: the store
	Store() renderable.Store

	// Animator returns the animator moving the path light.
	//
	// Returns:
	//   - bezier.PathAnimator: the animator
	Animator() bezier.PathAnimator

	// PathModel returns the line strip tracing the animator's path.
	//
	// Returns:
	//   - model.Model: the line strip
	PathModel() model.Model

	// Config returns a copy of the current render toggles.
	//
	// Returns:
	//   - config.RenderConfig: the toggles
	Config() config.RenderConfig

	// SetConfig replaces the render toggles. Call it between frames.
	//
	// Parameters:
	//   - cfg: the new toggles
	SetConfig(cfg config.RenderConfig)

	// UpdateConfig applies fn to the render toggles under the scene lock.
	//
	// Parameters:
	//   - fn: the mutation
	UpdateConfig(fn func(cfg *config.RenderConfig))

	// ActiveCamera returns the camera the scene is rendered from.
	//
	// Returns:
	//   - camera.Camera: the active camera
	ActiveCamera() camera.Camera

	// InactiveCamera returns the camera that is drawn as a spot light.
	//
	// Returns:
	//   - camera.Camera: the inactive camera
	InactiveCamera() camera.Camera

	// ToggleCamera swaps the active and inactive cameras. Both keep their state.
	ToggleCamera()

	// SetHierarchy registers the nodes animated by the orbit.
	//
	// Parameters:
	//   - h: the sun, planet and moon nodes
	//
	// Returns:
	//   - error: transform.ErrUnknownNode if a node is not in the arena
	SetHierarchy(h Hierarchy) error

	// Hierarchy returns the nodes animated by the orbit.
	//
	// Returns:
	//   - Hierarchy: the nodes
	//   - error: ErrNoHierarchy if none was set
	Hierarchy() (Hierarchy, error)

	// Update advances the scene by one tick: the active camera reads input, the path light moves, the orbit
	// turns the planet and the moon, and dynamic renderables pull their world matrix from the arena.
	//
	// Parameters:
	//   - in: the polled input state
	//
	// Returns:
	//   - error: error if the path light or a transform node is missing
	Update(in camera.Input) error

	// Render draws one frame from the active camera.
	//
	// Parameters:
	//   - fr: the frame renderer
	//   - viewport: the framebuffer size in pixels
	//
	// Returns:
	//   - frame.Stats: per-pass draw counts
	//   - error: error from the frame renderer
	Render(fr frame.FrameRenderer, viewport [2]float32) (frame.Stats, error)
}

type scene struct {
	mu *sync.RWMutex

	name string

	arena    transform.Arena
	lights   light.Registry
	store    renderable.Store
	animator bezier.PathAnimator
	path     model.Model

	cfg config.RenderConfig

	cameras [2]camera.Camera
	active  int

	hierarchy    Hierarchy
	hasHierarchy bool

	inactiveColor [3]float32
	pathSamples   int
	animatorOpts  []bezier.PathAnimatorBuilderOption
	extraSpots    []light.SpotLight
}

var _ Scene = &scene{}

// NewScene creates a Scene rendered from first, with second as the inactive camera. The scene starts with an
// empty arena, light registry and store; callers populate them before the first Update.
//
// Panics if either camera is nil.
//
// Parameters:
//   - name: the scene's identifier
//   - first: the initially active camera
//   - second: the initially inactive camera
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the scene
func NewScene(name string, first, second camera.Camera, options ...SceneBuilderOption) Scene {
	if first == nil || second == nil {
		panic("scene: NewScene requires two non-nil cameras")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		arena:         transform.NewArena(),
		lights:        light.NewRegistry(),
		store:         renderable.NewStore(),
		cfg:           config.Default(),
		cameras:       [2]camera.Camera{first, second},
		inactiveColor: DefaultInactiveCameraColor,
		pathSamples:   DefaultPathSamples,
	}
	for _, option := range options {
		option(s)
	}

	s.animator = bezier.NewPathAnimator(s.lights, s.animatorOpts...)
	s.path = model.BuildLineStrip("bezier path", s.animator.Path().Sample(s.pathSamples))
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Arena() transform.Arena {
	return s.arena
}

func (s *scene) Lights() light.Registry {
	return s.lights
}

func (s *scene) Store() renderable.Store {
	return s.store
}

func (s *scene) Animator() bezier.PathAnimator {
	return s.animator
}

func (s *scene) PathModel() model.Model {
	return s.path
}

func (s *scene) Config() config.RenderConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *scene) SetConfig(cfg config.RenderConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

func (s *scene) UpdateConfig(fn func(cfg *config.RenderConfig)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cfg)
}

func (s *scene) ActiveCamera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cameras[s.active]
}

func (s *scene) InactiveCamera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cameras[1-s.active]
}

func (s *scene) ToggleCamera() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = 1 - s.active
}

func (s *scene) SetHierarchy(h Hierarchy) error {
	for _, id := range []transform.NodeID{h.Sun, h.Planet, h.Moon} {
		if _, err := s.arena.Local(id); err != nil {
			return fmt.Errorf("hierarchy node %d: %w", id, err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hierarchy = h
	s.hasHierarchy = true
	return nil
}

func (s *scene) Hierarchy() (Hierarchy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasHierarchy {
		return Hierarchy{}, ErrNoHierarchy
	}
	return s.hierarchy, nil
}

func (s *scene) Update(in camera.Input) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cameras[s.active].Update(in)

	if err := s.animator.Update(s.cfg.PauseBezierPath); err != nil {
		return fmt.Errorf("path light: %w", err)
	}

	if s.hasHierarchy && !s.cfg.PauseHierarchyTransform {
		if err := s.orbit(); err != nil {
			return err
		}
	}

	return s.store.SyncFromArena(s.arena)
}

// orbit pre-multiplies the planet's local matrix by a rotation about Y and the moon's by a rotation about X. World
// matrices are folded on demand, so the moon picks up the planet's new rotation in the same tick.
func (s *scene) orbit() error {
	var rot [16]float32
	common.RotateAxis(rot[:], common.DegToRad(s.cfg.PlanetOrbitSpeed), [3]float32{0, 1, 0})
	if err := s.arena.PreMultiply(s.hierarchy.Planet, rot); err != nil {
		return fmt.Errorf("planet orbit: %w", err)
	}
	common.RotateAxis(rot[:], common.DegToRad(s.cfg.MoonOrbitSpeed), [3]float32{1, 0, 0})
	if err := s.arena.PreMultiply(s.hierarchy.Moon, rot); err != nil {
		return fmt.Errorf("moon orbit: %w", err)
	}
	return nil
}

func (s *scene) Render(fr frame.FrameRenderer, viewport [2]float32) (frame.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cam := s.cameras[s.active]
	view := frame.View{
		ViewProj:       cam.ViewProjectionMatrix(),
		SkyboxViewProj: cam.SkyboxViewProjection(),
		Eye:            cam.Position(),
		Viewport:       viewport,
	}

	s.extraSpots = s.extraSpots[:0]
	if s.cfg.ShowInactiveCamera {
		spot, err := s.cameras[1-s.active].AsSpotLight(s.inactiveColor,
			InactiveCameraInnerDeg, InactiveCameraOuterDeg, InactiveCameraMaxDistance)
		if err != nil {
			return frame.Stats{}, err
		}
		s.extraSpots = append(s.extraSpots, spot)
	}

	cfg := s.cfg
	return fr.Render(view, frame.Inputs{
		Lights:     s.lights,
		Store:      s.store,
		ExtraSpots: s.extraSpots,
		Path:       s.path,
	}, &cfg)
}
