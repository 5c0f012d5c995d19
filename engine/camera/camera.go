package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings fixed at construction and recomputes its view matrix
// from the attached free-fly CameraController each frame via Update().
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Forward returns the normalized view direction.
	//
	// Returns:
	//   - [3]float32: the forward vector
	Forward() [3]float32

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: the up vector
	Up() [3]float32

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns lookAt(position, position + forward, up) as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the perspective projection fixed at construction (column-major, depth in [0, 1]).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection x view.
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// SkyboxViewProjection returns projection x mat4(mat3(view)), the view-projection with translation removed.
	//
	// Returns:
	//   - [16]float32: the rotation-only view-projection matrix
	SkyboxViewProjection() [16]float32

	// Controller returns the attached CameraController.
	//
	// Returns:
	//   - CameraController: the attached controller
	Controller() CameraController

	// Update applies one frame of input through the controller and recomputes the view matrices.
	//
	// Parameters:
	//   - in: the polled input state
	Update(in Input)

	// SetInteractionEnabled turns user input handling on or off without resetting any state.
	//
	// Parameters:
	//   - enabled: true to react to input
	SetInteractionEnabled(enabled bool)

	// InteractionEnabled reports whether user input moves the camera.
	//
	// Returns:
	//   - bool: true when interaction is enabled
	InteractionEnabled() bool

	// RotateYaw rotates the view about the world Y axis and recomputes the matrices.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateYaw(angle float32)

	// RotatePitch rotates the view about the horizontal axis and recomputes the matrices.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotatePitch(angle float32)

	// AsSpotLight synthesizes a spot light at the camera's position pointing along its forward vector.
	// The scene uses it to draw the inactive camera as a light.
	//
	// Parameters:
	//   - color: diffuse and specular color
	//   - innerDeg, outerDeg: cone cutoffs in degrees
	//   - maxDistance: attenuation range
	//
	// Returns:
	//   - light.SpotLight: the transient light
	//   - error: light.ErrCutoffOrder if innerDeg > outerDeg
	AsSpotLight(color [3]float32, innerDeg, outerDeg, maxDistance float32) (light.SpotLight, error)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Without WithController a default free-fly controller at the origin
// looking down -Z is attached.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		fov:    45.0 * (math.Pi / 180.0), // radians
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	return c.controller.Position()
}

func (c *cameraImpl) Forward() [3]float32 {
	return c.controller.Forward()
}

func (c *cameraImpl) Up() [3]float32 {
	return c.controller.Up()
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SkyboxViewProjection() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.MulMat4(c.projectionMatrix, common.StripTranslation(c.viewMatrix))
}

func (c *cameraImpl) Controller() CameraController {
	return c.controller
}

func (c *cameraImpl) Update(in Input) {
	c.controller.Update(in)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetInteractionEnabled(enabled bool) {
	c.controller.SetInteractionEnabled(enabled)
}

func (c *cameraImpl) InteractionEnabled() bool {
	return c.controller.InteractionEnabled()
}

func (c *cameraImpl) RotateYaw(angle float32) {
	c.controller.RotateYaw(angle)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) RotatePitch(angle float32) {
	c.controller.RotatePitch(angle)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) AsSpotLight(color [3]float32, innerDeg, outerDeg, maxDistance float32) (light.SpotLight, error) {
	pos := c.controller.Position()
	fwd := c.controller.Forward()
	l, err := light.NewSpotLight(
		light.WithPosition(pos[0], pos[1], pos[2]),
		light.WithDirection(fwd[0], fwd[1], fwd[2]),
		light.WithDiffuse(color[0], color[1], color[2]),
		light.WithSpecular(color[0], color[1], color[2]),
		light.WithCutoffDegrees(innerDeg, outerDeg),
		light.WithMaxDistance(maxDistance),
		light.WithMobility(common.MobilityDynamic),
	)
	if err != nil {
		return light.SpotLight{}, fmt.Errorf("camera spot light: %w", err)
	}
	return l, nil
}

// updateMatrices recalculates the view and view-projection matrices from the controller state.
// The projection is fixed at construction. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	p := c.controller.Position()
	f := c.controller.Forward()
	u := c.controller.Up()
	common.LookAt(c.viewMatrix[:],
		p[0], p[1], p[2],
		p[0]+f[0], p[1]+f[1], p[2]+f[2],
		u[0], u[1], u[2],
	)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
