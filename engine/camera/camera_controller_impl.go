package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Defaults for the free-fly controller.
const (
	DefaultMoveSpeed           float32 = 0.1
	DefaultLookSpeed           float32 = 0.0035
	DefaultPrecisionMultiplier float32 = 0.1
)

var worldUp = mgl32.Vec3{0, 1, 0}

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	forward  mgl32.Vec3
	up       mgl32.Vec3

	moveSpeed           float32
	lookSpeed           float32
	precisionMultiplier float32

	interaction bool
	prevCursor  [2]float64
	hasCursor   bool
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a free-fly controller at the origin looking down -Z.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:                  &sync.Mutex{},
		forward:             mgl32.Vec3{0, 0, -1},
		up:                  worldUp,
		moveSpeed:           DefaultMoveSpeed,
		lookSpeed:           DefaultLookSpeed,
		precisionMultiplier: DefaultPrecisionMultiplier,
		interaction:         true,
	}
	for _, option := range options {
		option(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Position() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Forward() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.forward
}

func (cc *cameraControllerImpl) Up() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.up
}

func (cc *cameraControllerImpl) Right() [3]float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.right()
}

func (cc *cameraControllerImpl) SetPosition(pos [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = pos
}

func (cc *cameraControllerImpl) MoveSpeed() float32 {
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) LookSpeed() float32 {
	return cc.lookSpeed
}

func (cc *cameraControllerImpl) SetInteractionEnabled(enabled bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.interaction = enabled
}

func (cc *cameraControllerImpl) InteractionEnabled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.interaction
}

func (cc *cameraControllerImpl) RotateYaw(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotateYaw(angle)
}

func (cc *cameraControllerImpl) RotatePitch(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.rotatePitch(angle)
}

func (cc *cameraControllerImpl) Update(in Input) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	x, y := in.CursorPos()
	if !cc.interaction || !cc.hasCursor {
		cc.prevCursor = [2]float64{x, y}
		cc.hasCursor = true
		if !cc.interaction {
			return
		}
	}

	step := cc.moveSpeed
	if in.KeyDown(common.KeyLeftShift) {
		step *= cc.precisionMultiplier
	}
	right := cc.right()
	if in.KeyDown(common.KeyA) {
		cc.position = cc.position.Sub(right.Mul(step))
	}
	if in.KeyDown(common.KeyD) {
		cc.position = cc.position.Add(right.Mul(step))
	}
	if in.KeyDown(common.KeyW) {
		cc.position = cc.position.Add(cc.forward.Mul(step))
	}
	if in.KeyDown(common.KeyS) {
		cc.position = cc.position.Sub(cc.forward.Mul(step))
	}
	if in.KeyDown(common.KeyR) {
		cc.position = cc.position.Add(cc.up.Mul(step))
	}
	if in.KeyDown(common.KeyF) {
		cc.position = cc.position.Sub(cc.up.Mul(step))
	}

	dx := float32(x-cc.prevCursor[0]) * cc.lookSpeed
	dy := float32(y-cc.prevCursor[1]) * cc.lookSpeed
	cc.prevCursor = [2]float64{x, y}

	if in.MouseButtonDown(common.MouseButtonLeft) {
		if dx != 0 {
			cc.rotateYaw(dx)
		}
		if dy != 0 {
			cc.rotatePitch(dy)
		}
	}
}

// --- internal helpers ---

// right returns normalize(forward x up). Caller must hold the mutex.
func (cc *cameraControllerImpl) right() mgl32.Vec3 {
	return normalizeOr(cc.forward.Cross(cc.up), mgl32.Vec3{1, 0, 0})
}

// horizontalAxis is cross(worldY, forward); zero when looking straight up or down.
func (cc *cameraControllerImpl) horizontalAxis() mgl32.Vec3 {
	return worldUp.Cross(cc.forward)
}

// rotateYaw applies the yaw quaternion and rebuilds up from the rotated horizontal axis.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) rotateYaw(angle float32) {
	cc.forward = mgl32.QuatRotate(angle, worldUp).Rotate(cc.forward).Normalize()
	if hor := cc.horizontalAxis(); hor.Len() > 1e-6 {
		cc.up = normalizeOr(cc.forward.Cross(hor), cc.up)
	}
}

// rotatePitch applies the pitch quaternion about the horizontal axis. A vertical forward has no horizontal
// axis, so the rotation is skipped. Caller must hold the mutex.
func (cc *cameraControllerImpl) rotatePitch(angle float32) {
	hor := cc.horizontalAxis()
	if hor.Len() <= 1e-6 {
		return
	}
	hor = hor.Normalize()
	cc.forward = mgl32.QuatRotate(angle, hor).Rotate(cc.forward).Normalize()
	cc.up = normalizeOr(cc.forward.Cross(hor), cc.up)
}

func normalizeOr(v, fallback mgl32.Vec3) mgl32.Vec3 {
	if v.Len() <= 1e-6 {
		return fallback
	}
	return v.Normalize()
}
