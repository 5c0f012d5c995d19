package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - pos: the camera position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(pos [3]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = pos
	}
}

// WithForward sets the initial view direction. The vector is normalized; a zero vector is ignored.
//
// Parameters:
//   - forward: the view direction
//
// Returns:
//   - CameraControllerOption: functional option to set the forward vector
func WithForward(forward [3]float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.forward = normalizeOr(mgl32.Vec3(forward), cc.forward)
	}
}

// WithMoveSpeed sets the distance moved per frame while a movement key is held.
//
// Parameters:
//   - speed: world units per frame
//
// Returns:
//   - CameraControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithLookSpeed sets the rotation per pixel of cursor movement.
//
// Parameters:
//   - speed: radians per pixel
//
// Returns:
//   - CameraControllerOption: functional option to set the look speed
func WithLookSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.lookSpeed = speed
	}
}

// WithPrecisionMultiplier sets the move speed scale applied while Left Shift is held.
//
// Parameters:
//   - multiplier: the scale factor
//
// Returns:
//   - CameraControllerOption: functional option to set the precision multiplier
func WithPrecisionMultiplier(multiplier float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.precisionMultiplier = multiplier
	}
}

// WithInteraction sets whether the controller starts out reacting to input.
//
// Parameters:
//   - enabled: true to react to input
//
// Returns:
//   - CameraControllerOption: functional option to set the interaction flag
func WithInteraction(enabled bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.interaction = enabled
	}
}
