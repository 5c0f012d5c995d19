package camera

// Input is the polled input state a controller reads once per frame. The window satisfies it;
// tests use a scripted fake.
type Input interface {
	// KeyDown reports whether a key is currently held.
	//
	// Parameters:
	//   - key: the GLFW key code
	//
	// Returns:
	//   - bool: true while the key is held
	KeyDown(key uint32) bool

	// CursorPos returns the cursor position in window pixels.
	//
	// Returns:
	//   - x, y: cursor coordinates
	CursorPos() (x, y float64)

	// MouseButtonDown reports whether a mouse button is currently held.
	//
	// Parameters:
	//   - button: the GLFW mouse button index
	//
	// Returns:
	//   - bool: true while the button is held
	MouseButtonDown(button int) bool
}

// CameraController owns the free-fly positional state of a camera: position, forward and up.
// Movement follows the camera's own axes and looking around is a yaw about world up followed by a
// pitch about the horizontal axis, each applied as a quaternion rotation of the forward vector.
type CameraController interface {
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

	// Up returns the normalized camera up vector.
	//
	// Returns:
	//   - [3]float32: the up vector
	Up() [3]float32

	// Right returns normalize(forward x up).
	//
	// Returns:
	//   - [3]float32: the right vector
	Right() [3]float32

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - pos: the new world-space position
	SetPosition(pos [3]float32)

	// Update applies one frame of keyboard movement and mouse look. When interaction is disabled only
	// the remembered cursor position is refreshed, so re-enabling does not produce a jump.
	//
	// Parameters:
	//   - in: the polled input state
	Update(in Input)

	// RotateYaw rotates forward about the world Y axis.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateYaw(angle float32)

	// RotatePitch rotates forward about the horizontal axis, cross(worldY, forward).
	//
	// Parameters:
	//   - angle: rotation in radians
	RotatePitch(angle float32)

	// SetInteractionEnabled turns user input handling on or off without resetting any state.
	//
	// Parameters:
	//   - enabled: true to react to input
	SetInteractionEnabled(enabled bool)

	// InteractionEnabled reports whether user input is handled.
	//
	// Returns:
	//   - bool: true when input moves the camera
	InteractionEnabled() bool

	// MoveSpeed returns the distance moved per frame while a movement key is held.
	//
	// Returns:
	//   - float32: world units per frame
	MoveSpeed() float32

	// LookSpeed returns the radians of rotation per pixel of cursor movement.
	//
	// Returns:
	//   - float32: radians per pixel
	LookSpeed() float32
}
