package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyR     = 82  // R key (ASCII)
	KeyF     = 70  // F key (ASCII)
	KeyB     = 66  // B key (ASCII)
	KeyH     = 72  // H key (ASCII)
	KeyL     = 76  // L key (ASCII)
	KeyP     = 80  // P key (ASCII)
	KeyU     = 85  // U key (ASCII)
	KeyC     = 67  // C key (ASCII)
	KeyV     = 86  // V key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyTab   = 258 // Tab key (GLFW)
	KeyEsc   = 256 // Escape key (GLFW)

	Key1 = 49 // 1 key (ASCII)
	Key2 = 50 // 2 key (ASCII)
)

// Additional non-printable keys
const (
	KeyLeftShift  = 340 // Left Shift (GLFW)
	KeyRightShift = 344 // Right Shift (GLFW)
)

// Mouse buttons, matching GLFW button indices.
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)
