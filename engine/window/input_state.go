package window

import "sync"

// maxMouseButtons matches GLFW's MouseButtonLast + 1.
const maxMouseButtons = 8

// inputState tracks held keys, held mouse buttons and the cursor between event polls.
type inputState struct {
	mu *sync.RWMutex

	keys    map[uint32]bool
	buttons [maxMouseButtons]bool
	cursorX float64
	cursorY float64
}

func newInputState() *inputState {
	return &inputState{
		mu:   &sync.RWMutex{},
		keys: make(map[uint32]bool),
	}
}

func (s *inputState) setKey(key uint32, down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if down {
		s.keys[key] = true
		return
	}
	delete(s.keys, key)
}

func (s *inputState) setButton(button int, down bool) {
	if button < 0 || button >= maxMouseButtons {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buttons[button] = down
}

func (s *inputState) setCursor(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursorX, s.cursorY = x, y
}

// releaseAll drops every held key and button, used when the window loses focus and release events never arrive.
func (s *inputState) releaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.keys)
	s.buttons = [maxMouseButtons]bool{}
}

func (s *inputState) KeyDown(key uint32) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[key]
}

func (s *inputState) MouseButtonDown(button int) bool {
	if button < 0 || button >= maxMouseButtons {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buttons[button]
}

func (s *inputState) CursorPos() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursorX, s.cursorY
}
