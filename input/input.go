// The input package tracks mouse and keyboard state from SDL events, along with
// per-frame constructs like pressed/released this frame and double clicks.
//
// The engine feeds events through HandleEvent and calls EventLoopStart once per frame
// before polling, so the 'this frame' queries refer to the events of the current frame.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

type mouseBtnState struct {
	Btn   int
	State int

	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
	IsDoubleClicked     bool
}

type mouseMotionState struct {
	XDelta int32
	YDelta int32
}

var (
	mouseWheelY int32
	mouseMotion = mouseMotionState{}
	mouseBtnMap = make(map[int]mouseBtnState)
	keyMap      = make(map[sdl.Keycode]keyState)

	isQuitRequested bool
)

func EventLoopStart() {

	// Update per-frame state
	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	for k, v := range mouseBtnMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		v.IsDoubleClicked = false
		mouseBtnMap[k] = v
	}

	mouseMotion.XDelta = 0
	mouseMotion.YDelta = 0
	mouseWheelY = 0

	isQuitRequested = false
}

// HandleEvent updates the input state from e. Events input doesn't care about are ignored.
func HandleEvent(event sdl.Event) {

	switch e := event.(type) {
	case *sdl.KeyboardEvent:
		handleKeyboardEvent(e)
	case *sdl.MouseButtonEvent:
		handleMouseBtnEvent(e)
	case *sdl.MouseMotionEvent:
		mouseMotion.XDelta += e.XRel
		mouseMotion.YDelta += e.YRel
	case *sdl.MouseWheelEvent:
		mouseWheelY += e.Y
	case *sdl.QuitEvent:
		isQuitRequested = true
	}
}

func handleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

func handleMouseBtnEvent(e *sdl.MouseButtonEvent) {

	mb, ok := mouseBtnMap[int(e.Button)]
	if !ok {
		mb = mouseBtnState{Btn: int(e.Button)}
	}

	mb.State = int(e.State)
	mb.IsDoubleClicked = e.Clicks == 2 && e.State == sdl.PRESSED
	mb.IsPressedThisFrame = e.State == sdl.PRESSED
	mb.IsReleasedThisFrame = e.State == sdl.RELEASED

	mouseBtnMap[int(e.Button)] = mb
}

func IsQuitClicked() bool {
	return isQuitRequested
}

// GetMouseMotion returns how many pixels were moved this frame
func GetMouseMotion() (xDelta, yDelta int32) {
	return mouseMotion.XDelta, mouseMotion.YDelta
}

// GetMouseWheelYNorm returns 1 if the wheel moved away from the user this frame, -1 if towards, and 0 otherwise
func GetMouseWheelYNorm() int32 {

	if mouseWheelY > 0 {
		return 1
	} else if mouseWheelY < 0 {
		return -1
	}

	return 0
}

func KeyClicked(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsPressedThisFrame
}

func KeyReleased(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsReleasedThisFrame
}

func KeyDown(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.State == sdl.PRESSED
}

func MouseClicked(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.IsPressedThisFrame
}

func MouseDoubleClicked(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.IsDoubleClicked
}

func MouseDown(mb int) bool {

	btn, ok := mouseBtnMap[mb]
	if !ok {
		return false
	}

	return btn.State == sdl.PRESSED
}
