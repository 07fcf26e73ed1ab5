package engine

import (
	"runtime"

	"github.com/bloeys/nrend/assert"
	"github.com/bloeys/nrend/glctx"
	"github.com/bloeys/nrend/glctx/glcore"
	"github.com/bloeys/nrend/input"
	"github.com/bloeys/nrend/logging"
	"github.com/bloeys/nrend/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited  = false
	isRunning = false
)

type Window struct {
	SDLWin *sdl.Window
	GlCtx  sdl.GLContext
	// Ctx routes GPU calls to the window's GL context
	Ctx            glctx.Context
	EventCallbacks []func(sdl.Event)
	// Rend, if set, gets FrameEnd called after each frame
	Rend renderer.Render
}

func (w *Window) handleInputs() {

	input.EventLoopStart()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		//Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		//Internal processing
		input.HandleEvent(event)

		if e, ok := event.(*sdl.WindowEvent); ok && e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			w.handleWindowResize()
		}
	}
}

func (w *Window) handleWindowResize() {

	fbWidth, fbHeight := w.SDLWin.GLGetDrawableSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	gl.Viewport(0, 0, fbWidth, fbHeight)
}

// DrawableSize is the size of the window's framebuffer in pixels
func (w *Window) DrawableSize() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

func (w *Window) Destroy() error {

	if w.GlCtx != nil {
		sdl.GLDeleteContext(w.GlCtx)
		w.GlCtx = nil
	}

	return w.SDLWin.Destroy()
}

func Init() error {

	isInited = true

	runtime.LockOSThread()
	err := initSDL()
	if err != nil {
		return err
	}

	initTiming()
	return nil
}

func initSDL() error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_FRAMEBUFFER_SRGB_CAPABLE, 1)

	// Allows us to do MSAA
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	return nil
}

func CreateOpenGLWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, x, y, width, height, WindowFlags_OPENGL|flags)
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	err = initOpenGL()
	if err != nil {
		win.Destroy()
		return nil, err
	}

	win.Ctx = glcore.New()

	// Get rid of the blinding white startup screen (unfortunately there is still one frame of white)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	sdlWin.GLSwap()

	return win, nil
}

func initOpenGL() error {

	if err := gl.Init(); err != nil {
		return err
	}

	logging.InfoLog.Printf("OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	// Points of the basic program set gl_PointSize
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	gl.Enable(gl.BLEND)
	gl.Enable(gl.MULTISAMPLE)
	gl.Enable(gl.FRAMEBUFFER_SRGB)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.ClearColor(0, 0, 0, 1)

	return nil
}

// Run calls g.Init, then runs the frame loop until Quit is called or the window is closed, then calls g.DeInit
func Run(g Game, w *Window) {

	assert.T(isInited, "engine.Init() was not called!")

	isRunning = true
	g.Init()

	for isRunning {

		frameStart()
		w.handleInputs()
		if input.IsQuitClicked() {
			Quit()
		}

		g.Update()
		if !isRunning {
			break
		}

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		g.Render()
		w.SDLWin.GLSwap()

		g.FrameEnd()
		if w.Rend != nil {
			w.Rend.FrameEnd()
		}
	}

	g.DeInit()
}

// Quit stops Run after the current frame
func Quit() {
	isRunning = false
}

func SetSrgbFramebuffer(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.FRAMEBUFFER_SRGB)
	} else {
		gl.Disable(gl.FRAMEBUFFER_SRGB)
	}
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}

func SetMSAA(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}
