package engine

// Game is driven by Run. All methods are called on the thread that owns the GL context.
type Game interface {
	Init()

	Update()
	Render()
	FrameEnd()

	DeInit()
}
