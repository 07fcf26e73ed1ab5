package engine

import "github.com/veandco/go-sdl2/sdl"

var (
	perfFreq       float64
	frameStartTick uint64
	dt             float32
)

func initTiming() {
	perfFreq = float64(sdl.GetPerformanceFrequency())
	frameStartTick = sdl.GetPerformanceCounter()
}

func frameStart() {
	now := sdl.GetPerformanceCounter()
	dt = float32(float64(now-frameStartTick) / perfFreq)
	frameStartTick = now
}

// DT is the time in seconds between the start of the last frame and the start of the current one
func DT() float32 {
	return dt
}
