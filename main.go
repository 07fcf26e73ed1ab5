package main

import (
	"flag"
	"math"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nrend/config"
	"github.com/bloeys/nrend/engine"
	"github.com/bloeys/nrend/input"
	"github.com/bloeys/nrend/lights"
	"github.com/bloeys/nrend/logging"
	"github.com/bloeys/nrend/materials"
	"github.com/bloeys/nrend/meshes"
	"github.com/bloeys/nrend/renderer/rend3dgl"
	"github.com/bloeys/nrend/shaders"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	camRotSpeed    = 0.01
	camKeyRotSpeed = 1.5
	camZoomSpeed   = 1
	camMinDist     = 2
	camMaxDist     = 40

	rotatingCubeSpeedDeg = 45
	pointLightSpeedDeg   = 30
)

// orbitCam looks at the origin from a point on a sphere around it
type orbitCam struct {
	Yaw, Pitch, Dist float32
	Fov              float32
	AspectRatio      float32

	ViewMat gglm.Mat4
	ProjMat gglm.Mat4
}

// Reset moves the camera back to where the demo starts
func (c *orbitCam) Reset() {
	c.Yaw = 0.6
	c.Pitch = 0.4
	c.Dist = 12
}

func (c *orbitCam) Update() {

	c.Pitch = float32(math.Max(-1.5, math.Min(1.5, float64(c.Pitch))))
	c.Dist = float32(math.Max(camMinDist, math.Min(camMaxDist, float64(c.Dist))))

	cosPitch := float32(math.Cos(float64(c.Pitch)))
	pos := gglm.NewVec3(
		c.Dist*cosPitch*float32(math.Sin(float64(c.Yaw))),
		c.Dist*float32(math.Sin(float64(c.Pitch))),
		c.Dist*cosPitch*float32(math.Cos(float64(c.Yaw))),
	)

	target := gglm.NewVec3(0, 0, 0)
	up := gglm.NewVec3(0, 1, 0)
	c.ViewMat = gglm.LookAtRH(&pos, &target, &up).Mat4
	c.ProjMat = gglm.Perspective(c.Fov, c.AspectRatio, 0.1, 100)
}

type drawable struct {
	Prim  *meshes.Primitive
	TrMat gglm.TrMat
}

type Game struct {
	Cfg  config.Config
	Win  *engine.Window
	Rend *rend3dgl.Rend3DGL

	Cache     *shaders.ProgramCache
	LightBuf  *lights.LightBuffer
	Lights    []lights.Light
	Ambient   gglm.Vec4
	pointRotY float32

	pointLightOff bool
	cubePaused    bool

	Cam          orbitCam
	Scene        []*drawable
	RotatingCube *drawable
}

func main() {

	cfgPath := flag.String("config", "", "path to a .toml or .yaml config file")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {

		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			logging.ErrLog.Fatalln("Failed to load config. Err:", err)
		}
	}

	if cfg.Log.File != "" {
		logging.SetLogFile(cfg.Log.File, cfg.Log.MaxSizeMB)
		defer logging.CloseLogFile()
	}

	//Init engine
	err := engine.Init()
	if err != nil {
		logging.ErrLog.Fatalln("Failed to init engine. Err:", err)
	}

	//Create window
	window, err := engine.CreateOpenGLWindowCentered(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, engine.WindowFlags_RESIZABLE|engine.WindowFlags_ALLOW_HIGHDPI)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create window. Err: ", err)
	}

	engine.SetMSAA(cfg.Window.MSAA)
	engine.SetVSync(cfg.Window.VSync)
	engine.SetSrgbFramebuffer(cfg.Window.SrgbFramebuffer)

	cache, err := shaders.NewProgramCache(window.Ctx, cfg.Render.ProgramCacheSize)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create program cache. Err: ", err)
	}

	game := &Game{
		Cfg:   cfg,
		Win:   window,
		Cache: cache,
		Rend:  rend3dgl.NewRend3DGL(window.Ctx, cache),
	}
	window.Rend = game.Rend
	window.EventCallbacks = append(window.EventCallbacks, game.handleWindowEvents)

	engine.Run(game, window)
}

func (g *Game) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			g.updateAspectRatio()
		}
	}
}

func (g *Game) updateAspectRatio() {

	w, h := g.Win.DrawableSize()
	if w <= 0 || h <= 0 {
		return
	}

	g.Cam.AspectRatio = float32(w) / float32(h)
	g.Cam.Update()
}

func (g *Game) Init() {

	g.Cam = orbitCam{Fov: 45 * gglm.Deg2Rad}
	g.Cam.Reset()
	g.updateAspectRatio()

	n := g.Cfg.Render.NumberOfLights

	groundMat := materials.NewPhongMaterial("ground", materials.ColorFromSRGB8(90, 110, 90, 255), n)
	groundMat.Shininess = 4

	cubeMat := materials.NewPhongMaterial("cube", materials.ColorFromSRGB8(200, 80, 60, 255), n)
	sphereMat := materials.NewPhongMaterial("sphere", materials.ColorFromSRGB8(70, 120, 220, 255), n)
	sphereMat.Shininess = 64

	wireMat := materials.NewBasicMaterial("wire", gglm.NewVec4(1, 1, 1, 1))
	pointsMat := materials.NewBasicMaterial("points", materials.ColorFromSRGB8(255, 220, 80, 255))

	plane, err := meshes.NewPlane(groundMat, meshes.Mode_Triangles)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create plane. Err:", err)
	}

	cube, err := meshes.NewCube(cubeMat, false, meshes.Mode_Triangles)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create cube. Err:", err)
	}

	sphere, err := meshes.NewSphere(sphereMat, g.Cfg.Render.SphereLatitudeSegments, g.Cfg.Render.SphereLongitudeSegments, meshes.Mode_Triangles)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create sphere. Err:", err)
	}

	// Same vertex data as the sphere, drawn differently
	wireSphere, err := meshes.FromExisting(sphere, wireMat, meshes.Mode_LineStrip)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create wire sphere. Err:", err)
	}

	pointsSphere, err := meshes.FromExisting(*sphere, pointsMat, meshes.Mode_Points)
	if err != nil {
		logging.ErrLog.Fatalln("Failed to create points sphere. Err:", err)
	}

	groundTrMat := gglm.NewTrMatWithPos(0, -1.5, 0)
	groundTrMat.Scale(20, 1, 20)

	g.RotatingCube = &drawable{Prim: cube, TrMat: gglm.NewTrMatWithPos(-3, 0, 0)}
	g.Scene = []*drawable{
		{Prim: plane, TrMat: groundTrMat},
		g.RotatingCube,
		{Prim: sphere, TrMat: gglm.NewTrMatWithPos(3, 0, 0)},
		{Prim: wireSphere, TrMat: gglm.NewTrMatWithPos(0, 0, -3)},
		{Prim: pointsSphere, TrMat: gglm.NewTrMatWithPos(0, 0, 3)},
	}

	g.Lights = []lights.Light{
		lights.NewDirectionalLight(gglm.NewVec3(-0.3, 1, 0.5)),
		lights.NewPointLight(gglm.NewVec3(0, 3, 4)),
	}
	g.Lights[0].Diffuse = gglm.NewVec4(0.6, 0.6, 0.6, 1)
	g.Ambient = gglm.NewVec4(0.08, 0.08, 0.1, 1)

	g.LightBuf = lights.NewLightBuffer(g.Win.Ctx, n)
	g.Rend.SetLights(g.LightBuf)

	logging.InfoLog.Printf("Scene ready with %d primitives and %d lights (block size %d)\n", len(g.Scene), len(g.Lights), n)
}

func (g *Game) Update() {

	if input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	if input.MouseDoubleClicked(sdl.BUTTON_LEFT) {
		g.Cam.Reset()
	} else if input.MouseDown(sdl.BUTTON_LEFT) {
		dx, dy := input.GetMouseMotion()
		g.Cam.Yaw -= float32(dx) * camRotSpeed
		g.Cam.Pitch += float32(dy) * camRotSpeed
	}

	keyRot := camKeyRotSpeed * engine.DT()
	if input.KeyDown(sdl.K_LEFT) {
		g.Cam.Yaw -= keyRot
	}
	if input.KeyDown(sdl.K_RIGHT) {
		g.Cam.Yaw += keyRot
	}
	if input.KeyDown(sdl.K_UP) {
		g.Cam.Pitch += keyRot
	}
	if input.KeyDown(sdl.K_DOWN) {
		g.Cam.Pitch -= keyRot
	}

	g.Cam.Dist -= float32(input.GetMouseWheelYNorm()) * camZoomSpeed
	g.Cam.Update()

	if input.KeyReleased(sdl.K_SPACE) {
		g.cubePaused = !g.cubePaused
	}

	if input.MouseClicked(sdl.BUTTON_RIGHT) {
		g.pointLightOff = !g.pointLightOff
	}

	if !g.cubePaused {
		g.RotatingCube.TrMat.Rotate(rotatingCubeSpeedDeg*gglm.Deg2Rad*engine.DT(), 1, 1, 0)
	}

	// Point light circles the scene
	g.pointRotY += pointLightSpeedDeg * gglm.Deg2Rad * engine.DT()
	g.Lights[1].Position = gglm.NewVec4(4*float32(math.Sin(float64(g.pointRotY))), 3, 4*float32(math.Cos(float64(g.pointRotY))), 1)
}

func (g *Game) Render() {

	activeLights := g.Lights
	if g.pointLightOff {
		// Unfilled slots of the light block are zero
		activeLights = g.Lights[:1]
	}

	eyeLights := make([]lights.Light, len(activeLights))
	for i := range activeLights {
		eyeLights[i] = activeLights[i].EyeSpace(&g.Cam.ViewMat)
	}
	g.LightBuf.Upload(eyeLights, g.Ambient)

	for _, d := range g.Scene {

		modelView := g.Cam.ViewMat.Clone().Mul(&d.TrMat.Mat4)
		if err := g.Rend.DrawPrimitive(d.Prim, modelView, &g.Cam.ProjMat); err != nil {
			logging.ErrLog.Printf("Failed to draw primitive with material '%s'. Err: %v\n", d.Prim.Material.Name, err)
		}
	}
}

func (g *Game) FrameEnd() {
}

func (g *Game) DeInit() {
	g.Rend.Delete()
	g.LightBuf.Delete()
	g.Cache.Purge()
	g.Win.Destroy()
}
