// Command oxy-forward opens a window and renders the demo scene: a brick wall, a dragoon, a grassy terrain, an
// orbiting sun/planet/moon hierarchy and a mirror sphere, lit by point, spot and directional lights with a light
// that follows a Bézier path.
package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-forward/common"
	"github.com/Carmen-Shannon/oxy-forward/engine"
	"github.com/Carmen-Shannon/oxy-forward/engine/camera"
	"github.com/Carmen-Shannon/oxy-forward/engine/config"
	"github.com/Carmen-Shannon/oxy-forward/engine/frame"
	"github.com/Carmen-Shannon/oxy-forward/engine/light"
	"github.com/Carmen-Shannon/oxy-forward/engine/loader"
	"github.com/Carmen-Shannon/oxy-forward/engine/model"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderable"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-forward/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-forward/engine/scene"
	"github.com/Carmen-Shannon/oxy-forward/engine/transform"
	"github.com/Carmen-Shannon/oxy-forward/engine/window"
)

func main() {
	configPath := flag.String("config", "", "TOML render config, reloaded when the file changes")
	assetDir := flag.String("assets", "resources", "directory holding models/, textures/ and skybox/")
	shaderDir := flag.String("shaders", frame.DefaultShaderDir, "directory holding the pass shaders")
	vsync := flag.Bool("vsync", true, "wait for vertical sync when presenting")
	profile := flag.Bool("profile", false, "log frame timing and draw counts every second")
	saveConfig := flag.Bool("save-config", false, "write the render toggles back to -config on exit")
	msaaSamples := flag.Int("msaa", int(renderer.MSAA4x), "multisample count for every pass: 1, 4, 8 or 16")
	software := flag.Bool("software", false, "use the fallback (software) adapter instead of a hardware GPU")
	flag.Parse()

	msaa, err := renderer.ParseMSAASampleCount(*msaaSamples)
	if err != nil {
		log.Fatalf("-msaa: %v", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("render config: %v", err)
		}
	}

	// ── Window + Renderer ───────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle("oxy-forward"),
		window.WithWidth(1024),
		window.WithHeight(1024),
		window.WithMinSize(320, 240),
		window.WithMaxSize(3840, 2160),
	)
	defer win.Close()

	presentMode := renderer.PresentModeVSync
	if !*vsync {
		presentMode = renderer.PresentModeUncapped
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(*software),
	)

	// ── Assets ──────────────────────────────────────────────────────────
	ld := loader.NewLoader(loader.BackendTypeGLTF, loader.WithAssetRoot(*assetDir))
	defer ld.Close()

	assets, err := loadAssets(ld)
	if err != nil {
		log.Fatalf("assets: %v", err)
	}

	backend, err := frame.NewGPUBackend(r, assets.skybox, frame.WithShaderDir(*shaderDir))
	if err != nil {
		var buildErr *shader.BuildError
		if errors.As(err, &buildErr) {
			log.Fatalf("shader build failed: %v", buildErr)
		}
		log.Fatalf("frame backend: %v", err)
	}
	fr := frame.NewFrameRenderer(backend)

	// ── Scene ───────────────────────────────────────────────────────────
	sc, err := buildScene(cfg, assets)
	if err != nil {
		log.Fatalf("scene: %v", err)
	}

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(win, sc, fr,
		engine.WithSurface(r),
		engine.WithProfiling(*profile),
	)
	bindKeys(eng)

	if *configPath != "" {
		watcher, err := config.NewWatcher(*configPath)
		if err != nil {
			log.Printf("[config] hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			eng.SetTickCallback(func(float32) {
				if next, ok := watcher.Latest(); ok {
					sc.SetConfig(next)
				}
			})
		}
	}

	if err := eng.Run(); err != nil {
		log.Printf("engine stopped: %v", err)
	}

	if *saveConfig && *configPath != "" {
		if err := config.Save(*configPath, sc.Config()); err != nil {
			log.Printf("[config] %v", err)
		}
	}
}

// demoAssets is everything read from disk before the scene is assembled.
type demoAssets struct {
	wall, dragoon, terrain                 model.Model
	wallDiffuse, wallNormal, grass, sunMap material.Texture
	skybox                                 material.Texture
}

func loadAssets(ld loader.Loader) (demoAssets, error) {
	var a demoAssets
	var err error

	if a.wall, err = ld.LoadMesh(filepath.Join("models", "brickwall.glb")); err != nil {
		return a, err
	}
	if a.dragoon, err = ld.LoadMesh(filepath.Join("models", "dragoon.glb")); err != nil {
		return a, err
	}
	if a.terrain, err = ld.LoadMesh(filepath.Join("models", "grassy_terrain.glb")); err != nil {
		return a, err
	}

	colorMaps, err := ld.LoadTextures([]string{
		filepath.Join("textures", "alley-brick-wall_albedo.png"),
		filepath.Join("textures", "grass1-albedo3.png"),
		filepath.Join("textures", "2k_sun.jpg"),
	})
	if err != nil {
		return a, err
	}
	a.wallDiffuse, a.grass, a.sunMap = colorMaps[0], colorMaps[1], colorMaps[2]

	// normal maps hold vectors, not colors
	if a.wallNormal, err = ld.LoadTexture(filepath.Join("textures", "alley-brick-wall_normal-ogl.png"), material.WithLinear()); err != nil {
		return a, err
	}

	var faces [material.CubeFaceCount]string
	for i, name := range []string{"right", "left", "top", "bottom", "front", "back"} {
		faces[i] = filepath.Join("skybox", name+".jpg")
	}
	if a.skybox, err = ld.LoadCubemap(faces, material.WithName("skybox")); err != nil {
		return a, err
	}
	return a, nil
}

func buildScene(cfg config.RenderConfig, a demoAssets) (scene.Scene, error) {
	// ── Cameras ─────────────────────────────────────────────────────────
	newCamera := func(pos, forward [3]float32) camera.Camera {
		return camera.NewCamera(
			camera.WithFov(common.DegToRad(80)),
			camera.WithAspect(1),
			camera.WithNear(0.1),
			camera.WithFar(50),
			camera.WithController(camera.NewCameraController(
				camera.WithPosition(pos),
				camera.WithForward(forward),
			)),
		)
	}
	sc := scene.NewScene("forward-demo",
		newCamera([3]float32{0, 2, -8}, [3]float32{0, 0, 4}),
		newCamera([3]float32{5, 5, 5}, [3]float32{-5, -5, -5}),
		scene.WithConfig(cfg),
	)

	// ── Lights ──────────────────────────────────────────────────────────
	lights := sc.Lights()
	lights.SetDirectionalLight(light.NewDirectionalLight(
		light.WithDirection(-1, -1, -1),
		light.WithDiffuse(1, 1, 1),
		light.WithSpecular(1, 1, 1),
	))

	// slot 0 follows the Bézier path
	lights.AddPointLight(light.NewPointLight(
		light.WithPosition(0, 0, 0),
		light.WithDiffuse(0.7, 0, 0),
		light.WithSpecular(1, 0, 0),
		light.WithMaxDistance(50),
		light.WithMobility(common.MobilityDynamic),
	))
	lights.AddPointLight(light.NewPointLight(
		light.WithPosition(3, 2, -4),
		light.WithDiffuse(0.6, 0.6, 0),
		light.WithSpecular(1, 1, 0),
		light.WithMaxDistance(50),
	))
	lights.AddPointLight(light.NewPointLight(
		light.WithPosition(-3, 2, -4),
		light.WithDiffuse(0.2, 0.7, 0.7),
		light.WithSpecular(0.7, 1, 1),
		light.WithMaxDistance(50),
	))

	spot, err := light.NewSpotLight(
		light.WithPosition(0, 2, 4),
		light.WithDirection(0, -1, -3),
		light.WithCutoffDegrees(12.5, 17.5),
		light.WithDiffuse(0.8, 0.8, 0.8),
		light.WithSpecular(1, 1, 1),
		light.WithMaxDistance(50),
	)
	if err != nil {
		return nil, err
	}
	lights.AddSpotLight(spot)

	// ── Static geometry ─────────────────────────────────────────────────
	store := sc.Store()
	store.Add(renderable.NewRenderable(
		renderable.WithName("brickwall"),
		renderable.WithMesh(a.wall),
		renderable.WithDiffuseMap(a.wallDiffuse),
		renderable.WithNormalMap(a.wallNormal),
	))

	store.Add(renderable.NewRenderable(
		renderable.WithName("dragoon"),
		renderable.WithMesh(a.dragoon),
		renderable.WithWorld(common.TRS([3]float32{0, 0, -3}, [3]float32{3, 3, 3})),
	))

	store.Add(renderable.NewRenderable(
		renderable.WithName("terrain"),
		renderable.WithMesh(a.terrain),
		renderable.WithDiffuseMap(a.grass),
	))

	store.Add(renderable.NewRenderable(
		renderable.WithName("mirror"),
		renderable.WithMesh(model.NewModel(model.WithName("mirror-sphere"), model.WithMesh(model.BuildSphere(1, 32, 64)))),
		renderable.WithWorld(common.TRS([3]float32{3, 1, 0}, [3]float32{1, 1, 1})),
		renderable.WithMode(renderable.DrawModeReflective),
	))

	// ── Sun / planet / moon ─────────────────────────────────────────────
	arena := sc.Arena()
	sun, err := arena.Add(common.TRS([3]float32{0, 8, 0}, [3]float32{2, 2, 2}), transform.NoParent)
	if err != nil {
		return nil, err
	}
	planet, err := arena.Add(common.TRS([3]float32{0, 0, -4}, [3]float32{0.5, 0.5, 0.5}), sun)
	if err != nil {
		return nil, err
	}
	moon, err := arena.Add(common.TRS([3]float32{0, 2, 0}, [3]float32{0.5, 0.5, 0.5}), planet)
	if err != nil {
		return nil, err
	}
	if err := sc.SetHierarchy(scene.Hierarchy{Sun: sun, Planet: planet, Moon: moon}); err != nil {
		return nil, err
	}

	sphere := model.NewModel(model.WithName("sphere"), model.WithMesh(model.BuildSphere(1, 32, 64)))
	for _, body := range []struct {
		name    string
		node    transform.NodeID
		diffuse material.Texture
	}{
		{"sun", sun, a.sunMap},
		{"planet", planet, nil},
		{"moon", moon, nil},
	} {
		options := []renderable.RenderableBuilderOption{
			renderable.WithName(body.name),
			renderable.WithMesh(sphere),
			renderable.WithNode(body.node),
			renderable.WithMobility(common.MobilityDynamic),
		}
		if body.diffuse != nil {
			options = append(options, renderable.WithDiffuseMap(body.diffuse))
		}
		store.Add(renderable.NewRenderable(options...))
	}

	// pull the initial world matrices so the first frame is correct before any tick
	if err := store.SyncFromArena(arena); err != nil {
		return nil, err
	}
	return sc, nil
}

// bindKeys maps a key to every render toggle. Space swaps the cameras and Tab turns mouse/keyboard control of
// the active camera on and off.
func bindKeys(eng engine.Engine) {
	sc := eng.Scene()
	toggles := map[uint32]func(cfg *config.RenderConfig){
		common.KeyL: func(cfg *config.RenderConfig) { cfg.ShowLightsAsPoints = !cfg.ShowLightsAsPoints },
		common.KeyB: func(cfg *config.RenderConfig) { cfg.UseBlinnCorrection = !cfg.UseBlinnCorrection },
		common.Key1: func(cfg *config.RenderConfig) { cfg.UseDiffuseMap = !cfg.UseDiffuseMap },
		common.Key2: func(cfg *config.RenderConfig) { cfg.UseNormalMap = !cfg.UseNormalMap },
		common.KeyU: func(cfg *config.RenderConfig) { cfg.Sunlight = !cfg.Sunlight },
		common.KeyP: func(cfg *config.RenderConfig) { cfg.PauseBezierPath = !cfg.PauseBezierPath },
		common.KeyH: func(cfg *config.RenderConfig) { cfg.PauseHierarchyTransform = !cfg.PauseHierarchyTransform },
		common.KeyC: func(cfg *config.RenderConfig) { cfg.ShowInactiveCamera = !cfg.ShowInactiveCamera },
		common.KeyV: func(cfg *config.RenderConfig) { cfg.ShowBezierPath = !cfg.ShowBezierPath },
	}

	eng.Window().SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeySpace:
			sc.ToggleCamera()
			return
		case common.KeyTab:
			cam := sc.ActiveCamera()
			cam.SetInteractionEnabled(!cam.InteractionEnabled())
			return
		}
		if toggle, ok := toggles[keyCode]; ok {
			sc.UpdateConfig(toggle)
		}
	})
}
