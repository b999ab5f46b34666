package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/darkmatter/ecs/debugui"
	debugebiten "github.com/plus3/darkmatter/ecs/debugui/ebiten"
	"github.com/plus3/darkmatter/internal/audio"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/game"
	"github.com/plus3/darkmatter/internal/gfx"
	"github.com/plus3/darkmatter/internal/gfx/viewport"
	"github.com/plus3/darkmatter/internal/highscore"
	"github.com/plus3/darkmatter/internal/logging"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "darkmatter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Configuration file (TOML or YAML).")
	debug := flag.Bool("debug", false, "Enable the debug cheats and the F1 ECS overlay.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *debug {
		cfg.Debug.Enabled = true
		cfg.Debug.Overlay = true
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()
	log, runID := logging.WithRun(log)
	log.Info("starting", zap.String("config", *configPath))

	scores, err := highscore.Open(cfg.HighScore.Path)
	if err != nil {
		return err
	}

	sounds := audio.NewService(cfg.Audio, log.Named("audio"))
	if err := sounds.Start(); err != nil {
		log.Warn("audio unavailable, playing silently", zap.Error(err))
	}
	defer sounds.Close()

	camera := viewport.NewCamera(cfg.World.Width/2, cfg.World.Height/2)
	vp := viewport.New(cfg.World.Width, cfg.World.Height, camera)
	vp.Update(cfg.Window.Width, cfg.Window.Height)
	renderer := gfx.NewRenderer(vp, uint64(runID.ID()))
	input := gfx.NewInput()

	ctx := game.NewContext(cfg, log, runID, scores, game.Frontend{
		Pointer:  input,
		Viewport: vp,
		Atlas:    gfx.NewProceduralAtlas(),
		Renderer: renderer,
		Camera:   camera,
		Keys:     input,
		HUD:      renderer,
		Sounds:   sounds,
	})

	eg := &ebitenGame{
		Game:     game.New(ctx),
		Input:    input,
		Renderer: renderer,
		Viewport: vp,
	}

	if cfg.Debug.Overlay {
		eg.Overlay = &debugebiten.OverlayRunner{
			Backend: debugebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height),
			Overlay: debugui.NewOverlay(ctx.Storage, ctx.Scheduler),
		}
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(eg); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info("bye", zap.Float32("best", scores.Best()))
	return nil
}
