package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/darkmatter/internal/audio"
	"github.com/plus3/darkmatter/internal/config"
	"github.com/plus3/darkmatter/internal/game"
	"github.com/plus3/darkmatter/internal/highscore"
	"github.com/plus3/darkmatter/internal/logging"
	"github.com/plus3/darkmatter/internal/tty"
	"go.uber.org/zap"
)

const frameInterval = time.Second / 30

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "darkmatter-tty: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Configuration file (TOML or YAML).")
	mute := flag.Bool("mute", false, "Disable sound.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	// The terminal belongs to the game; log to a file or nowhere.
	if cfg.Logging.File == "" {
		cfg.Logging.File = os.DevNull
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer log.Sync()
	log, runID := logging.WithRun(log)

	scores, err := highscore.Open(cfg.HighScore.Path)
	if err != nil {
		return err
	}

	sounds := audio.NewService(cfg.Audio, log.Named("audio"))
	if err := sounds.Start(); err != nil {
		log.Warn("audio unavailable, playing silently", zap.Error(err))
	}
	defer sounds.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	vp := tty.NewViewport(cfg.World.Width, cfg.World.Height)
	vp.Update(screen.Size())
	atlas := tty.NewAtlas()
	renderer := tty.NewRenderer(vp)
	input := tty.NewInput(vp)

	ctx := game.NewContext(cfg, log, runID, scores, game.Frontend{
		Pointer:  input,
		Viewport: vp,
		Atlas:    atlas,
		Renderer: renderer,
		Keys:     input,
		HUD:      renderer,
		Sounds:   sounds,
	})
	g := game.New(ctx)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				vp.Update(screen.Size())
				screen.Sync()
			}
			input.Handle(ev)
			if input.Quit() {
				close(quit)
				log.Info("bye", zap.Float32("best", scores.Best()))
				return nil
			}
		case now := <-ticker.C:
			g.Frame(now.Sub(last).Seconds(), input.JustTouched())
			last = now
			renderer.Draw(screen)
		}
	}
}
