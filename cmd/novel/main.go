package main

import (
	"embed"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/novel/internal/application/game"
	"github.com/younwookim/novel/internal/application/replay"
	"github.com/younwookim/novel/internal/application/scene"
	"github.com/younwookim/novel/internal/application/scene/screens"
	"github.com/younwookim/novel/internal/application/system"
	"github.com/younwookim/novel/internal/domain/narrative"
	"github.com/younwookim/novel/internal/infrastructure/config"
	"github.com/younwookim/novel/internal/infrastructure/render"
	"github.com/younwookim/novel/internal/infrastructure/resource"
	"github.com/younwookim/novel/internal/infrastructure/save"
)

//go:embed configs
var configFS embed.FS

const storyFile = "story.yaml"

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Parse command line flags
	configDir := flag.String("config", "", "Load configs and story from a directory instead of the built-in ones")
	assetDir := flag.String("assets", "", "Image directory (default $NOVEL_ASSET_DIR or ./assets)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json, or -record auto for a timestamped name)")
	replayFlag := flag.String("replay", "", "Play back a recorded session")
	flag.Parse()

	env, err := config.ParseEnv()
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	if env.LogFile != "" {
		f, err := os.OpenFile(env.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		log.SetOutput(io.MultiWriter(os.Stderr, f))
		defer log.SetOutput(os.Stderr)
	}

	// Load configurations, embedded unless a directory is given
	var (
		loader  *config.Loader
		storyFS fs.FS
	)
	if *configDir != "" {
		loader = config.NewLoader(*configDir)
		storyFS = os.DirFS(*configDir)
	} else {
		sub, err := fs.Sub(configFS, "configs")
		if err != nil {
			return fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(sub, "configs")
		storyFS = sub
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Env = env

	story, err := narrative.LoadScript(storyFS, storyFile)
	if err != nil {
		return fmt.Errorf("failed to load story: %w", err)
	}

	ctx, err := newContext(cfg, story, *assetDir)
	if err != nil {
		return fmt.Errorf("failed to set up: %w", err)
	}

	// Pick the event source
	var events game.EventSource = system.NewPoller()
	var recorder *replay.Recorder
	recordPath := replay.RecordPath(*recordFlag)
	switch {
	case *replayFlag != "":
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			return fmt.Errorf("failed to load replay: %w", err)
		}
		replayer, err := replay.NewReplayer(*data)
		if err != nil {
			return fmt.Errorf("failed to load replay: %w", err)
		}
		log.Printf("Replaying %s (%d frames)", *replayFlag, replayer.TotalFrames())
		events = replayer
	case recordPath != "":
		seed := time.Now().UnixNano()
		recorder = replay.NewRecorder(seed, storyFile)
		events = recorder.Wrap(events)
		log.Printf("Recording enabled: %s (seed: %d)", recordPath, seed)
	}

	builder := screens.Builder{}
	g := game.New(ctx, builder.Initial(ctx), builder, events)
	g.SetDT(1.0 / float64(env.TPS))

	// Set up ebiten
	ebiten.SetWindowSize(env.Width, env.Height)
	ebiten.SetWindowTitle(cfg.Engine.UI.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(env.TPS)

	// Run game
	runErr := ebiten.RunGame(g)

	if recorder != nil {
		recorder.Stop()
		if err := recorder.Save(recordPath); err != nil {
			log.Printf("Failed to save recording: %v", err)
		} else {
			log.Printf("Recording saved: %s (%d frames)", recordPath, recorder.FrameCount())
		}
	}
	return runErr
}

// newContext opens the per-user stores and resources shared by every screen.
func newContext(cfg *config.Config, story narrative.Source, assetDir string) (*scene.Context, error) {
	if assetDir == "" {
		assetDir = cfg.Env.AssetDir
	}
	if assetDir == "" {
		assetDir = "assets"
	}

	userDir, err := cfg.Env.UserPath(cfg.Engine.ShortGameName)
	if err != nil {
		return nil, err
	}
	userStore := config.NewUserStore(userDir)
	user, err := userStore.LoadOrCreate()
	if err != nil {
		return nil, err
	}

	savePath, err := cfg.Env.SavePath(cfg.Engine.ShortGameName)
	if err != nil {
		return nil, err
	}

	fonts, err := render.LoadFonts()
	if err != nil {
		return nil, err
	}

	log.Printf("Assets: %s, save: %s", assetDir, savePath)
	return &scene.Context{
		Config:    cfg,
		Images:    resource.NewCache(os.DirFS(assetDir), cfg.Engine.MissingImagePlaceholders),
		Fonts:     fonts,
		Saves:     save.NewStore(savePath),
		Story:     story,
		User:      user,
		UserStore: userStore,
		Width:     cfg.Env.Width,
		Height:    cfg.Env.Height,
	}, nil
}
