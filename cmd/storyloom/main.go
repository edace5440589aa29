package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/vampirenirmal/storyloom/internal/agent"
	"github.com/vampirenirmal/storyloom/internal/config"
	"github.com/vampirenirmal/storyloom/internal/session"
	"github.com/vampirenirmal/storyloom/internal/storage"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	dryRun := flag.Bool("dry-run", false, "use the mock client instead of a real API")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(args[1:], *dryRun)
	case "plan":
		err = runPlan(args[1:])
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: storyloom [-v] [-dry-run] <command> [args]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  generate <bible.yaml>   generate every scene of the story")
	fmt.Fprintln(os.Stderr, "  plan <bible.yaml>       print per-scene requirements without generating")
}

func runGenerate(args []string, dryRun bool) error {
	biblePath, err := resolveBiblePath(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		if !dryRun {
			return fmt.Errorf("loading config: %w", err)
		}
		slog.Warn("Config unavailable, using defaults for dry run", "error", err)
		cfg = config.Default()
	}

	bible, err := session.LoadBible(biblePath)
	if err != nil {
		return err
	}

	var client agent.AIClient
	if dryRun {
		client = agent.NewMockClient()
	} else {
		client = agent.NewClient(cfg.AI.APIKey,
			agent.WithAPIConfig(cfg.AI.BaseURL, cfg.AI.Model),
			agent.WithTimeout(time.Duration(cfg.AI.Timeout)*time.Second),
			agent.WithRetry(cfg.Limits.MaxRetries),
			agent.WithRateLimit(cfg.Limits.RateLimit.RequestsPerMinute, cfg.Limits.RateLimit.BurstSize),
		)
	}

	sess, err := session.FromBible(bible, client)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Limits.TotalTimeout)
	defer cancelTimeout()

	scenes, genErr := sess.GenerateStory(ctx)

	archive := storage.NewSceneArchive(storage.NewFileSystem(cfg.Paths.OutputDir))
	dir := storage.StoryDir(sess.Title(), sess.ID(), time.Now())
	for _, scene := range scenes {
		if err := archive.SaveScene(ctx, dir, scene.Act, scene.Scene, scene.Content); err != nil {
			slog.Error("Archiving scene failed", "scene_id", scene.SceneID, "error", err)
		}
	}
	if err := archive.SaveManifest(ctx, dir, sess.Progress()); err != nil {
		slog.Error("Archiving manifest failed", "error", err)
	}

	if genErr != nil {
		return fmt.Errorf("story generation stopped after %d scenes: %w", len(scenes), genErr)
	}

	fmt.Printf("Generated %d scenes into %s\n", len(scenes), filepath.Join(cfg.Paths.OutputDir, dir))
	return nil
}

func runPlan(args []string) error {
	biblePath, err := resolveBiblePath(args)
	if err != nil {
		return err
	}

	bible, err := session.LoadBible(biblePath)
	if err != nil {
		return err
	}

	sess, err := session.FromBible(bible, agent.NewMockClient())
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d acts, %s / %s\n\n", sess.Title(), sess.TotalActs(),
		bible.Structure.Type, bible.Structure.ActStructure)

	for act := 1; act <= sess.TotalActs(); act++ {
		for scene := 1; scene <= sess.ScenesInAct(act); scene++ {
			req := sess.Requirements(act, scene)
			beat := "none"
			if req.StoryElements.CurrentBeat != nil {
				beat = req.StoryElements.CurrentBeat.Name
			}
			fmt.Printf("Act %d scene %d (pos %.2f): beat=%s subplots=%d reversals=%d\n",
				act, scene, req.Position, beat,
				len(req.StoryElements.ActiveSubplots),
				len(req.StoryElements.PendingReversals))
		}
	}

	return nil
}

func resolveBiblePath(args []string) (string, error) {
	if len(args) >= 1 {
		return args[0], nil
	}
	cfg, err := config.Load()
	if err == nil && cfg.Paths.BiblePath != "" {
		return cfg.Paths.BiblePath, nil
	}
	return "", fmt.Errorf("story bible path required (argument or paths.bible_path in config)")
}

