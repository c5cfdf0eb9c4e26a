package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/snekecs/snek/internal/audio"
	"github.com/snekecs/snek/internal/config"
	"github.com/snekecs/snek/internal/core/event"
	"github.com/snekecs/snek/internal/data"
	"github.com/snekecs/snek/internal/game"
	"github.com/snekecs/snek/internal/input"
	"github.com/snekecs/snek/internal/persist"
	"github.com/snekecs/snek/internal/render"
	"github.com/snekecs/snek/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Result display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	v := fmt.Sprint(value)
	dotsLen := max(42-len(label)-len(v), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), v)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Game ──────────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/snek.toml"
	if p := os.Getenv("SNEK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p := os.Getenv("SNEK_LEVEL"); p != "" {
		cfg.Game.Level = p
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Optional score database
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var scores *persist.ScoreRepo
	db, err := persist.Open(startCtx, cfg.Database, log)
	switch {
	case errors.Is(err, persist.ErrDisabled):
		log.Info("score database disabled")
	case err != nil:
		return fmt.Errorf("database: %w", err)
	default:
		defer db.Close()
		if err := db.Migrate(startCtx); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		scores = persist.NewScoreRepo(db)
	}

	// 4. Level and rules
	level, err := data.LoadLevel(cfg.Game.Level)
	if err != nil {
		return fmt.Errorf("load level: %w", err)
	}
	rules, err := scripting.NewEngine(cfg.Scripting.Dir, cfg.Speed, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer rules.Close()

	keys, err := input.ParseKeyMap(cfg.Input.Keys)
	if err != nil {
		return fmt.Errorf("key map: %w", err)
	}

	// 5. Audio is optional: a speaker failure only costs the blip.
	player, err := audio.NewPlayer(cfg.Audio)
	if err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		player = audio.Disabled()
	}
	defer player.Close()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// 6. Terminal
	screen, err := render.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue := event.NewQueue(cfg.Input.QueueSize)
	g, err := game.New(game.Deps{
		Config: cfg,
		Level:  level,
		Screen: screen,
		Input:  queue,
		Rules:  rules,
		Sound:  player,
		Rand:   rand.New(rand.NewSource(seed)),
		Log:    log,
	})
	if err != nil {
		screen.Close()
		return fmt.Errorf("build game: %w", err)
	}
	go input.NewReader(screen, keys, queue, log).Run(ctx)

	// 7. Main loop. Closing the screen also releases the input reader.
	runErr := g.Run(ctx)
	screen.Close()
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("game loop: %w", runErr)
	}

	res := g.Result()
	log.Info("game finished",
		zap.String("level", res.Level),
		zap.Int("points", res.Points),
		zap.Int("apples", res.Apples),
		zap.Int("length", res.Length),
		zap.Uint64("ticks", res.Ticks),
		zap.Bool("alive", res.Alive))

	fmt.Println()
	printSection(res.Level)
	printStat("points", res.Points)
	printStat("apples", res.Apples)
	printStat("length", res.Length)
	printStat("ticks", res.Ticks)

	if scores == nil {
		return nil
	}
	return saveScore(scores, cfg, res)
}

func saveScore(repo *persist.ScoreRepo, cfg *config.Config, res game.Result) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := repo.Insert(ctx, persist.ScoreRow{
		PlayerName: cfg.Game.PlayerName,
		LevelName:  res.Level,
		Points:     res.Points,
		Apples:     res.Apples,
		Length:     res.Length,
		Ticks:      res.Ticks,
	}); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	printOK("score saved")

	top, err := repo.Top(ctx, res.Level, cfg.Database.TopScores)
	if err != nil {
		return fmt.Errorf("load top scores: %w", err)
	}
	fmt.Println()
	printSection("high scores")
	for i, row := range top {
		printStat(fmt.Sprintf("%2d. %s", i+1, row.PlayerName), row.Points)
	}
	return nil
}

// newLogger writes to the configured file; the terminal belongs to the
// game screen while it is open.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File == "" {
		zapCfg.OutputPaths = []string{"/dev/null"}
	} else {
		zapCfg.OutputPaths = []string{cfg.File}
	}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	return zapCfg.Build()
}
