package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	director "github.com/Mohammad-Palla/sherlock-game/core"
	"github.com/Mohammad-Palla/sherlock-game/core/backend"
	"github.com/Mohammad-Palla/sherlock-game/core/eventsource"
	"github.com/Mohammad-Palla/sherlock-game/core/mixer"
	"github.com/Mohammad-Palla/sherlock-game/core/session"
	"github.com/Mohammad-Palla/sherlock-game/internal/config"
)

var modeOverride string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a session with the terminal console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if modeOverride != "" {
			cfg.Mode = modeOverride
		}
		return run(cmd.Context(), cfg)
	},
}

func init() {
	runCmd.Flags().StringVarP(&modeOverride, "mode", "m", "", "event source mode (live or scripted)")
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mode, err := eventsource.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	bus := newMixBus(cfg.Audio)
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Warn("failed to close mix bus", "error", err)
		}
	}()

	var program *tea.Program
	var d *director.Director

	engine := mixer.New(bus,
		mixer.WithAssetsDir(cfg.Assets.Dir),
		mixer.WithMeterRate(cfg.Meter.FPS),
		mixer.WithVolumes(mixer.Volumes(cfg.Volumes)),
		mixer.WithLevelsCallback(func(agentID string, level float64) {
			d.ReportLevel(agentID, level)
		}),
	)

	d, err = director.New(
		director.WithMode(mode),
		director.WithMixer(engine),
		director.WithBackend(backend.NewClient(cfg.Backend.URL)),
		director.WithReducerOptions(session.WithSeed(seed)),
		director.WithSourceOptions(
			eventsource.WithRoom(cfg.Room),
			eventsource.WithFeedURL(cfg.FeedURL()),
		),
		director.WithNoticeCallback(func(message string) {
			if program != nil {
				program.Send(noticeMsg(message))
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create director: %w", err)
	}
	defer d.Close()
	d.SetVolumes(cfg.Volumes.Agents, cfg.Volumes.Ambience, cfg.Volumes.Sfx)

	program = tea.NewProgram(newConsole(ctx, d), tea.WithAltScreen(), tea.WithContext(ctx))
	unsubscribe := d.Subscribe(func(state session.State) {
		program.Send(stateMsg(state))
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console exited: %w", err)
	}
	return nil
}
