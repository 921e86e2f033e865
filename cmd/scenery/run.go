package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/scenery/audio"
	"github.com/lixenwraith/scenery/config"
	"github.com/lixenwraith/scenery/core"
	"github.com/lixenwraith/scenery/engine"
	"github.com/lixenwraith/scenery/event"
	"github.com/lixenwraith/scenery/parameter"
	"github.com/lixenwraith/scenery/service"
	"github.com/lixenwraith/scenery/status"
)

func runCmd(v *viper.Viper) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the terminal host",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, summary)
		},
	}

	cmd.Flags().BoolVar(&summary, "summary", true, "Print lifecycle counters on exit")

	return cmd
}

func run(parent context.Context, cfg config.Config, summary bool) error {
	if logFile := setupLogging(cfg.Log); logFile != nil {
		defer logFile.Close()
	}

	reg := prometheus.NewRegistry()
	metrics := status.NewMetrics(reg)

	h, err := buildHost(cfg, metrics)
	if err != nil {
		return err
	}

	// Services
	hub := service.NewHub()
	if err := hub.Register(audio.NewService()); err != nil {
		return err
	}
	if err := hub.InitAll(cfg.Audio); err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	if err := hub.StartAll(); err != nil {
		return fmt.Errorf("start services: %w", err)
	}
	defer hub.StopAll()

	hub.PublishAll(func(resource any) {
		switch r := resource.(type) {
		case audio.Player:
			engine.AddResource[audio.Player](h.app.World().Resources, r)
		default:
			log.Printf("[host] unrouted resource %T", resource)
		}
	})

	// Terminal
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	core.SetCrashCleanup(fini)
	defer fini()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	screen.HideCursor()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	h.app.AddHandler(engine.HandlerFunc(func(w *engine.World, cmd *engine.Commands, ev event.Event) {
		log.Printf("[host] quit requested on frame %d", ev.Frame)
		cancel()
	}, event.EventQuit))

	if err := h.app.Startup(); err != nil {
		return err
	}

	keys := make(chan *tcell.EventKey, 16)
	resized := make(chan struct{}, 1)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				select {
				case keys <- ev:
				case <-ctx.Done():
					return
				}
			case *tcell.EventResize:
				select {
				case resized <- struct{}{}:
				default:
				}
			}
		}
	})

	tick := time.NewTicker(h.app.Tick())
	defer tick.Stop()
	frame := time.NewTicker(parameter.FrameInterval)
	defer frame.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case ev := <-keys:
			if et, payload, ok := keyEvent(ev); ok {
				h.app.Emit(et, payload)
			}
		case <-tick.C:
			h.app.Update()
		case <-resized:
			screen.Sync()
		case <-frame.C:
			draw(screen, h)
		}
	}

	fini()
	if summary {
		return status.WriteSummary(os.Stdout, reg)
	}
	return nil
}

// draw renders the active state path, the entity tree and a key legend
func draw(screen tcell.Screen, h *host) {
	screen.Clear()
	width, height := screen.Size()

	header := tcell.StyleDefault.Bold(true)
	plain := tcell.StyleDefault
	dim := tcell.StyleDefault.Dim(true)

	drawText(screen, 0, 0, width, header, "state: "+h.app.States().PathString())
	drawText(screen, 0, 1, width, dim, fmt.Sprintf("frame %d  entities %d", h.app.World().Frame(), h.app.World().Count()))

	row := 3
	for _, line := range treeLines(h.app.World()) {
		if row >= height-1 {
			break
		}
		drawText(screen, 0, row, width, plain, line)
		row++
	}

	drawText(screen, 0, height-1, width, dim, "enter start  p pause  r resume  m menu  ` dev  x close  q quit")
	screen.Show()
}

func drawText(screen tcell.Screen, x, y, width int, style tcell.Style, text string) {
	for _, r := range text {
		if x >= width {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// shortInstance renders the first eight hex digits of a scene instance ID
func shortInstance(id uuid.UUID) string {
	return "[" + id.String()[:8] + "]"
}

// treeLines lists every live entity depth-first under its parentless ancestor, indented by depth
func treeLines(w *engine.World) []string {
	var lines []string
	var walk func(e core.Entity, depth int)
	walk = func(e core.Entity, depth int) {
		label := fmt.Sprintf("#%d", e)
		if name, ok := w.Components.Name.Get(e); ok {
			label = fmt.Sprintf("%s #%d", name.Name, e)
		}
		if info, ok := w.Components.SceneRoot.Get(e); ok {
			label += " " + shortInstance(info.Instance)
		}
		lines = append(lines, strings.Repeat("  ", depth)+label)
		for _, child := range w.Children(e) {
			walk(child, depth+1)
		}
	}

	for _, e := range w.Entities() {
		if _, hasParent := w.Parent(e); hasParent {
			continue
		}
		walk(e, 0)
	}
	return lines
}
