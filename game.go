package main

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/flapper/assets"
	"github.com/milk9111/flapper/prefabs"
	"github.com/milk9111/flapper/scene"
)

type Game struct {
	frames int
	debug  bool
	seed   uint64

	host    *scene.Host
	play    *scene.PlayScene
	input   *Input
	watcher *prefabs.Watcher
	images  *assets.Cache
}

func NewGame(cfg prefabs.Config, seed uint64, debug bool, watcher *prefabs.Watcher) (*Game, error) {
	host := scene.NewHost()
	play, err := scene.NewPlayScene(cfg, host, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), 1/float64(ebiten.DefaultTPS))
	if err != nil {
		return nil, err
	}
	host.Attach(play)

	return &Game{
		debug:   debug,
		seed:    seed,
		host:    host,
		play:    play,
		input:   NewInput(),
		watcher: watcher,
		images:  assets.NewCache(),
	}, nil
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	for n := g.input.Activations(); n > 0; n-- {
		g.host.Activate()
	}
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	g.host.Update(time.Second / time.Duration(tps))

	return nil
}

// pollReload drains the watcher without blocking. A config that loads and
// validates is queued for the next round; anything else is logged and dropped.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}

	changed := false
drain:
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				break drain
			}
			if mod, ok := prefabs.ModTime(name); ok {
				log.Printf("prefabs: %s changed at %s", name, mod.Format(time.TimeOnly))
			} else {
				log.Printf("prefabs: %s changed", name)
			}
			changed = true
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				break drain
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			break drain
		}
	}
	if !changed {
		return
	}

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Printf("prefabs: reload rejected: %v", err)
		return
	}
	if err := g.play.SetPendingConfig(cfg); err != nil {
		log.Printf("prefabs: reload rejected: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	cfg := g.play.Config()
	screen.Fill(assets.OrDefault(cfg.World.Background.RGBA, assets.DefaultBackground))

	drawWorld(g.play.World(), screen, g.images)

	if g.debug {
		drawPhysicsDebug(g.play.Physics().Space(), screen)
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.2f  seed: %d\nround: %s (%s)  ended: %d\nrecycled: %d",
			ebiten.ActualFPS(), g.seed,
			g.play.Round().State(), g.play.Round().Reason(), g.play.Round().Ends(),
			g.play.Recycled(),
		))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.play.Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}
