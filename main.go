package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/flapper/prefabs"
)

func main() {
	seed := flag.Uint64("seed", 0, "course seed (0 picks a random one)")
	debug := flag.Bool("debug", false, "draw physics shapes and round state")
	watch := flag.Bool("watch", false, "reload prefabs from disk when they change (applied on the next round)")
	flag.Parse()

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if *seed == 0 {
		*seed = rand.Uint64()
	}
	log.Printf("flapper: seed %d", *seed)

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("watch %s: %v (hot reload disabled)", prefabs.Dir, err)
		} else {
			defer watcher.Close()
		}
	}

	game, err := NewGame(cfg, *seed, *debug, watcher)
	if err != nil {
		log.Fatalf("new game: %v", err)
	}

	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle("flapper")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
