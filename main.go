package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/scrollscrub/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "show debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	assetDirs := flag.String("assets", ".,assets", "comma separated directories searched for frame images")
	watch := flag.Bool("watch", false, "reload prefabs from ./prefabs when they change")
	loadTimeout := flag.Duration("load-timeout", 0, "give up on a frame image after this long and use a placeholder (0 waits forever)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("scrollscrub")
	ebiten.SetRunnableOnUnfocused(true)

	game, err := NewGame(Options{
		AssetDirs:   strings.Split(*assetDirs, ","),
		LoadTimeout: *loadTimeout,
		Watch:       *watch,
		WatchDir:    prefabs.Dir,
		Debug:       *debug,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
