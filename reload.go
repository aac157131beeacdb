package main

import (
	"log"
	"path/filepath"

	"github.com/milk9111/scrollscrub/prefabs"
	"github.com/milk9111/scrollscrub/render"
)

// pollReload drains pending prefab changes without blocking the frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(filepath.Base(path))
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(file string) {
	if file == prefabs.PageFile {
		if err := g.loadPage(); err != nil {
			log.Printf("reload %s: %v", file, err)
			return
		}
		log.Printf("reloaded %s", file)
		return
	}

	var stale []string
	for _, s := range g.page.Sections {
		if s.SequenceFile == file {
			stale = append(stale, s.Player.Config().Name)
		}
		if s.VideoFile == file {
			stale = append(stale, s.VideoPlayer.Config().Name)
		}
	}
	if len(stale) == 0 {
		return
	}
	if err := g.page.ReplaceSequence(file); err != nil {
		log.Printf("reload %s: %v", file, err)
		return
	}
	for _, name := range stale {
		render.Forget(name + "/")
	}
	log.Printf("reloaded %s", file)
}
