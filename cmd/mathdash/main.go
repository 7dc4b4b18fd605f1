//go:build cgo

package main

import (
	"os"

	"github.com/appengine-ltd/mathdash/internal/gui"
	"github.com/appengine-ltd/mathdash/internal/ui"
)

func main() {
	r, o, err := prepare(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	if r == nil {
		return
	}

	if o.tui {
		err = ui.NewApp(ui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			Controller: r.ctrl,
			Logger:     r.logger,
		}).Run()
	} else {
		err = gui.NewApp(gui.AppConfig{
			Version:    version,
			Commit:     commit,
			BuildDate:  date,
			Controller: r.ctrl,
			Logger:     r.logger,
			Seed:       r.cfg.Seed,
			AssetsDir:  o.assets,
		}).Run()
	}
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatal(err)
	}
}
