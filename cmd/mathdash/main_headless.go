//go:build !cgo
// +build !cgo

package main

import (
	"os"

	"github.com/appengine-ltd/mathdash/internal/ui"
)

// Without cgo there is no raylib window, so the terminal front-end is used
// regardless of --tui.
func main() {
	r, _, err := prepare(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	if r == nil {
		return
	}
	err = ui.NewApp(ui.AppConfig{
		Version:    version,
		Commit:     commit,
		BuildDate:  date,
		Controller: r.ctrl,
		Logger:     r.logger,
	}).Run()
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatal(err)
	}
}
