// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package filter

import (
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/gviegas/ngfx/internal/errs"
	"github.com/gviegas/ngfx/internal/logx"
)

// WatchSource reloads f's Code from filename whenever the file changes,
// invoking onReload after each successful reload so the owner can
// re-trigger shader regeneration. It returns a stop function releasing
// the watch. Development aid only; failures after the initial load are
// logged, not fatal.
func (f *Filter) WatchSource(filename string, onReload func()) (stop func(), err error) {
	code, err := os.ReadFile(filename)
	if err != nil {
		return nil, errs.New(pkgName, errs.IO, err.Error())
	}
	f.Code = string(code)
	if err := f.validate(); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.New(pkgName, errs.External, err.Error())
	}
	if err := w.Add(filename); err != nil {
		w.Close()
		return nil, errs.New(pkgName, errs.External, err.Error())
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
					continue
				}
				code, err := os.ReadFile(filename)
				if err != nil {
					logx.Warnf("filter %s: reload: %v", f.Name, err)
					continue
				}
				prev := f.Code
				f.Code = string(code)
				if err := f.validate(); err != nil {
					logx.Warnf("filter %s: reload: %v", f.Name, err)
					f.Code = prev
					continue
				}
				logx.Debugf("filter %s: reloaded from %s", f.Name, filename)
				if onReload != nil {
					onReload()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logx.Warnf("filter %s: watch: %v", f.Name, err)
			}
		}
	}()
	return func() { w.Close() }, nil
}
