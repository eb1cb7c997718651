package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/log"
)

// Name of the configuration file at the project root
const fileName = "config.json"

// Load reads the configuration file, or applies defaults, if none
// present. The file is searched for by walking up the directory tree
// until the project root is reached.
func Load() (err error) {
	path, err := locate()
	if err != nil {
		return
	}
	c, err := decode(path)
	if err != nil {
		return
	}
	return Set(c)
}

// Locate the configuration file by walking up parent directories until a
// go.mod or the system root is reached. Returns "", if no file exists.
func locate() (path string, err error) {
	prefix := ""
	for {
		path = filepath.Join(prefix, fileName)
		_, err = os.Stat(path)
		if err == nil {
			return
		}
		if !os.IsNotExist(err) {
			return
		}

		_, err = os.Stat(filepath.Join(prefix, "go.mod"))
		switch {
		case err == nil:
			return "", nil // Reached the project root dir
		case os.IsNotExist(err):
			var abs string
			if prefix != "" {
				abs, err = filepath.Abs(prefix)
				if err != nil {
					return
				}
				if abs == "/" {
					return "", nil // Reached the system root dir
				}
			}
			prefix = filepath.Join("..", prefix)
		default:
			return
		}
	}
}

// Decode the configuration file over the package defaults
func decode(path string) (c Configs, err error) {
	c = Defaults
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&c)
	return
}

// Watch reloads the configuration, whenever the configuration file is
// rewritten. Errors are logged and the last good configuration is kept.
func Watch() (err error) {
	path, err := locate()
	if err != nil || path == "" {
		return
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	err = w.Add(path)
	if err != nil {
		w.Close()
		return
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				c, err := decode(path)
				if err == nil {
					err = Set(c)
				}
				if err != nil {
					log.Errorf("config: reload failed: %s", err)
				} else {
					log.Info("config: reloaded")
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Errorf("config: watcher: %s", err)
			}
		}
	}()

	return
}
