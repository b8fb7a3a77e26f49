//go:build !nogui

package gui

import (
	"strings"

	"imgsort/internal/config"
	"imgsort/internal/log"
	"imgsort/pkg/types"

	"fyne.io/fyne/v2"
)

var namedKeys = map[string]fyne.KeyName{
	"delete":    fyne.KeyDelete,
	"backspace": fyne.KeyBackspace,
	"enter":     fyne.KeyReturn,
	"space":     fyne.KeySpace,
	"esc":       fyne.KeyEscape,
	"tab":       fyne.KeyTab,
	"left":      fyne.KeyLeft,
	"right":     fyne.KeyRight,
	"up":        fyne.KeyUp,
	"down":      fyne.KeyDown,
}

// fyneKey maps a config key name onto a fyne key. Modifier combinations
// have no single fyne key and are reported as not ok.
func fyneKey(name string) (fyne.KeyName, bool) {
	name = strings.ToLower(name)
	if k, ok := namedKeys[name]; ok {
		return k, true
	}
	if strings.Contains(name, "+") || len(name) != 1 {
		return "", false
	}
	return fyne.KeyName(strings.ToUpper(name)), true
}

// keyBindings builds the typed-key table from the config
func keyBindings(cfg *config.Config) map[fyne.KeyName]types.Control {
	bindings := make(map[fyne.KeyName]types.Control)
	for name, keys := range cfg.Keys {
		c, ok := types.ParseControl(name)
		if !ok {
			continue
		}
		for _, k := range keys {
			fk, ok := fyneKey(k)
			if !ok {
				log.LogWithFields(log.F("key", k), log.F("control", name)).Debug("Key has no GUI equivalent")
				continue
			}
			bindings[fk] = c
		}
	}
	return bindings
}
