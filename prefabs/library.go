package prefabs

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Library caches validated enemy specs and their scripts. It is not safe for
// concurrent use; the game loop owns it.
type Library struct {
	specs   map[string]*EnemySpec
	scripts map[string][]byte
}

func NewLibrary() *Library {
	return &Library{
		specs:   map[string]*EnemySpec{},
		scripts: map[string][]byte{},
	}
}

// Enemy returns the named spec, loading it on first use.
func (l *Library) Enemy(name string) (*EnemySpec, error) {
	key := specKey(name)
	if spec, ok := l.specs[key]; ok {
		return spec, nil
	}
	spec, err := LoadEnemySpec(key)
	if err != nil {
		return nil, err
	}
	l.specs[key] = spec
	return spec, nil
}

// Script returns a script's source, loading it on first use.
func (l *Library) Script(path string) ([]byte, error) {
	key := cleanScriptPath(path)
	if src, ok := l.scripts[key]; ok {
		return src, nil
	}
	src, err := LoadScript(key)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", path, err)
	}
	l.scripts[key] = src
	return src, nil
}

// Reload drops whatever the changed file backs and loads it again. It returns
// the spec names affected by the change. On error the stale entry stays
// evicted so the next lookup retries.
func (l *Library) Reload(path string) ([]string, error) {
	switch {
	case isSpecFile(path):
		key := specKey(path)
		delete(l.specs, key)
		if _, err := l.Enemy(key); err != nil {
			return nil, err
		}
		return []string{key}, nil
	case isScriptFile(path):
		key := cleanScriptPath(filepath.Base(path))
		delete(l.scripts, key)
		if _, err := l.Script(key); err != nil {
			return nil, err
		}
		var affected []string
		for name, spec := range l.specs {
			if cleanScriptPath(spec.Script.Path) == key {
				affected = append(affected, name)
			}
		}
		sort.Strings(affected)
		return affected, nil
	}
	return nil, nil
}

// Cached lists the spec names currently held.
func (l *Library) Cached() []string {
	names := make([]string, 0, len(l.specs))
	for name := range l.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func specKey(name string) string {
	base := filepath.Base(filepath.ToSlash(name))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
