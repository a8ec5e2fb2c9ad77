package prefabs

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDiskRoot(t *testing.T, dir string) {
	t.Helper()
	prev := DiskRoot
	DiskRoot = dir
	t.Cleanup(func() { DiskRoot = prev })
}

func TestEmbeddedEnemySpecsValidate(t *testing.T) {
	useDiskRoot(t, "")
	want := map[string]Species{
		"badger":   SpeciesBadger,
		"sentry":   SpeciesScripted,
		"skeleton": SpeciesGeneric,
		"wolf":     SpeciesWolf,
	}
	require.Equal(t, []string{"badger", "sentry", "skeleton", "wolf"}, Names())

	for name, species := range want {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEnemySpec(name)
			require.NoError(t, err)
			assert.Equal(t, name, spec.Name)
			assert.Equal(t, species, spec.Species)
			assert.NotEmpty(t, spec.Animation.Defs)
		})
	}
}

func TestEnemySpecAnimationEvents(t *testing.T) {
	useDiskRoot(t, "")
	spec, err := LoadEnemySpec("wolf.yaml")
	require.NoError(t, err)

	attack := spec.Animation.Defs["attack"]
	assert.Equal(t, "attack", attack.Tag)
	assert.Equal(t, "attack_landed", attack.Events[3])
	assert.False(t, attack.Loop)
}

func TestEnemySpecValidate(t *testing.T) {
	base := func() EnemySpec {
		return EnemySpec{
			Name:         "x",
			Species:      SpeciesGeneric,
			MaxHealth:    1,
			AggroRadius:  10,
			StrikeRadius: 5,
			Chase:        ChaseSpec{Speed: 1, PathThreshold: 4, PathMargin: 1},
			Ranged:       RangedSpec{TimeBetweenShots: 1, BulletLifetime: 1},
		}
	}

	cases := []struct {
		name   string
		mutate func(*EnemySpec)
		err    error
	}{
		{"ok", func(*EnemySpec) {}, nil},
		{"unknown species", func(s *EnemySpec) { s.Species = "dragon" }, ErrUnknownSpecies},
		{"no name", func(s *EnemySpec) { s.Name = " " }, ErrInvalidSpec},
		{"no health", func(s *EnemySpec) { s.MaxHealth = 0 }, ErrInvalidSpec},
		{"strike beyond aggro", func(s *EnemySpec) { s.StrikeRadius = 20 }, ErrInvalidSpec},
		{"margin beyond threshold", func(s *EnemySpec) { s.Chase.PathMargin = 8 }, ErrInvalidSpec},
		{"no cadence", func(s *EnemySpec) { s.Ranged.TimeBetweenShots = 0 }, ErrInvalidSpec},
		{"scripted without path", func(s *EnemySpec) { s.Species = SpeciesScripted }, ErrInvalidSpec},
		{"bad clip", func(s *EnemySpec) {
			s.Animation.Defs = map[string]AnimationDefSpec{"idle": {FrameCount: 0, FPS: 1}}
		}, ErrInvalidSpec},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base()
			tc.mutate(&s)
			err := s.Validate()
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	useDiskRoot(t, dir)

	override := []byte("name: wolf\nspecies: wolf\nmax_health: 99\naggro_radius: 10\nstrike_radius: 1\n" +
		"chase: {speed: 1}\nmelee: {duration: 1}\nhowl: {duration: 1}\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wolf.yaml"), override, 0o644))

	spec, err := LoadEnemySpec("wolf")
	require.NoError(t, err)
	assert.Equal(t, 99, spec.MaxHealth)

	_, ok := ModTime("wolf")
	assert.True(t, ok)

	spec, err = LoadEnemySpec("badger")
	require.NoError(t, err, "falls back to the embedded copy")
	assert.Equal(t, SpeciesBadger, spec.Species)
}

func TestLibraryReload(t *testing.T) {
	dir := t.TempDir()
	useDiskRoot(t, dir)

	lib := NewLibrary()
	before, err := lib.Enemy("wolf")
	require.NoError(t, err)
	cached, err := lib.Enemy("prefabs/wolf.yaml")
	require.NoError(t, err)
	assert.Same(t, before, cached)

	data, err := PrefabsFS.ReadFile("wolf.yaml")
	require.NoError(t, err)
	data = bytes.Replace(data, []byte("max_health: 8"), []byte("max_health: 42"), 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wolf.yaml"), data, 0o644))

	names, err := lib.Reload(filepath.Join(dir, "wolf.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"wolf"}, names)

	after, err := lib.Enemy("wolf")
	require.NoError(t, err)
	assert.Equal(t, 42, after.MaxHealth)
}

func TestLibraryReloadScript(t *testing.T) {
	dir := t.TempDir()
	useDiskRoot(t, dir)

	lib := NewLibrary()
	_, err := lib.Enemy("sentry")
	require.NoError(t, err)
	_, err = lib.Enemy("wolf")
	require.NoError(t, err)
	src, err := lib.Script("sentry.tengo")
	require.NoError(t, err)
	require.NotEmpty(t, src)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	path := filepath.Join(dir, "scripts", "sentry.tengo")
	require.NoError(t, os.WriteFile(path, []byte("handlers := {}\n"), 0o644))

	names, err := lib.Reload(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sentry"}, names)

	src, err = lib.Script("sentry.tengo")
	require.NoError(t, err)
	assert.Equal(t, "handlers := {}\n", string(src))
}

func TestLibraryReloadInvalidKeepsEvicted(t *testing.T) {
	dir := t.TempDir()
	useDiskRoot(t, dir)

	lib := NewLibrary()
	_, err := lib.Enemy("badger")
	require.NoError(t, err)

	path := filepath.Join(dir, "badger.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: badger\nspecies: badger\n"), 0o644))
	_, err = lib.Reload(path)
	require.ErrorIs(t, err, ErrInvalidSpec)
	assert.Empty(t, lib.Cached())
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcherDebounce(10*time.Millisecond, dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "wolf.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: wolf\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no watcher event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Empty(t, w.Poll())
}
