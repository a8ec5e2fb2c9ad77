package component

import (
	"strings"

	"github.com/milk9111/bestiary/fsm"
	"github.com/milk9111/bestiary/prefabs"
)

// DefsFromSpec builds clip definitions from a prefab animation section. Event
// names are trimmed and lowercased into triggers; empty names are dropped.
func DefsFromSpec(spec prefabs.AnimationSpec) map[string]AnimationDef {
	defs := make(map[string]AnimationDef, len(spec.Defs))
	for name, d := range spec.Defs {
		def := AnimationDef{
			Name:       name,
			FrameCount: d.FrameCount,
			FPS:        d.FPS,
			Loop:       d.Loop,
			Tag:        d.Tag,
		}
		for frame, ev := range d.Events {
			ev = strings.ToLower(strings.TrimSpace(ev))
			if ev == "" || frame < 0 {
				continue
			}
			if def.Events == nil {
				def.Events = map[int]fsm.Trigger{}
			}
			def.Events[frame] = fsm.Trigger(ev)
		}
		defs[name] = def
	}
	return defs
}
