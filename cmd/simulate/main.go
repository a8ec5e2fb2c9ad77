// Command simulate runs an arena headless and reports how its enemies behaved.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bestiary/arena"
	"github.com/milk9111/bestiary/ecs"
	"github.com/milk9111/bestiary/logger"
	"github.com/milk9111/bestiary/telemetry"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		levelName string
		seed      int64
		seconds   float64
		serve     string
		bait      bool
	)
	flag.StringVar(&levelName, "level", "arena", "level name in levels/ (basename, .json optional)")
	flag.Int64Var(&seed, "seed", 1, "random seed for enemy behavior")
	flag.Float64Var(&seconds, "seconds", 30, "simulated time to run")
	flag.StringVar(&serve, "serve", "", "stream telemetry on this address and run in real time")
	flag.BoolVar(&bait, "bait", true, "sway the player so enemies give chase")
	flag.Parse()

	log := logger.New(logger.FromEnv())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := arena.New(arena.Options{Level: levelName, Seed: seed, Logger: log})
	if err != nil {
		log.WithError(err).Fatal("failed to build arena")
	}

	stats := map[string]int{}
	a.Handle(func(ev ecs.Event) {
		switch data := ev.Data.(type) {
		case ecs.Transition:
			stats[data.Species+" "+data.From+"->"+data.To]++
			log.WithFields(logrus.Fields{"enemy": data.Enemy, "from": data.From, "to": data.To}).Debug("transition")
		case ecs.Hit:
			stats[string(ev.Kind)]++
		}
	})

	var pace <-chan time.Time
	if serve != "" {
		hub := telemetry.NewHub(log)
		a.Handle(hub.Forward(a.World))
		go func() {
			if err := telemetry.ListenAndServe(ctx, serve, hub); err != nil {
				log.WithError(err).Error("telemetry server stopped")
			}
		}()
		step := arena.Step
		ticker := time.NewTicker(time.Duration(step * float64(time.Second)))
		defer ticker.Stop()
		pace = ticker.C
	}

	log.WithFields(logrus.Fields{"level": levelName, "seed": seed, "seconds": seconds}).Info("simulation started")
	elapsed := 0.0
loop:
	for elapsed < seconds {
		if pace != nil {
			select {
			case <-ctx.Done():
				break loop
			case <-pace:
			}
		} else if ctx.Err() != nil {
			break loop
		}
		if bait {
			a.MovePlayer(cp.Vector{X: math.Sin(elapsed * 0.8), Y: 0.4 * math.Cos(elapsed*1.3)})
		}
		a.Update(arena.Step)
		elapsed += arena.Step
	}

	fmt.Print(a.Snapshot())
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%6d  %s\n", stats[k], k)
	}
	log.WithField("elapsed", elapsed).Info("simulation finished")
}
