package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/photonforge/arena/internal/sim"
)

type runStats struct {
	runIndex int
	seed     int64

	winner        int
	reason        string
	durationTicks int

	firstDeathTick int
	firstCastTick  int
	firstLaserTick int

	deaths     int
	casts      int
	promotions int
	laserShots int
	spawns     int

	trained [2]int
	killed  [2]int
	damage  [2]float64
	spent   [2]float64
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var layout string
	var configPath string

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 7200, "tick cap per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "skirmish", "scenario name")
	flag.StringVar(&layout, "layout", "pillars", "built-in arena layout")
	flag.StringVar(&configPath, "config", "", "optional config file overriding defaults")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if configPath != "" {
		viper.SetConfigFile(configPath)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("cannot read config")
		}
		// Explicit flags win over the config file.
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["runs"] && viper.IsSet("runs") {
			runs = viper.GetInt("runs")
		}
		if !set["ticks"] && viper.IsSet("ticks") {
			ticks = viper.GetInt("ticks")
		}
		if !set["seed-base"] && viper.IsSet("seed_base") {
			seedBase = viper.GetInt64("seed_base")
		}
		if !set["seed-step"] && viper.IsSet("seed_step") {
			seedStep = viper.GetInt64("seed_step")
		}
		if !set["scenario"] && viper.IsSet("scenario") {
			scenario = viper.GetString("scenario")
		}
		if !set["layout"] && viper.IsSet("layout") {
			layout = viper.GetString("layout")
		}
	}

	if runs <= 0 {
		log.Fatal().Msg("-runs must be > 0")
	}
	if ticks <= 0 {
		log.Fatal().Msg("-ticks must be > 0")
	}
	if scenario != "skirmish" && scenario != "wasp-raid" {
		log.Fatal().Str("scenario", scenario).Msg("unsupported scenario (supported: skirmish, wasp-raid)")
	}
	if _, ok := sim.LayoutByName(layout); !ok {
		log.Fatal().Str("layout", layout).Msg("unknown layout")
	}

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("scenario=%s layout=%s runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		scenario, layout, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		log.Info().Int("run", i+1).Int64("seed", seed).Msg("starting run")
		var rs runStats
		switch scenario {
		case "skirmish":
			rs = runSkirmish(i+1, seed, ticks, layout)
		case "wasp-raid":
			rs = runWaspRaid(i+1, seed, ticks)
		}
		log.Info().Int("run", i+1).Int("winner", rs.winner).
			Str("reason", rs.reason).Int("ticks", rs.durationTicks).Msg("run finished")
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
}

// runSkirmish trains a mixed army for both players and attack-moves
// everything at the enemy base until one side wins or the tick cap hits.
func runSkirmish(runIndex int, seed int64, ticks int, layoutName string) runStats {
	layout, _ := sim.LayoutByName(layoutName)
	tm := sim.NewTestMatch(
		sim.WithLayout(layout),
		sim.WithSeed(seed),
		sim.WithTimeLimit(float64(ticks)/sim.TickRate),
		sim.WithPhotons(0, 500),
		sim.WithPhotons(1, 500),
	)
	s := tm.State

	roster := []sim.UnitKind{sim.KindMarine, sim.KindMarine, sim.KindBrawler, sim.KindMedic}
	for _, kind := range roster {
		s.SpawnUnit(0, kind, s.RallyPoint(0))
		s.SpawnUnit(1, kind, s.RallyPoint(1))
	}

	for tm.Tick < ticks && !s.Result.Over {
		// Re-issue attack-moves and abilities once a second so idle
		// survivors keep pressing.
		for owner := 0; owner < 2; owner++ {
			enemy := s.Bases[1-owner]
			for _, u := range s.UnitsOf(owner) {
				if u.Queue.Len() == 0 {
					s.EnqueueUnitCommand(u.ID, sim.MoveCommand(enemy.Pos))
				}
				if u.Ability.Phase == sim.AbilityReady && u.Ability.Cooldown <= 0 &&
					u.Pos.Dist(enemy.Pos) < 15 {
					s.EnqueueUnitCommand(u.ID, sim.AbilityCommand(enemy.Pos, enemy.Pos.Sub(u.Pos)))
				}
			}
		}
		tm.RunSeconds(1)
	}

	return collect(runIndex, seed, tm)
}

// runWaspRaid walls the arena in half and races flyers at the enemy base
// while grounded defenders sit useless behind the wall.
func runWaspRaid(runIndex int, seed int64, ticks int) runStats {
	tm := sim.NewTestMatch(
		sim.WithSeed(seed),
		sim.WithTimeLimit(float64(ticks)/sim.TickRate),
		sim.WithObstacle(sim.Obstacle{Kind: sim.ObstacleWall, Pos: sim.Vec2{X: 80, Y: 45}, Width: 4, Height: 90}),
		sim.WithUnit(0, sim.KindWasp, 30, 40),
		sim.WithUnit(0, sim.KindWasp, 30, 50),
		sim.WithUnit(1, sim.KindMarine, 100, 45),
		sim.WithUnit(1, sim.KindMarine, 110, 45),
	)
	s := tm.State

	for tm.Tick < ticks && !s.Result.Over {
		for _, u := range s.UnitsOf(0) {
			if u.Queue.Len() == 0 {
				s.EnqueueUnitCommand(u.ID, sim.MoveCommand(s.Bases[1].Pos))
			}
		}
		tm.RunSeconds(1)
	}

	return collect(runIndex, seed, tm)
}

func collect(runIndex int, seed int64, tm *sim.TestMatch) runStats {
	s := tm.State
	entries := tm.Log.Entries()

	rs := runStats{
		runIndex:       runIndex,
		seed:           seed,
		winner:         s.Result.Winner,
		reason:         s.Result.Reason,
		durationTicks:  tm.Tick,
		firstDeathTick: firstTick(entries, "combat", "death"),
		firstCastTick:  firstTick(entries, "ability", "cast"),
		firstLaserTick: firstTick(entries, "base", "laser"),
		deaths:         tm.Log.CountCategory("combat", "death"),
		casts:          tm.Log.CountCategory("ability", "cast"),
		promotions:     tm.Log.CountCategory("stats", "promotion"),
		laserShots:     tm.Log.CountCategory("base", "laser"),
		spawns:         tm.Log.CountCategory("economy", "spawn"),
	}
	if !s.Result.Over {
		rs.winner = -1
		rs.reason = "tick_cap"
	}
	for i, p := range s.Stats.Players {
		rs.trained[i] = p.UnitsTrained
		rs.killed[i] = p.UnitsKilled
		rs.damage[i] = p.DamageDealt
		rs.spent[i] = p.PhotonsSpent
	}
	return rs
}

func firstTick(entries []sim.MatchLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("result: winner=%d reason=%s duration_ticks=%d\n",
		rs.winner, rs.reason, rs.durationTicks)
	fmt.Printf("phase_markers: first_death=%d first_cast=%d first_laser=%d\n",
		rs.firstDeathTick, rs.firstCastTick, rs.firstLaserTick)
	fmt.Printf("event_totals: spawns=%d deaths=%d casts=%d promotions=%d laser_shots=%d\n",
		rs.spawns, rs.deaths, rs.casts, rs.promotions, rs.laserShots)
	for i := 0; i < 2; i++ {
		fmt.Printf("p%d: trained=%d killed=%d damage=%.0f photons_spent=%.0f\n",
			i, rs.trained[i], rs.killed[i], rs.damage[i], rs.spent[i])
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	wins := map[int]int{}
	totalTicks := 0
	totalDeaths := 0
	totalCasts := 0
	totalPromotions := 0
	totalLasers := 0
	var totalDamage [2]float64

	deathTicks := make([]int, 0, len(all))
	castTicks := make([]int, 0, len(all))
	laserTicks := make([]int, 0, len(all))

	for _, rs := range all {
		wins[rs.winner]++
		totalTicks += rs.durationTicks
		totalDeaths += rs.deaths
		totalCasts += rs.casts
		totalPromotions += rs.promotions
		totalLasers += rs.laserShots
		totalDamage[0] += rs.damage[0]
		totalDamage[1] += rs.damage[1]
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		if rs.firstCastTick >= 0 {
			castTicks = append(castTicks, rs.firstCastTick)
		}
		if rs.firstLaserTick >= 0 {
			laserTicks = append(laserTicks, rs.firstLaserTick)
		}
	}

	fmt.Println("=== Aggregate Balance Inputs ===")
	fmt.Printf("runs=%d\n", len(all))
	fmt.Printf("outcomes: p0_wins=%d p1_wins=%d draws=%d\n", wins[0], wins[1], wins[-1])
	fmt.Printf("avg_duration_ticks=%.1f\n", avg(totalTicks, len(all)))
	fmt.Printf("avg_events_per_run: deaths=%.1f casts=%.1f promotions=%.1f laser_shots=%.1f\n",
		avg(totalDeaths, len(all)), avg(totalCasts, len(all)),
		avg(totalPromotions, len(all)), avg(totalLasers, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_death=%s first_cast=%s first_laser=%s\n",
		avgTickString(deathTicks), avgTickString(castTicks), avgTickString(laserTicks))
	fmt.Printf("avg_damage_per_run: p0=%.1f p1=%.1f\n",
		avg64(totalDamage[0], len(all)), avg64(totalDamage[1], len(all)))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avg64(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return sum / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
