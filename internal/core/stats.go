package core

// Stat is a labelled read-only value shown next to the simulation view.
type Stat struct {
	Label string
	Value string
}

// StatsProvider is implemented by sims that expose live counters.
type StatsProvider interface {
	Stats() []Stat
}
