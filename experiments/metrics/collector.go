package metrics

import (
	"time"
)

type SearchMetric struct {
	Duration     time.Duration
	Episodes     int
	Cutoff       int
	FullPlayouts int
	Seeded       int // root children created from knowledge priors
	TreeSize     int
}

type MoveMetric struct {
	Step   int
	Player string
	Row    int
	Col    int
	Stage  string
	SearchMetric
}

type GameMetric struct {
	Winner     string
	Reason     string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// AgentConfig describes how one self-play side searches.
type AgentConfig struct {
	ID         int
	Iterations int
	Duration   time.Duration
	Cutoff     int
	Radius     int
	VCF        bool
	Rules      string
	Policy     string // "mcts" or "alphabeta"
	Depth      int    // alpha-beta plies
}

// Collector gathers the counters of a single search. A search runs on one
// goroutine, so implementations need no locking.
type Collector interface {
	Start(cutoff int)
	AddEpisode()
	AddFullPlayout()
	AddSeeded()
	Complete(treeSize int) SearchMetric
}

type collector struct {
	cutoff       int
	startTime    time.Time
	episodes     int
	fullPlayouts int
	seeded       int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(cutoff int) {
	m.startTime = time.Now()
	m.cutoff = cutoff
	m.episodes = 0
	m.fullPlayouts = 0
	m.seeded = 0
}

func (m *collector) AddEpisode() {
	m.episodes++
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts++
}

func (m *collector) AddSeeded() {
	m.seeded++
}

func (m *collector) Complete(treeSize int) SearchMetric {
	return SearchMetric{
		Duration:     time.Since(m.startTime),
		Episodes:     m.episodes,
		Cutoff:       m.cutoff,
		FullPlayouts: m.fullPlayouts,
		Seeded:       m.seeded,
		TreeSize:     treeSize,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(cutoff int)                   {}
func (m *dummyCollector) AddEpisode()                        {}
func (m *dummyCollector) AddFullPlayout()                    {}
func (m *dummyCollector) AddSeeded()                         {}
func (m *dummyCollector) Complete(treeSize int) SearchMetric { return SearchMetric{} }
