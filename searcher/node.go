package searcher

import (
	"math"
	"sort"

	"gomoku/game"
	"gomoku/knowledge"
	"gomoku/pattern"
)

const noParent = -1

// candidate is an unexplored move with its expansion priority.
type candidate struct {
	move  game.Move
	entry knowledge.Entry
	known bool // entry came from the knowledge source
	score float64
}

// node statistics are from the perspective of mover, the player whose move
// led to this node.
type node struct {
	parent     int
	move       game.Move
	mover      game.Player
	board      game.Board
	children   []int
	unexplored []candidate
	wins       float64
	visits     float64
	terminal   bool
	result     float64 // reward for mover when terminal
}

func (n *node) toMove() game.Player {
	return n.mover.Opponent()
}

func (n *node) expandable() bool {
	return !n.terminal && len(n.unexplored) > 0
}

// ordering ranks the legal moves of a position. Both searchers expand in
// this order.
type ordering struct {
	rules  game.Rules
	radius int
	source knowledge.Source
}

func newOrdering(rules game.Rules, radius int, src knowledge.Source) ordering {
	if m, ok := src.(knowledge.Map); ok && len(m) == 0 {
		src = nil
	}
	return ordering{rules: rules, radius: radius, source: src}
}

// tree is an arena of nodes addressed by index. The root is always 0.
type tree struct {
	ordering
	nodes    []node
	fallback game.Move // first legal candidate in board order, played when nothing was expanded
}

func newTree(b *game.Board, p game.Player, rules game.Rules, radius int, src knowledge.Source) *tree {
	t := &tree{
		ordering: newOrdering(rules, radius, src),
		nodes:    make([]node, 0, 1024),
	}
	root := node{
		parent: noParent,
		move:   game.NoMove,
		mover:  p.Opponent(),
		board:  *b,
	}
	root.unexplored = t.candidates(&root.board, p)
	t.fallback = game.NoMove
	if moves := rules.LegalCandidates(b, p, radius); len(moves) > 0 {
		t.fallback = moves[0]
	}
	t.nodes = append(t.nodes, root)
	return t
}

// candidates orders the moves available to p: moves with a knowledge prior
// first by win rate, then the rest by heuristic score. Ties keep row-major
// order.
func (o ordering) candidates(b *game.Board, p game.Player) []candidate {
	moves := o.rules.LegalCandidates(b, p, o.radius)
	out := make([]candidate, len(moves))
	for i, m := range moves {
		c := candidate{move: m}
		if o.source != nil {
			c.entry, c.known = o.source.Lookup(pattern.KeyOf(b, m, p))
		}
		if !c.known {
			c.score = game.ScoreMove(b, m, p)
		}
		out[i] = c
	}
	sort.SliceStable(out, func(i, j int) bool {
		x, y := out[i], out[j]
		if x.known != y.known {
			return x.known
		}
		if x.known {
			return x.entry.WinRate() > y.entry.WinRate()
		}
		return x.score > y.score
	})
	return out
}

// expand pops the highest-priority unexplored move of parent and appends the
// resulting child. It returns the child's index.
func (t *tree) expand(parent int) int {
	p := &t.nodes[parent]
	c := p.unexplored[0]
	p.unexplored = p.unexplored[1:]

	child := node{
		parent: parent,
		move:   c.move,
		mover:  p.toMove(),
		board:  p.board,
	}
	child.board.Set(c.move, child.mover)
	if c.known {
		child.visits = c.entry.Games()
		child.wins = c.entry.Wins
	}

	switch t.rules.Result(&child.board, child.mover, c.move) {
	case game.Win:
		child.terminal, child.result = true, Win
	case game.Overline:
		child.terminal, child.result = true, Loss
	default:
		child.unexplored = t.candidates(&child.board, child.toMove())
		if len(child.unexplored) == 0 {
			child.terminal, child.result = true, Draw
		}
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, child)
	// append may have moved the arena
	t.nodes[parent].children = append(t.nodes[parent].children, idx)
	return idx
}

// seedRoot expands every root move that has a knowledge prior so that its
// counters take part in the first selections.
func (t *tree) seedRoot() int {
	seeded := 0
	for len(t.nodes[0].unexplored) > 0 && t.nodes[0].unexplored[0].known {
		t.expand(0)
		seeded++
	}
	return seeded
}

// selectChild picks an unvisited child if there is one, otherwise the child
// with the highest UCT value.
func (t *tree) selectChild(idx int, c float64) int {
	n := &t.nodes[idx]
	policy := newUCT(c, math.Max(n.visits, 1))

	best := -1
	bestScore := math.Inf(-1)
	for _, ci := range n.children {
		child := &t.nodes[ci]
		if child.visits == 0 {
			return ci
		}
		if s := policy.evaluate(child.wins, child.visits); s > bestScore {
			bestScore = s
			best = ci
		}
	}
	return best
}

// selectThenExpand descends through fully expanded nodes and expands the
// first node that still has unexplored moves.
func (t *tree) selectThenExpand(c float64) int {
	idx := 0
	for !t.nodes[idx].terminal && !t.nodes[idx].expandable() && len(t.nodes[idx].children) > 0 {
		idx = t.selectChild(idx, c)
	}
	if t.nodes[idx].expandable() {
		return t.expand(idx)
	}
	return idx
}

// backup adds result, measured for the mover of idx, to every node up to the
// root, flipping it at each level.
func (t *tree) backup(idx int, result float64) {
	for idx != noParent {
		n := &t.nodes[idx]
		n.visits++
		n.wins += result
		result = 1 - result
		idx = n.parent
	}
}

// best returns the root child with the most visits; ties go to the child
// expanded first.
func (t *tree) best() (game.Move, bool) {
	root := &t.nodes[0]
	if len(root.children) == 0 {
		return game.NoMove, false
	}
	best := root.children[0]
	for _, ci := range root.children[1:] {
		if t.nodes[ci].visits > t.nodes[best].visits {
			best = ci
		}
	}
	return t.nodes[best].move, true
}
