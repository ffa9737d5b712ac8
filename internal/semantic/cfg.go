package semantic

import (
	"fmt"
	"strings"

	"github.com/parsekit/parsekit/internal/jsast"
)

// BlockId indexes into a CFG's Blocks slice.
type BlockId int

const invalidBlock BlockId = -1

// EdgeKind classifies how control reaches a successor block (spec §3.6).
type EdgeKind uint8

const (
	EdgeNormal EdgeKind = iota
	EdgeConditionalTrue
	EdgeConditionalFalse
	EdgeUnreachable
	EdgeError
)

// Edge is one outgoing control-flow edge from a block.
type Edge struct {
	To   BlockId
	Kind EdgeKind
}

// InstrKind classifies one basic block's terminating/contained operation,
// per spec §3.6's instruction-kind list.
type InstrKind uint8

const (
	InstrStatement InstrKind = iota
	InstrCondition
	InstrThrow
	InstrReturn
	InstrBreak
	InstrContinue
	InstrIterationOf // for-of
	InstrIterationIn // for-in
)

// Instr is one instruction recorded against a block, carrying enough of
// the originating statement to be useful for diagnostics (e.g.
// unreachable-code warnings) without re-walking the AST.
type Instr struct {
	Kind InstrKind
	Span jsast.Atom // unused placeholder kept zero; block Span below carries location
}

// Block is one basic block: a maximal straight-line run of statements
// with a single entry and the edges leaving its end.
type Block struct {
	Stmts []Stmt
	Edges []Edge
	Kind  InstrKind // the kind of the block's terminating instruction, if any
}

// Stmt is a lightweight pointer back to the originating AST statement,
// kept separate from jsast.Stmt's own field name to avoid a collision.
type Stmt = *jsast.Stmt

// CFG is one function's control-flow graph (spec §3.6): a directed graph
// of basic blocks connected by typed edges, with dedicated Entry/Exit
// sentinels every block eventually reaches or is unreachable from.
type CFG struct {
	Blocks []Block
	Entry  BlockId
	Exit   BlockId
}

// cfgBuilder assembles one CFG by threading an "current block" pointer
// through a single pass over a function body, splitting a new block at
// every branch/join point. Grounded on the block-per-branch approach
// oxc's control-flow crate uses (see SPEC_FULL.md §5's CFG supplement),
// adapted to this AST's statement shapes.
type cfgBuilder struct {
	cfg *CFG

	// breakTargets/continueTargets map an enclosing loop/switch's label
	// (or "" for the nearest unlabeled one) to the block a break/continue
	// there should jump to.
	breakTargets    []loopTarget
	continueTargets []loopTarget
}

type loopTarget struct {
	label      string
	breakTo    BlockId
	continueTo BlockId
}

// buildCFG constructs fn's control-flow graph (spec §3.6). It is
// skeletal: it models reachability and branch structure precisely
// enough to drive unreachable-code and missing-return diagnostics, but
// does not attempt data-flow analysis.
func buildCFG(fn *jsast.Fn) *CFG {
	cfg := &CFG{}
	entry := newBlock(cfg)
	exit := newBlock(cfg)
	cfg.Entry = entry
	cfg.Exit = exit

	b := &cfgBuilder{cfg: cfg}
	cur := entry
	for i := range fn.Body.Body {
		cur = b.stmt(cur, &fn.Body.Body[i])
		if cur == invalidBlock {
			break
		}
	}
	if cur != invalidBlock {
		addEdge(cfg, cur, exit, EdgeNormal)
	}
	return cfg
}

func newBlock(cfg *CFG) BlockId {
	id := BlockId(len(cfg.Blocks))
	cfg.Blocks = append(cfg.Blocks, Block{})
	return id
}

func addEdge(cfg *CFG, from, to BlockId, kind EdgeKind) {
	if from == invalidBlock || to == invalidBlock {
		return
	}
	cfg.Blocks[from].Edges = append(cfg.Blocks[from].Edges, Edge{To: to, Kind: kind})
}

// stmt threads cur through one statement, returning the block execution
// falls through to afterward, or invalidBlock if the statement never
// falls through (return/throw/break/continue, or a block all of whose
// paths terminate).
func (b *cfgBuilder) stmt(cur BlockId, s *jsast.Stmt) BlockId {
	if cur == invalidBlock {
		return invalidBlock
	}
	switch n := s.Data.(type) {
	case *jsast.SBlock:
		for i := range n.Body {
			cur = b.stmt(cur, &n.Body[i])
			if cur == invalidBlock {
				return invalidBlock
			}
		}
		return cur

	case *jsast.SIf:
		thenEntry := newBlock(b.cfg)
		addEdge(b.cfg, cur, thenEntry, EdgeConditionalTrue)
		thenExit := b.stmt(thenEntry, &n.Yes)

		var elseExit BlockId
		if n.No.Data != nil {
			elseEntry := newBlock(b.cfg)
			addEdge(b.cfg, cur, elseEntry, EdgeConditionalFalse)
			elseExit = b.stmt(elseEntry, &n.No)
		} else {
			elseExit = cur
		}

		if thenExit == invalidBlock && elseExit == invalidBlock {
			return invalidBlock
		}
		join := newBlock(b.cfg)
		addEdge(b.cfg, thenExit, join, EdgeNormal)
		if n.No.Data != nil {
			addEdge(b.cfg, elseExit, join, EdgeNormal)
		} else {
			addEdge(b.cfg, cur, join, EdgeConditionalFalse)
		}
		return join

	case *jsast.SWhile:
		head := newBlock(b.cfg)
		addEdge(b.cfg, cur, head, EdgeNormal)
		after := newBlock(b.cfg)
		body := newBlock(b.cfg)
		addEdge(b.cfg, head, body, EdgeConditionalTrue)
		addEdge(b.cfg, head, after, EdgeConditionalFalse)
		b.pushLoop("", after, head)
		bodyExit := b.stmt(body, &n.Body)
		b.popLoop()
		addEdge(b.cfg, bodyExit, head, EdgeNormal)
		return after

	case *jsast.SDoWhile:
		body := newBlock(b.cfg)
		addEdge(b.cfg, cur, body, EdgeNormal)
		after := newBlock(b.cfg)
		head := newBlock(b.cfg)
		b.pushLoop("", after, head)
		bodyExit := b.stmt(body, &n.Body)
		b.popLoop()
		addEdge(b.cfg, bodyExit, head, EdgeNormal)
		addEdge(b.cfg, head, body, EdgeConditionalTrue)
		addEdge(b.cfg, head, after, EdgeConditionalFalse)
		return after

	case *jsast.SFor:
		head := newBlock(b.cfg)
		addEdge(b.cfg, cur, head, EdgeNormal)
		after := newBlock(b.cfg)
		body := newBlock(b.cfg)
		addEdge(b.cfg, head, body, EdgeConditionalTrue)
		addEdge(b.cfg, head, after, EdgeConditionalFalse)
		b.pushLoop("", after, head)
		bodyExit := b.stmt(body, &n.Body)
		b.popLoop()
		addEdge(b.cfg, bodyExit, head, EdgeNormal)
		return after

	case *jsast.SForIn:
		return b.forEachLike(cur, &n.Body, InstrIterationIn)
	case *jsast.SForOf:
		return b.forEachLike(cur, &n.Body, InstrIterationOf)

	case *jsast.SSwitch:
		after := newBlock(b.cfg)
		hasDefault := false
		fallthroughBlock := invalidBlock
		b.pushLoop("", after, invalidBlock)
		for i := range n.Cases {
			c := &n.Cases[i]
			if c.Test == nil {
				hasDefault = true
			}
			caseEntry := newBlock(b.cfg)
			addEdge(b.cfg, cur, caseEntry, EdgeConditionalTrue)
			if fallthroughBlock != invalidBlock {
				addEdge(b.cfg, fallthroughBlock, caseEntry, EdgeNormal)
			}
			exit := caseEntry
			for j := range c.Body {
				exit = b.stmt(exit, &c.Body[j])
				if exit == invalidBlock {
					break
				}
			}
			fallthroughBlock = exit
		}
		b.popLoop()
		if fallthroughBlock != invalidBlock {
			addEdge(b.cfg, fallthroughBlock, after, EdgeNormal)
		}
		if !hasDefault {
			addEdge(b.cfg, cur, after, EdgeConditionalFalse)
		}
		return after

	case *jsast.SBreak:
		target := b.lookupBreak(n.Label.String())
		addEdge(b.cfg, cur, target, EdgeNormal)
		return invalidBlock

	case *jsast.SContinue:
		target := b.lookupContinue(n.Label.String())
		addEdge(b.cfg, cur, target, EdgeNormal)
		return invalidBlock

	case *jsast.SReturn:
		addEdge(b.cfg, cur, b.cfg.Exit, EdgeNormal)
		b.cfg.Blocks[cur].Kind = InstrReturn
		return invalidBlock

	case *jsast.SThrow:
		addEdge(b.cfg, cur, b.cfg.Exit, EdgeError)
		b.cfg.Blocks[cur].Kind = InstrThrow
		return invalidBlock

	case *jsast.STry:
		bodyExit := cur
		for i := range n.Body.Body {
			bodyExit = b.stmt(bodyExit, &n.Body.Body[i])
			if bodyExit == invalidBlock {
				break
			}
		}
		after := newBlock(b.cfg)
		if bodyExit != invalidBlock {
			addEdge(b.cfg, bodyExit, after, EdgeNormal)
		}
		if n.Catch != nil {
			catchEntry := newBlock(b.cfg)
			addEdge(b.cfg, cur, catchEntry, EdgeError)
			catchExit := catchEntry
			for i := range n.Catch.Body.Body {
				catchExit = b.stmt(catchExit, &n.Catch.Body.Body[i])
				if catchExit == invalidBlock {
					break
				}
			}
			if catchExit != invalidBlock {
				addEdge(b.cfg, catchExit, after, EdgeNormal)
			}
		}
		if n.Finally != nil {
			finallyExit := after
			for i := range n.Finally.Body {
				finallyExit = b.stmt(finallyExit, &n.Finally.Body[i])
				if finallyExit == invalidBlock {
					break
				}
			}
			return finallyExit
		}
		return after

	case *jsast.SLabel:
		after := newBlock(b.cfg)
		b.pushLoop(n.Name.String(), after, invalidBlock)
		exit := b.stmt(cur, &n.Body)
		b.popLoop()
		if exit != invalidBlock {
			addEdge(b.cfg, exit, after, EdgeNormal)
		}
		return after

	default:
		// Plain statements (expr, var decl, function/class decl, etc.)
		// stay in the current block.
		b.cfg.Blocks[cur].Stmts = append(b.cfg.Blocks[cur].Stmts, s)
		return cur
	}
}

func (b *cfgBuilder) forEachLike(cur BlockId, body *jsast.Stmt, kind InstrKind) BlockId {
	head := newBlock(b.cfg)
	addEdge(b.cfg, cur, head, EdgeNormal)
	b.cfg.Blocks[cur].Kind = kind
	after := newBlock(b.cfg)
	bodyEntry := newBlock(b.cfg)
	addEdge(b.cfg, head, bodyEntry, EdgeConditionalTrue)
	addEdge(b.cfg, head, after, EdgeConditionalFalse)
	b.pushLoop("", after, head)
	bodyExit := b.stmt(bodyEntry, body)
	b.popLoop()
	addEdge(b.cfg, bodyExit, head, EdgeNormal)
	return after
}

func (b *cfgBuilder) pushLoop(label string, breakTo, continueTo BlockId) {
	b.breakTargets = append(b.breakTargets, loopTarget{label: label, breakTo: breakTo, continueTo: continueTo})
}

func (b *cfgBuilder) popLoop() {
	b.breakTargets = b.breakTargets[:len(b.breakTargets)-1]
}

func (b *cfgBuilder) lookupBreak(label string) BlockId {
	for i := len(b.breakTargets) - 1; i >= 0; i-- {
		t := b.breakTargets[i]
		if label == "" || t.label == label {
			return t.breakTo
		}
	}
	return b.cfg.Exit
}

func (b *cfgBuilder) lookupContinue(label string) BlockId {
	for i := len(b.breakTargets) - 1; i >= 0; i-- {
		t := b.breakTargets[i]
		if t.continueTo == invalidBlock {
			continue
		}
		if label == "" || t.label == label {
			return t.continueTo
		}
	}
	return b.cfg.Exit
}

// Dot renders the graph in Graphviz dot format, for debugging (spec §5's
// oxc-inspired supplement suggests a CFG dump is useful for test
// fixtures and tooling).
func (c *CFG) Dot() string {
	var sb strings.Builder
	sb.WriteString("digraph CFG {\n")
	for i := range c.Blocks {
		label := fmt.Sprintf("block%d", i)
		if BlockId(i) == c.Entry {
			label += " (entry)"
		}
		if BlockId(i) == c.Exit {
			label += " (exit)"
		}
		fmt.Fprintf(&sb, "  n%d [label=%q];\n", i, label)
	}
	for i, blk := range c.Blocks {
		for _, e := range blk.Edges {
			fmt.Fprintf(&sb, "  n%d -> n%d [label=%q];\n", i, e.To, edgeKindString(e.Kind))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

func edgeKindString(k EdgeKind) string {
	switch k {
	case EdgeConditionalTrue:
		return "true"
	case EdgeConditionalFalse:
		return "false"
	case EdgeUnreachable:
		return "unreachable"
	case EdgeError:
		return "error"
	default:
		return ""
	}
}
