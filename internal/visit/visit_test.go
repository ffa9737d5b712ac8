package visit

import (
	"testing"

	"github.com/parsekit/parsekit/internal/arena"
	"github.com/parsekit/parsekit/internal/jsast"
	"github.com/parsekit/parsekit/internal/jsparser"
	"github.com/parsekit/parsekit/internal/logger"
	"github.com/parsekit/parsekit/internal/semantic"
	"github.com/parsekit/parsekit/internal/source"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, contents string) *jsast.Program {
	t.Helper()
	a := arena.New()
	sink := logger.NewSink()
	st := source.SourceType{Language: source.LanguageTS, ModuleKind: source.ModuleKindModule, Variant: source.VariantJSX}
	res := jsparser.Parse(a, sink, contents, st, jsparser.Options{})
	require.False(t, sink.HasErrors(), "unexpected parse errors: %+v", sink.Diagnostics())
	return res.Program
}

// countingVisitor counts Visit calls by concrete node type, plus the
// total number of "leave" calls (Visit(nil)), for asserting Walk's
// pre/post pairing is total.
type countingVisitor struct {
	kinds  map[string]int
	leaves int
}

func (c *countingVisitor) Visit(n Node) Visitor {
	if n == nil {
		c.leaves++
		return nil
	}
	switch n.(type) {
	case *jsast.Stmt:
		c.kinds["Stmt"]++
	case *jsast.Expr:
		c.kinds["Expr"]++
	}
	return c
}

func TestWalkVisitsEveryStatementAndExpression(t *testing.T) {
	program := parse(t, `
		function add(a, b) {
			return a + b;
		}
		const x = add(1, 2);
	`)
	cv := &countingVisitor{kinds: map[string]int{}}
	Walk(program, cv)

	require.Greater(t, cv.kinds["Stmt"], 0)
	require.Greater(t, cv.kinds["Expr"], 0)
}

// nilLeafVisitor counts every node Walk enters and never prunes a
// subtree; the leave calls (Visit(nil)) are not counted.
type nilLeafVisitor struct{ visited int }

func (n *nilLeafVisitor) Visit(node Node) Visitor {
	if node == nil {
		return nil
	}
	n.visited++
	return n
}

func TestWalkDescendsIntoNestedExpressions(t *testing.T) {
	program := parse(t, `const x = (1 + 2) * (3 + 4);`)
	v := &nilLeafVisitor{}
	Walk(program, v)
	// Four number literals, three binary expressions, one declarator's
	// init, the declaration statement itself, plus the binding: comfortably
	// more than a flat top-level walk would produce.
	require.Greater(t, v.visited, 7)
}

func TestWalkReachesExprEmbeddedInTSTypeLiteral(t *testing.T) {
	program := parse(t, `type T = { [1]: string };`)
	found := false
	var v visitFunc
	v = func(n Node) Visitor {
		if e, ok := n.(*jsast.Expr); ok {
			if _, ok := e.Data.(*jsast.ENumber); ok {
				found = true
			}
		}
		return v
	}
	Walk(program, v)
	require.True(t, found, "computed TSTypeLiteralMember.Key expression must be reachable")
}

// visitFunc adapts a plain function to the Visitor interface for
// single-use, throwaway visitors in tests.
type visitFunc func(Node) Visitor

func (f visitFunc) Visit(n Node) Visitor { return f(n) }

// recordingMutVisitor records the chain of ancestor kinds and the
// current scope it observes when it reaches the first ENumber literal,
// for asserting WalkMut's ancestor stack and scope tracking.
type recordingMutVisitor struct {
	gotAncestors int
	gotScope     jsast.ScopeId
	recorded     bool
}

func (r *recordingMutVisitor) Enter(ctx *Ctx, n Node) Action {
	if e, ok := n.(*jsast.Expr); ok && !r.recorded {
		if _, ok := e.Data.(*jsast.ENumber); ok {
			r.recorded = true
			r.gotAncestors = len(ctx.Ancestors())
			r.gotScope = ctx.Scope()
		}
	}
	return Continue
}

func (r *recordingMutVisitor) Leave(ctx *Ctx, n Node) {}

func TestWalkMutTracksAncestorsAndScope(t *testing.T) {
	program := parse(t, `
		function f() {
			const x = 1;
		}
	`)
	// Scope ids are filled in by the semantic builder, not by the parser.
	semantic.Build(arena.New(), logger.NewSink(), program, semantic.DefaultOptions())
	rv := &recordingMutVisitor{}
	WalkMut(program, rv)

	require.True(t, rv.recorded)
	require.Greater(t, rv.gotAncestors, 0, "the number literal must have ancestors on the stack")
	require.True(t, rv.gotScope.IsValid())
	require.NotEqual(t, program.Scope, rv.gotScope, "a literal inside a function body must report the body scope, not the program scope")
}

// skipCountVisitor returns SkipChildren for every SBlock, to verify
// WalkMut genuinely prunes rather than merely ignoring the signal.
type skipCountVisitor struct{ enters int }

func (s *skipCountVisitor) Enter(ctx *Ctx, n Node) Action {
	s.enters++
	if st, ok := n.(*jsast.Stmt); ok {
		if _, ok := st.Data.(*jsast.SBlock); ok {
			return SkipChildren
		}
	}
	return Continue
}

func (s *skipCountVisitor) Leave(ctx *Ctx, n Node) {}

func TestWalkMutSkipChildrenPrunesSubtree(t *testing.T) {
	program := parse(t, `
		function f() {
			{
				const neverVisited = 1 + 2 + 3;
			}
		}
	`)
	sv := &skipCountVisitor{}
	WalkMut(program, sv)

	// The inner SBlock is entered, but nothing inside it (the
	// declaration, its initializer, the three number literals) is. A
	// function body is not an SBlock node of its own: WalkMut walks its
	// statement list directly.
	baseline := &recordingEnterCounter{}
	WalkMut(parse(t, `function f() { { const neverVisited = 1 + 2 + 3; } }`), baseline)
	require.Greater(t, baseline.count, sv.enters, "skipping the block must visit strictly fewer nodes than a full walk")
}

type recordingEnterCounter struct{ count int }

func (r *recordingEnterCounter) Enter(ctx *Ctx, n Node) Action {
	r.count++
	return Continue
}
func (r *recordingEnterCounter) Leave(ctx *Ctx, n Node) {}

func TestMoveExpressionSwapsInEMissingAndReturnsOriginal(t *testing.T) {
	program := parse(t, `const x = 1 + 2;`)

	var moved jsast.Expr
	v := &moveOnFirstBinary{}
	WalkMut(program, v)
	moved = v.moved

	require.NotNil(t, moved.Data)
	_, wasMissing := moved.Data.(*jsast.EMissing)
	require.False(t, wasMissing, "the value handed back by MoveExpression must be the original expression")

	_, isNowMissing := v.slotAfter.Data.(*jsast.EMissing)
	require.True(t, isNowMissing, "the slot must contain EMissing after MoveExpression")
}

type moveOnFirstBinary struct {
	moved     jsast.Expr
	slotAfter jsast.Expr
	done      bool
}

func (m *moveOnFirstBinary) Enter(ctx *Ctx, n Node) Action {
	if e, ok := n.(*jsast.Expr); ok && !m.done {
		if _, ok := e.Data.(*jsast.EBinary); ok {
			m.done = true
			m.moved = ctx.MoveExpression(e)
			m.slotAfter = *e
		}
	}
	return Continue
}

func (m *moveOnFirstBinary) Leave(ctx *Ctx, n Node) {}

func TestSymbolFactoryCreatesReachableSymbol(t *testing.T) {
	a := arena.New()
	sink := logger.NewSink()
	st := source.SourceType{Language: source.LanguageTS, ModuleKind: source.ModuleKindModule, Variant: source.VariantJSX}
	res := jsparser.Parse(a, sink, `function f() { return 1; }`, st, jsparser.Options{})
	require.False(t, sink.HasErrors())

	model := semantic.Build(a, sink, res.Program, semantic.DefaultOptions())
	factory := NewSymbolFactory(model)

	name := a.Intern("__tmp0")
	id := factory.CreateSymbol(res.Program.Scope, name, source.Span{}, semantic.SymbolVar)
	require.True(t, id.IsValid())

	got, ok := model.LookupBinding(res.Program.Scope, "__tmp0", semantic.FacetValue)
	require.True(t, ok)
	require.Equal(t, id, got)
}
