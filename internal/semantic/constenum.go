package semantic

import (
	"math"
	"strconv"

	"github.com/parsekit/parsekit/internal/jsast"
)

// EnumValue is a normalized const-enum member value (spec §3.7: "each
// member is normalized to Number(f64) or String(String)").
type EnumValue struct {
	IsString bool
	Number   float64
	String   string
}

// ConstEnum is one const enum's evaluated member table.
type ConstEnum struct {
	Name               jsast.Atom
	Members            map[string]EnumValue    // only successfully evaluated members
	MemberNameToSymbol map[string]jsast.SymbolId // every member, evaluated or not
}

// ConstEnumTable collects every const enum found in a program, keyed by
// the enum's declared name.
type ConstEnumTable struct {
	Enums map[string]*ConstEnum
}

// evaluateConstEnums walks the program for STSEnum nodes with IsConst set
// and evaluates their members per spec §4.5.1. It does not consult the
// symbol/reference tables: the evaluation is a self-contained constant
// fold over "prev_members", exactly as the spec's algorithm describes,
// so it works even when a member's initializer references a name that
// isn't (or can't be) resolved as an ordinary identifier.
func evaluateConstEnums(program *jsast.Program, model *Model) ConstEnumTable {
	table := ConstEnumTable{Enums: make(map[string]*ConstEnum)}
	var walk func(body []jsast.Stmt)
	walk = func(body []jsast.Stmt) {
		for i := range body {
			switch n := body[i].Data.(type) {
			case *jsast.STSEnum:
				if n.IsConst {
					table.Enums[n.Name.String()] = evaluateOneEnum(n, model)
				}
			case *jsast.STSModule:
				walk(n.Body)
			}
		}
	}
	walk(program.Body)
	return table
}

func evaluateOneEnum(enum *jsast.STSEnum, model *Model) *ConstEnum {
	ce := &ConstEnum{
		Name:               enum.Name,
		Members:            make(map[string]EnumValue),
		MemberNameToSymbol: make(map[string]jsast.SymbolId),
	}

	prevMembers := make(map[string]EnumValue)
	// An uninitialized first member is 0: counting starts just below it.
	first := -1.0
	nextIndex := &first

	for i := range enum.Members {
		m := &enum.Members[i]
		name := m.Name.String()

		// A dedicated symbol per member (spec §3.7's
		// member_name_to_symbol_id), independent of the lexical scope
		// chain: enum members are reached through a EDot property
		// access ("Enum.Member"), never through bare identifier lookup.
		symID := jsast.SymbolId(len(model.Symbols))
		model.Symbols = append(model.Symbols, Symbol{Name: m.Name, Decl: m.Span, Flags: SymbolEnumMember, Scope: jsast.InvalidScopeId})
		ce.MemberNameToSymbol[name] = symID

		if m.Initializer.Data != nil {
			if val, ok := evalConstExpr(m.Initializer, enum.Name.String(), prevMembers); ok {
				ce.Members[name] = val
				prevMembers[name] = val
				if val.IsString {
					nextIndex = nil
				} else {
					n := val.Number
					nextIndex = &n
				}
			} else {
				nextIndex = nil
			}
			continue
		}

		if nextIndex != nil {
			val := EnumValue{Number: *nextIndex + 1}
			ce.Members[name] = val
			prevMembers[name] = val
			n := val.Number
			nextIndex = &n
		}
		// else: unevaluated, retained only in MemberNameToSymbol.
	}

	return ce
}

// evalConstExpr evaluates e as a TypeScript const-enum constant
// expression (spec §4.5.1's permitted operation list). prevMembers
// supplies the value of earlier members in the same enum for
// cross-references; enumName lets "A.Member"-style self-references
// (where A is the enum being evaluated) resolve the same way a bare
// "Member" reference would.
func evalConstExpr(e jsast.Expr, enumName string, prevMembers map[string]EnumValue) (EnumValue, bool) {
	switch n := e.Data.(type) {
	case *jsast.ENumber:
		return EnumValue{Number: n.Value}, true

	case *jsast.EString:
		return EnumValue{IsString: true, String: n.Value}, true

	case *jsast.EIdentifier:
		v, ok := prevMembers[n.Name.String()]
		return v, ok

	case *jsast.EDot:
		if target, ok := n.Target.Data.(*jsast.EIdentifier); ok && target.Name.String() == enumName {
			v, ok := prevMembers[n.Name.String()]
			return v, ok
		}
		return EnumValue{}, false

	case *jsast.EUnary:
		v, ok := evalConstExpr(n.Value, enumName, prevMembers)
		if !ok || v.IsString {
			return EnumValue{}, false
		}
		switch n.Op {
		case jsast.UnOpPos:
			return EnumValue{Number: v.Number}, true
		case jsast.UnOpNeg:
			return EnumValue{Number: -v.Number}, true
		case jsast.UnOpCpl:
			return EnumValue{Number: float64(^int64(v.Number))}, true
		}
		return EnumValue{}, false

	case *jsast.EBinary:
		left, ok := evalConstExpr(n.Left, enumName, prevMembers)
		if !ok {
			return EnumValue{}, false
		}
		right, ok := evalConstExpr(n.Right, enumName, prevMembers)
		if !ok {
			return EnumValue{}, false
		}
		if n.Op == jsast.BinOpAdd && (left.IsString || right.IsString) {
			return EnumValue{IsString: true, String: enumValueToString(left) + enumValueToString(right)}, true
		}
		if left.IsString || right.IsString {
			return EnumValue{}, false
		}
		return evalNumericBinOp(n.Op, left.Number, right.Number)
	}
	return EnumValue{}, false
}

func enumValueToString(v EnumValue) string {
	if v.IsString {
		return v.String
	}
	return strconv.FormatFloat(v.Number, 'g', -1, 64)
}

func evalNumericBinOp(op jsast.OpCode, l, r float64) (EnumValue, bool) {
	switch op {
	case jsast.BinOpAdd:
		return EnumValue{Number: l + r}, true
	case jsast.BinOpSub:
		return EnumValue{Number: l - r}, true
	case jsast.BinOpMul:
		return EnumValue{Number: l * r}, true
	case jsast.BinOpDiv:
		return EnumValue{Number: l / r}, true
	case jsast.BinOpRem:
		return EnumValue{Number: math.Mod(l, r)}, true
	case jsast.BinOpPow:
		return EnumValue{Number: math.Pow(l, r)}, true
	case jsast.BinOpShl:
		return EnumValue{Number: float64(int32(l) << (uint32(int32(r)) & 31))}, true
	case jsast.BinOpShr:
		return EnumValue{Number: float64(int32(l) >> (uint32(int32(r)) & 31))}, true
	case jsast.BinOpUShr:
		return EnumValue{Number: float64(uint32(int32(l)) >> (uint32(int32(r)) & 31))}, true
	case jsast.BinOpBitwiseAnd:
		return EnumValue{Number: float64(int32(l) & int32(r))}, true
	case jsast.BinOpBitwiseOr:
		return EnumValue{Number: float64(int32(l) | int32(r))}, true
	case jsast.BinOpBitwiseXor:
		return EnumValue{Number: float64(int32(l) ^ int32(r))}, true
	}
	return EnumValue{}, false
}
