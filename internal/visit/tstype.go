package visit

import "github.com/parsekit/parsekit/internal/jsast"

// walkTSType structurally descends into a TSType tree far enough to reach
// the two places a TSType subtree embeds a plain Expr — TSLiteralType.Value
// and a computed TSTypeLiteralMember.Key — and feeds those through walk so
// a Visitor sees them like any other expression. TSType itself never
// becomes a Node kind Visit is called with: type-reference identifier
// resolution is out of this package's scope (see DESIGN.md), so there is
// nothing for a visitor to usefully do with a bare TSTypeReference, but an
// Expr buried inside a type annotation is still a real expression a
// minifier or reference-rewriter needs to see.
func walkTSType(v Visitor, t jsast.TSType) {
	if t == nil {
		return
	}
	switch n := t.(type) {
	case *jsast.TSUnionType:
		for _, sub := range n.Types {
			walkTSType(v, sub)
		}
	case *jsast.TSIntersectionType:
		for _, sub := range n.Types {
			walkTSType(v, sub)
		}
	case *jsast.TSArrayType:
		walkTSType(v, n.Element)
	case *jsast.TSTupleType:
		for _, sub := range n.Elements {
			walkTSType(v, sub)
		}
	case *jsast.TSFunctionType:
		walkParamListTypes(v, n.Params)
		walkTSType(v, n.ReturnType)
		walkTypeParamList(v, n.TypeParams)
	case *jsast.TSConstructorType:
		walkParamListTypes(v, n.Params)
		walkTSType(v, n.ReturnType)
		walkTypeParamList(v, n.TypeParams)
	case *jsast.TSTypeLiteral:
		for i := range n.Members {
			m := &n.Members[i]
			if m.Key.Data != nil {
				walk(v, &m.Key)
			}
			walkTSType(v, m.Type)
			walkParamListTypes(v, m.Params)
		}
	case *jsast.TSLiteralType:
		walk(v, &n.Value)
	case *jsast.TSParenthesizedType:
		walkTSType(v, n.Type)
	case *jsast.TSTypeOperator:
		walkTSType(v, n.Type)
	case *jsast.TSIndexedAccessType:
		walkTSType(v, n.Object)
		walkTSType(v, n.Index)
	case *jsast.TSConditionalType:
		walkTSType(v, n.CheckType)
		walkTSType(v, n.ExtendsType)
		walkTSType(v, n.TrueType)
		walkTSType(v, n.FalseType)
	case *jsast.TSMappedType:
		walkTSType(v, n.Constraint)
		walkTSType(v, n.NameType)
		walkTSType(v, n.ValueType)
	case *jsast.TSInferType:
		walkTSType(v, n.TypeParam.Constraint)
		walkTSType(v, n.TypeParam.Default)
	case *jsast.TSTypeReference:
		for _, sub := range n.TypeArguments {
			walkTSType(v, sub)
		}
	}
}

func walkParamListTypes(v Visitor, params []jsast.Param) {
	for i := range params {
		walkTSType(v, params[i].Type)
	}
}

func walkTypeParamList(v Visitor, params []jsast.TSTypeParam) {
	for i := range params {
		walkTSType(v, params[i].Constraint)
		walkTSType(v, params[i].Default)
	}
}
