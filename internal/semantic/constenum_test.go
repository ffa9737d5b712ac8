package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstEnumAutoIncrement(t *testing.T) {
	model, sink := build(t, `
		const enum Direction {
			Up,
			Down,
			Left,
			Right,
		}
	`, DefaultOptions())
	require.False(t, sink.HasErrors())

	enum, ok := model.ConstEnums.Enums["Direction"]
	require.True(t, ok)
	require.Equal(t, EnumValue{Number: 0}, enum.Members["Up"])
	require.Equal(t, EnumValue{Number: 1}, enum.Members["Down"])
	require.Equal(t, EnumValue{Number: 2}, enum.Members["Left"])
	require.Equal(t, EnumValue{Number: 3}, enum.Members["Right"])
}

func TestConstEnumStringMembersDoNotAutoIncrement(t *testing.T) {
	model, _ := build(t, `
		const enum Color {
			Red = "RED",
			Green = "GREEN",
		}
	`, DefaultOptions())

	enum := model.ConstEnums.Enums["Color"]
	require.Equal(t, EnumValue{IsString: true, String: "RED"}, enum.Members["Red"])
	require.Equal(t, EnumValue{IsString: true, String: "GREEN"}, enum.Members["Green"])
}

func TestConstEnumSelfReferenceAndArithmetic(t *testing.T) {
	model, _ := build(t, `
		const enum Bits {
			A = 1,
			B = A << 1,
			C = A | B,
		}
	`, DefaultOptions())

	enum := model.ConstEnums.Enums["Bits"]
	require.Equal(t, EnumValue{Number: 1}, enum.Members["A"])
	require.Equal(t, EnumValue{Number: 2}, enum.Members["B"])
	require.Equal(t, EnumValue{Number: 3}, enum.Members["C"])
}

func TestConstEnumMembersGetDedicatedSymbols(t *testing.T) {
	model, _ := build(t, `
		const enum Status {
			Ok,
			Err,
		}
	`, DefaultOptions())

	enum := model.ConstEnums.Enums["Status"]
	okSym, ok := enum.MemberNameToSymbol["Ok"]
	require.True(t, ok)
	sym := model.SymbolOf(okSym)
	require.True(t, sym.Flags.Has(SymbolEnumMember))
	require.False(t, sym.Scope.IsValid(), "enum members live outside the lexical scope chain")
}
