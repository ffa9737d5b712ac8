package source

import (
	"fmt"
	"path"
	"strings"
)

// Language distinguishes JavaScript from TypeScript (spec §3.2).
type Language uint8

const (
	LanguageJS Language = iota
	LanguageTS
)

// ModuleKind distinguishes Script from Module parsing semantics.
type ModuleKind uint8

const (
	ModuleKindScript ModuleKind = iota
	ModuleKindModule
)

// Variant distinguishes plain ECMAScript from JSX-bearing sources.
type Variant uint8

const (
	VariantStandard Variant = iota
	VariantJSX
)

// SourceType is the fully classified shape of one input file, derived from
// its path by FromPath or built up manually by a caller via the With*
// setters (grounded on oxc_ast::source_type::SourceType's builder style).
type SourceType struct {
	Language        Language
	ModuleKind       ModuleKind
	Variant          Variant
	IsDeclarationFile bool
	AlwaysStrict     bool
}

func (s SourceType) IsScript() bool       { return s.ModuleKind == ModuleKindScript }
func (s SourceType) IsModule() bool       { return s.ModuleKind == ModuleKindModule }
func (s SourceType) IsJavaScript() bool   { return s.Language == LanguageJS }
func (s SourceType) IsTypeScript() bool   { return s.Language == LanguageTS }
func (s SourceType) IsJSX() bool          { return s.Variant == VariantJSX }

func (s SourceType) WithScript(yes bool) SourceType {
	if yes {
		s.ModuleKind = ModuleKindScript
	}
	return s
}

func (s SourceType) WithModule(yes bool) SourceType {
	if yes {
		s.ModuleKind = ModuleKindModule
	}
	return s
}

func (s SourceType) WithAlwaysStrict(yes bool) SourceType {
	s.AlwaysStrict = yes
	return s
}

// UnknownExtensionError is returned by FromPath when the file name is
// missing or its extension is not one of the eight recognized forms
// (spec §6.3).
type UnknownExtensionError struct {
	Path string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("unknown extension for %q: expected one of .js, .mjs, .cjs, .jsx for "+
		"JavaScript, or .ts, .mts, .cts, .tsx for TypeScript", e.Path)
}

// validExtensions is the closed set named in spec §3.2/§6.3.
var validExtensions = map[string]bool{
	"js": true, "mjs": true, "cjs": true, "jsx": true,
	"ts": true, "mts": true, "cts": true, "tsx": true,
}

// FromPath classifies a source file purely from its name, per spec §4.3.
// module_kind always defaults to Module; callers override it explicitly —
// oxc's from_path does the same (see SPEC_FULL.md §5), it never infers
// Script from the ".cjs" extension.
func FromPath(p string) (SourceType, error) {
	fileName := path.Base(p)
	if fileName == "" || fileName == "." || fileName == "/" {
		return SourceType{}, &UnknownExtensionError{Path: p}
	}

	ext := extensionOf(fileName)
	if ext == "" || !validExtensions[ext] {
		return SourceType{}, &UnknownExtensionError{Path: p}
	}

	isDeclaration := strings.HasSuffix(fileName, ".d.ts") ||
		strings.HasSuffix(fileName, ".d.mts") ||
		strings.HasSuffix(fileName, ".d.cts")

	var language Language
	switch ext {
	case "js", "mjs", "cjs", "jsx":
		language = LanguageJS
	case "ts", "mts", "cts", "tsx":
		language = LanguageTS
	}

	var variant Variant
	switch ext {
	case "js", "mjs", "cjs", "jsx", "tsx":
		variant = VariantJSX
	default:
		variant = VariantStandard
	}

	return SourceType{
		Language:          language,
		ModuleKind:        ModuleKindModule,
		Variant:           variant,
		IsDeclarationFile: isDeclaration,
		AlwaysStrict:      false,
	}, nil
}

// extensionOf returns the file extension without its leading dot, or "" if
// the name has none. path.Ext keeps the dot and only looks at the last
// segment, which is what we want: "archive.d.ts" -> "ts", not "d.ts".
func extensionOf(fileName string) string {
	e := path.Ext(fileName)
	if e == "" {
		return ""
	}
	return strings.TrimPrefix(e, ".")
}
