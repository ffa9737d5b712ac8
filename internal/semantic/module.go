package semantic

import "github.com/parsekit/parsekit/internal/jsast"

// ImportKind distinguishes the shapes an import specifier can take.
type ImportKind uint8

const (
	ImportDefault ImportKind = iota
	ImportNamed
	ImportNamespace
	ImportEquals
)

// ImportEntry is spec §3.5's "(local name, imported name | default |
// namespace, module request, span)".
type ImportEntry struct {
	Local      jsast.Atom
	Imported   string // source-module name, "default", "*", or "" for import-equals
	Kind       ImportKind
	Request    string
	IsTypeOnly bool
}

// ExportEntry is spec §3.5's "(exported name, local name | star, module
// request?, span)". Request is "" unless this entry is a re-export.
type ExportEntry struct {
	Exported   string
	Local      jsast.Atom
	Request    string
	IsTypeOnly bool
}

// ModuleRecord is the per-program import/export summary (spec §3.5).
// loaded_modules is deliberately absent: per spec, it is "a lookup
// side-table populated by external resolvers" and not computed here.
type ModuleRecord struct {
	Imports          []ImportEntry
	Exports          []ExportEntry
	HasDefaultExport bool
	DefaultLocal     jsast.Atom // "" if the default export has no local name (e.g. a bare expression)
	ExportedBindings map[string]jsast.SymbolId
}

// buildModuleRecord scans program's top-level statements for import/export
// forms and assembles the module record, marking each exported symbol's
// SymbolExport flag along the way (spec §3.4: "a symbol is exported iff
// its declaration is the target of an export or an export re-export").
// This runs after the full scope/symbol pass completes, so a name
// exported before its (hoisted) declaration in source order still
// resolves correctly.
func buildModuleRecord(model *Model, program *jsast.Program) ModuleRecord {
	rec := ModuleRecord{ExportedBindings: make(map[string]jsast.SymbolId)}

	markExported := func(name string) jsast.SymbolId {
		if name == "" {
			return jsast.InvalidSymbolId
		}
		if id, ok := model.LookupBinding(program.Scope, name, FacetValue); ok {
			model.Symbols[id].Flags |= SymbolExport
			return id
		}
		return jsast.InvalidSymbolId
	}

	for i := range program.Body {
		switch n := program.Body[i].Data.(type) {
		case *jsast.SImport:
			if n.Default != nil {
				rec.Imports = append(rec.Imports, ImportEntry{
					Local: n.Default.Local, Imported: "default", Kind: ImportDefault,
					Request: n.Source, IsTypeOnly: n.IsTypeOnly || n.Default.IsTypeOnly,
				})
			}
			if n.Namespace != nil {
				rec.Imports = append(rec.Imports, ImportEntry{
					Local: n.Namespace.Local, Imported: "*", Kind: ImportNamespace,
					Request: n.Source, IsTypeOnly: n.IsTypeOnly || n.Namespace.IsTypeOnly,
				})
			}
			for _, sp := range n.Named {
				rec.Imports = append(rec.Imports, ImportEntry{
					Local: sp.Local, Imported: sp.Imported.String(), Kind: ImportNamed,
					Request: n.Source, IsTypeOnly: n.IsTypeOnly || sp.IsTypeOnly,
				})
			}

		case *jsast.STSImportEquals:
			imported := ""
			if n.IsRequireCall {
				imported = "require"
			}
			rec.Imports = append(rec.Imports, ImportEntry{
				Local: n.Local, Imported: imported, Kind: ImportEquals, Request: n.Source,
			})

		case *jsast.SExportNamed:
			for _, sp := range n.Specifiers {
				rec.Exports = append(rec.Exports, ExportEntry{
					Exported: sp.Exported.String(), Local: sp.Local, Request: n.Source,
					IsTypeOnly: n.IsTypeOnly || sp.IsTypeOnly,
				})
				if n.Source == "" {
					if id := markExported(sp.Local.String()); id.IsValid() {
						rec.ExportedBindings[sp.Exported.String()] = id
					}
				}
			}

		case *jsast.SExportDefault:
			rec.HasDefaultExport = true
			name := defaultExportLocalName(n.Value)
			rec.DefaultLocal = name
			if id := markExported(name.String()); id.IsValid() {
				rec.ExportedBindings["default"] = id
			}

		case *jsast.SExportAll:
			exported := "*"
			if !n.As.IsEmpty() {
				exported = n.As.String()
			}
			rec.Exports = append(rec.Exports, ExportEntry{Exported: exported, Request: n.Source})

		case *jsast.SExportAssign:
			rec.HasDefaultExport = true

		case *jsast.SVariableDeclaration:
			if n.IsExported {
				for j := range n.Declarators {
					for _, name := range bindingNames(&n.Declarators[j].Binding) {
						rec.recordDirectExport(model, program.Scope, name)
					}
				}
			}

		case *jsast.SFunction:
			if n.IsExported && n.Fn.Name != nil {
				rec.recordDirectExport(model, program.Scope, n.Fn.Name.Name.String())
			}

		case *jsast.SClass:
			if n.IsExported && n.Class.Name != nil {
				rec.recordDirectExport(model, program.Scope, n.Class.Name.Name.String())
			}

		case *jsast.STSInterface:
			if n.IsExported {
				rec.recordDirectExport(model, program.Scope, n.Name.String())
			}

		case *jsast.STSTypeAlias:
			if n.IsExported {
				rec.recordDirectExport(model, program.Scope, n.Name.String())
			}

		case *jsast.STSModule:
			if n.IsExported {
				rec.recordDirectExport(model, program.Scope, n.Name.String())
			}

		case *jsast.STSEnum:
			if n.IsExported {
				rec.recordDirectExport(model, program.Scope, n.Name.String())
			}
		}
	}

	return rec
}

// recordDirectExport marks name's symbol exported and adds a same-named
// export entry, for the "export <decl>" forms that bind and export in a
// single statement rather than through a separate export specifier list.
func (rec *ModuleRecord) recordDirectExport(model *Model, scope ScopeId, name string) {
	id, ok := model.LookupBinding(scope, name, FacetValue)
	if !ok {
		return
	}
	model.Symbols[id].Flags |= SymbolExport
	rec.ExportedBindings[name] = id
	rec.Exports = append(rec.Exports, ExportEntry{Exported: name, Local: model.Symbols[id].Name})
}

// bindingNames flattens a (possibly destructuring) binding pattern into
// the plain identifier names it declares, for attaching export entries to
// every name a single "export const {a, b} = obj" statement introduces.
func bindingNames(b *jsast.Binding) []string {
	switch n := b.Data.(type) {
	case *jsast.BIdentifier:
		return []string{n.Name.String()}
	case *jsast.BArray:
		var names []string
		for i := range n.Items {
			names = append(names, bindingNames(&n.Items[i].Binding)...)
		}
		return names
	case *jsast.BObject:
		var names []string
		for i := range n.Properties {
			names = append(names, bindingNames(&n.Properties[i].Value)...)
		}
		return names
	}
	return nil
}

// defaultExportLocalName reports the local name a named function/class
// export-default declaration also binds, or the zero Atom for an
// anonymous or plain-expression default export.
func defaultExportLocalName(v jsast.Stmt) jsast.Atom {
	switch d := v.Data.(type) {
	case *jsast.SFunction:
		if d.Fn.Name != nil {
			return d.Fn.Name.Name
		}
	case *jsast.SClass:
		if d.Class.Name != nil {
			return d.Class.Name.Name
		}
	}
	return jsast.Atom{}
}
