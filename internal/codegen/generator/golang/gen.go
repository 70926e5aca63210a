// Package golang emits Go bindings for a binding model: one source file with
// a collection type and a singular type per class, both thin typed wrappers
// over the live runtime.
package golang

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"goxa/binding"
	"goxa/internal/codegen/common"
	"goxa/sdef"
)

// Generate renders the model as a single Go source file at outPath. Classes
// appear in suite order, each as its collection type followed by its
// singular type.
func Generate(logger *slog.Logger, outPath string, m *binding.Model) error {
	var b strings.Builder
	writeHeader(&b, m)

	for _, d := range m.Classes {
		writeCollection(&b, d)
		writeSingular(&b, d)
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Debug("wrote Go bindings", "path", outPath, "classes", len(m.Classes))
	return nil
}

func writeHeader(b *strings.Builder, m *binding.Model) {
	pkg := common.PackageName(m.AppName)
	fmt.Fprintf(b, "// Code generated by goxa for %q. DO NOT EDIT.\n\n", m.AppName)
	fmt.Fprintf(b, "package %s\n\n", pkg)
	b.WriteString("import (\n")
	b.WriteString("\t\"context\"\n\n")
	if usesBridge(m) {
		b.WriteString("\t\"goxa/bridge\"\n")
	}
	b.WriteString("\t\"goxa/live\"\n")
	b.WriteString(")\n")
}

// writeCollection renders the fast-enumeration wrapper: one bulk accessor
// and one by-property lookup per property.
func writeCollection(b *strings.Builder, d *binding.Descriptor) {
	name := d.QualifiedName
	list := name + "List"

	fmt.Fprintf(b, "\n// %s is an ordered collection of %s elements. Property\n", list, d.ClassName)
	fmt.Fprintf(b, "// accessors read the whole collection in a single round trip.\n")
	fmt.Fprintf(b, "type %s struct {\n\tColl *live.Collection\n}\n", list)

	for _, p := range d.Properties {
		method := common.ToPascalCase(p.Name)
		ret := bulkType(p.Type)

		fmt.Fprintf(b, "\n// %s returns each element's %s, in collection order.\n", method, p.Name)
		fmt.Fprintf(b, "func (l %s) %s(ctx context.Context) (%s, error) {\n", list, method, ret)
		fmt.Fprintf(b, "\tvals, err := l.Coll.BulkProperty(ctx, %q)\n", p.Name)
		b.WriteString("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
		if conv := bulkConvCall(p.Type); conv != "" {
			fmt.Fprintf(b, "\treturn %s(vals)\n", conv)
		} else {
			b.WriteString("\treturn vals, nil\n")
		}
		b.WriteString("}\n")
	}

	for _, p := range d.Properties {
		method := "By" + common.ToPascalCase(p.Name)

		fmt.Fprintf(b, "\n// %s returns the first element whose %s equals the given value.\n", method, p.Name)
		fmt.Fprintf(b, "func (l %s) %s(ctx context.Context, value any) (%s, bool, error) {\n", list, method, name)
		fmt.Fprintf(b, "\tobj, ok, err := l.Coll.ByProperty(ctx, %q, value)\n", p.Name)
		fmt.Fprintf(b, "\tif err != nil || !ok {\n\t\treturn %s{}, ok, err\n\t}\n", name)
		fmt.Fprintf(b, "\treturn %s{Obj: obj}, true, nil\n", name)
		b.WriteString("}\n")
	}
}

// writeSingular renders the per-object wrapper: property getters, element
// accessors, and command methods.
func writeSingular(b *strings.Builder, d *binding.Descriptor) {
	name := d.QualifiedName

	b.WriteString("\n")
	if d.Description != "" {
		fmt.Fprintf(b, "// %s: %s\n", name, d.Description)
	} else {
		fmt.Fprintf(b, "// %s wraps one %s object.\n", name, d.ClassName)
	}
	fmt.Fprintf(b, "type %s struct {\n\tObj *live.Object\n}\n", name)

	for _, p := range d.Properties {
		writeGetter(b, name, p)
	}
	for _, e := range d.Elements {
		writeElementAccessor(b, name, e)
	}
	for _, c := range d.Commands {
		writeCommand(b, name, c)
	}
}

func writeGetter(b *strings.Builder, recv string, p binding.PropertySpec) {
	method := common.ToPascalCase(p.Name)
	ret := goType(p.Type)
	zero := goZero(p.Type)

	b.WriteString("\n")
	if p.Description != "" {
		fmt.Fprintf(b, "// %s: %s\n", method, p.Description)
	}
	fmt.Fprintf(b, "func (o %s) %s(ctx context.Context) (%s, error) {\n", recv, method, ret)
	fmt.Fprintf(b, "\tv, err := o.Obj.Property(ctx, %q)\n", p.Name)
	fmt.Fprintf(b, "\tif err != nil {\n\t\treturn %s, err\n\t}\n", zero)
	if p.Type.Kind == sdef.KindClass {
		b.WriteString("\tobj, err := live.AsObject(v)\n")
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn %s, err\n\t}\n", zero)
		fmt.Fprintf(b, "\treturn %s{Obj: obj}, nil\n", ret)
	} else {
		fmt.Fprintf(b, "\treturn %s(v)\n", convCall(p.Type))
	}
	b.WriteString("}\n")
}

func writeElementAccessor(b *strings.Builder, recv string, e binding.ElementSpec) {
	method := common.ToPascalCase(e.Name)
	list := e.QualifiedName + "List"

	fmt.Fprintf(b, "\n// %s returns the contained %s, optionally filtered.\n", method, e.Name)
	fmt.Fprintf(b, "func (o %s) %s(ctx context.Context, filter live.Filter) (%s, error) {\n", recv, method, list)
	fmt.Fprintf(b, "\tcoll, err := o.Obj.Elements(ctx, %q, filter)\n", e.Name)
	fmt.Fprintf(b, "\tif err != nil {\n\t\treturn %s{}, err\n\t}\n", list)
	fmt.Fprintf(b, "\treturn %s{Coll: coll}, nil\n", list)
	b.WriteString("}\n")
}

func writeCommand(b *strings.Builder, recv string, c binding.CommandSpec) {
	method := common.ToPascalCase(c.MethodName)

	var args []string
	directExpr := "nil"
	var named []binding.ParamSpec
	for _, p := range c.Params {
		if p.Direct {
			args = append(args, "directParameter "+goType(p.Type))
			directExpr = paramValueExpr("directParameter", p.Type)
			continue
		}
		args = append(args, common.ToCamelCase(p.Name)+" "+goType(p.Type))
		named = append(named, p)
	}

	b.WriteString("\n")
	if c.Description != "" {
		fmt.Fprintf(b, "// %s: %s\n", method, c.Description)
	}
	sig := "ctx context.Context"
	if len(args) > 0 {
		sig += ", " + strings.Join(args, ", ")
	}
	fmt.Fprintf(b, "func (o %s) %s(%s) (any, error) {\n", recv, method, sig)
	if len(named) > 0 {
		b.WriteString("\tnamed := map[string]any{\n")
		for _, p := range named {
			fmt.Fprintf(b, "\t\t%q: %s,\n", p.Name, paramValueExpr(common.ToCamelCase(p.Name), p.Type))
		}
		b.WriteString("\t}\n")
		fmt.Fprintf(b, "\treturn o.Obj.Invoke(ctx, %q, %s, named)\n", c.Name, directExpr)
	} else {
		fmt.Fprintf(b, "\treturn o.Obj.Invoke(ctx, %q, %s, nil)\n", c.Name, directExpr)
	}
	b.WriteString("}\n")
}
