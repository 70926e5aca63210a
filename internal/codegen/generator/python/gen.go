// Package python emits Python bindings in the scripting-bridge wrapper style:
// per class, a fast-enumeration list class followed by the singular class.
package python

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"goxa/binding"
	"goxa/sdef"
)

// Generate renders the model as a single Python source file at outPath.
func Generate(logger *slog.Logger, outPath string, m *binding.Model) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Generated bindings for %q.\n", m.AppName)
	b.WriteString("from typing import Any, Union\n")
	b.WriteString("\nfrom goxa_runtime import XAList, XAObject\n")

	for _, d := range m.Classes {
		writeListClass(&b, d)
		writeSingularClass(&b, d)
	}

	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	logger.Debug("wrote Python bindings", "path", outPath, "classes", len(m.Classes))
	return nil
}

func writeListClass(b *strings.Builder, d *binding.Descriptor) {
	name := d.QualifiedName

	fmt.Fprintf(b, "\n\nclass %sList(XAList):\n", name)
	fmt.Fprintf(b, "\t\"\"\"A wrapper around lists of %ss that employs fast enumeration techniques.\"\"\"\n", d.ClassName)
	b.WriteString("\tdef __init__(self, properties: dict, filter: Union[dict, None] = None):\n")
	fmt.Fprintf(b, "\t\tsuper().__init__(properties, %s, filter)\n", name)

	for _, p := range d.Properties {
		fmt.Fprintf(b, "\n\tdef %s(self) -> list['%s']:\n", p.Name, pyType(p.Type))
		if p.Description != "" {
			fmt.Fprintf(b, "\t\t\"\"\"%s\"\"\"\n", p.Description)
		}
		fmt.Fprintf(b, "\t\treturn list(self.xa_elem.arrayByApplyingSelector_(%q))\n", p.Name)
	}

	for _, p := range d.Properties {
		fmt.Fprintf(b, "\n\tdef by_%s(self, %s) -> '%s':\n", p.Name, p.Name, name)
		fmt.Fprintf(b, "\t\t\"\"\"Retrieves the first %s whose %s matches the given value.\"\"\"\n", d.ClassName, p.Name)
		fmt.Fprintf(b, "\t\treturn self.by_property(%q, %s)\n", p.Name, p.Name)
	}
}

func writeSingularClass(b *strings.Builder, d *binding.Descriptor) {
	name := d.QualifiedName

	fmt.Fprintf(b, "\n\nclass %s(XAObject):\n", name)
	if d.Description != "" {
		fmt.Fprintf(b, "\t\"\"\"%s\"\"\"\n", d.Description)
	} else {
		fmt.Fprintf(b, "\t\"\"\"A %s object.\"\"\"\n", d.ClassName)
	}

	for _, p := range d.Properties {
		b.WriteString("\n\t@property\n")
		fmt.Fprintf(b, "\tdef %s(self) -> '%s':\n", p.Name, pyType(p.Type))
		if p.Description != "" {
			fmt.Fprintf(b, "\t\t\"\"\"%s\"\"\"\n", p.Description)
		}
		fmt.Fprintf(b, "\t\treturn self.xa_elem.%s()\n", p.Name)
	}

	for _, e := range d.Elements {
		fmt.Fprintf(b, "\n\tdef %s(self, filter: Union[dict, None] = None) -> '%sList':\n", e.Name, e.QualifiedName)
		fmt.Fprintf(b, "\t\t\"\"\"Returns a list of %s matching the given filter.\"\"\"\n", e.Name)
		fmt.Fprintf(b, "\t\treturn self._new_element(self.xa_elem.%s(), %sList, filter)\n", e.Name, e.QualifiedName)
	}

	for _, c := range d.Commands {
		writeCommand(b, c)
	}
}

func writeCommand(b *strings.Builder, c binding.CommandSpec) {
	sig := "self"
	var callArgs []string
	for _, p := range c.Params {
		argName := p.Name
		if p.Direct {
			argName = "direct_parameter"
		}
		sig += fmt.Sprintf(", %s: '%s'", argName, pyType(p.Type))
		callArgs = append(callArgs, argName)
	}

	fmt.Fprintf(b, "\n\tdef %s(%s):\n", c.MethodName, sig)
	if c.Description != "" {
		fmt.Fprintf(b, "\t\t\"\"\"%s\"\"\"\n", c.Description)
	}
	fmt.Fprintf(b, "\t\treturn self.xa_elem.%s(%s)\n", c.Name, strings.Join(callArgs, ", "))
}

func pyType(t sdef.TypeRef) string {
	switch t.Kind {
	case sdef.KindString:
		return "str"
	case sdef.KindBool:
		return "bool"
	case sdef.KindFloat:
		return "float"
	case sdef.KindInt:
		return "int"
	case sdef.KindRectangle:
		return "tuple[int, int, int, int]"
	case sdef.KindObjectRef:
		return "XAObject"
	case sdef.KindClass:
		return t.QualifiedName
	}
	return "Any"
}
