package sdef

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// xml decoding shapes. Only the fixed sdef vocabulary is understood; anything
// else in the document is ignored.
type xmlDictionary struct {
	XMLName xml.Name   `xml:"dictionary"`
	Suites  []xmlSuite `xml:"suite"`
}

type xmlSuite struct {
	Name        string       `xml:"name,attr"`
	Description string       `xml:"description,attr"`
	Classes     []xmlClass   `xml:"class"`
	Extensions  []xmlClass   `xml:"class-extension"`
	Commands    []xmlCommand `xml:"command"`
}

type xmlClass struct {
	Name        string           `xml:"name,attr"`
	Extends     string           `xml:"extends,attr"`
	Description string           `xml:"description,attr"`
	Properties  []xmlProperty    `xml:"property"`
	Elements    []xmlElement     `xml:"element"`
	RespondsTo  []xmlRespondsTo  `xml:"responds-to"`
}

type xmlProperty struct {
	Name        string `xml:"name,attr"`
	Type        string `xml:"type,attr"`
	Description string `xml:"description,attr"`
}

type xmlElement struct {
	Type string `xml:"type,attr"`
}

type xmlRespondsTo struct {
	// Older dictionaries use name=, newer ones command=.
	Command string `xml:"command,attr"`
	Name    string `xml:"name,attr"`
}

type xmlCommand struct {
	Name        string        `xml:"name,attr"`
	Description string        `xml:"description,attr"`
	Direct      *xmlParameter `xml:"direct-parameter"`
	Parameters  []xmlParameter `xml:"parameter"`
}

type xmlParameter struct {
	Name        string `xml:"name,attr"`
	Type        string `xml:"type,attr"`
	Description string `xml:"description,attr"`
}

// Parse reads one sdef document and builds the unresolved schema model.
//
// Malformed elements (missing required attributes) are reported as
// *SchemaError diagnostics and skipped; they never abort the rest of the
// document. Only a syntactically broken XML stream returns a non-nil error.
func Parse(r io.Reader, appName string) (*Dictionary, []error, error) {
	var doc xmlDictionary
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("decode sdef: %w", err)
	}

	d := &Dictionary{AppName: appName}
	var diags []error

	for _, xs := range doc.Suites {
		suite := &Suite{
			Name:        xs.Name,
			Description: xs.Description,
			Commands:    make(map[string]*Command),
		}

		for _, xe := range xs.Extensions {
			if xe.Extends == "" {
				diags = append(diags, &SchemaError{Suite: xs.Name, Context: "class-extension", Missing: "extends"})
				continue
			}
			ext := &Extension{
				Extends:     normalizeName(xe.Extends),
				Description: xe.Description,
			}
			ctx := fmt.Sprintf("class-extension of %q", xe.Extends)
			ext.Properties, ext.Elements, ext.RespondsTo = parseMembers(xs.Name, ctx, xe, &diags)
			suite.Extensions = append(suite.Extensions, ext)
		}

		for _, xc := range xs.Classes {
			if xc.Name == "" {
				diags = append(diags, &SchemaError{Suite: xs.Name, Context: "class", Missing: "name"})
				continue
			}
			class := &Class{
				Name:        normalizeName(xc.Name),
				Description: xc.Description,
			}
			ctx := fmt.Sprintf("class %q", xc.Name)
			class.Properties, class.Elements, class.RespondsTo = parseMembers(xs.Name, ctx, xc, &diags)
			suite.Classes = append(suite.Classes, class)
		}

		for _, xcmd := range xs.Commands {
			cmd, ok := parseCommand(xs.Name, xcmd, &diags)
			if !ok {
				continue
			}
			suite.Commands[cmd.Name] = cmd
		}

		d.Suites = append(d.Suites, suite)
	}
	return d, diags, nil
}

func parseMembers(suiteName, ctx string, xc xmlClass, diags *[]error) ([]Property, []Element, []string) {
	var props []Property
	for _, xp := range xc.Properties {
		if xp.Name == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: ctx + ": property", Missing: "name"})
			continue
		}
		if xp.Type == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: fmt.Sprintf("%s: property %q", ctx, xp.Name), Missing: "type"})
			continue
		}
		props = append(props, Property{
			Name:        normalizeName(xp.Name),
			RawType:     xp.Type,
			Description: xp.Description,
		})
	}

	var elems []Element
	for _, xe := range xc.Elements {
		if xe.Type == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: ctx + ": element", Missing: "type"})
			continue
		}
		elems = append(elems, Element{
			Name:      normalizeName(xe.Type) + "s",
			ClassName: normalizeName(xe.Type),
		})
	}

	var responds []string
	for _, xr := range xc.RespondsTo {
		name := xr.Command
		if name == "" {
			name = xr.Name
		}
		if name == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: ctx + ": responds-to", Missing: "command"})
			continue
		}
		responds = append(responds, normalizeName(name))
	}
	return props, elems, responds
}

func parseCommand(suiteName string, xcmd xmlCommand, diags *[]error) (*Command, bool) {
	if xcmd.Name == "" {
		*diags = append(*diags, &SchemaError{Suite: suiteName, Context: "command", Missing: "name"})
		return nil, false
	}
	cmd := &Command{
		Name:        normalizeName(xcmd.Name),
		Description: xcmd.Description,
	}

	if xcmd.Direct != nil {
		if xcmd.Direct.Type == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: fmt.Sprintf("command %q: direct-parameter", xcmd.Name), Missing: "type"})
		} else {
			cmd.Parameters = append(cmd.Parameters, Parameter{
				Direct:      true,
				RawType:     xcmd.Direct.Type,
				Description: xcmd.Direct.Description,
			})
		}
	}

	// A single-word command with a direct parameter would render to the
	// same method shape as a zero-argument property accessor, so its
	// generated method name gets a disambiguating suffix. The wire name
	// stays untouched.
	cmd.MethodName = cmd.Name
	if len(cmd.Parameters) > 0 && !strings.Contains(cmd.Name, "_") {
		cmd.MethodName += "_command"
	}

	for _, xp := range xcmd.Parameters {
		if xp.Name == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: fmt.Sprintf("command %q: parameter", xcmd.Name), Missing: "name"})
			continue
		}
		if xp.Type == "" {
			*diags = append(*diags, &SchemaError{Suite: suiteName, Context: fmt.Sprintf("command %q: parameter %q", xcmd.Name, xp.Name), Missing: "type"})
			continue
		}
		cmd.Parameters = append(cmd.Parameters, Parameter{
			Name:        normalizeName(xp.Name),
			RawType:     xp.Type,
			Description: xp.Description,
		})
	}
	return cmd, true
}
