package sdef_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goxa/sdef"
)

func parseDoc(t *testing.T, doc string) *sdef.Dictionary {
	t.Helper()
	d, diags, err := sdef.Parse(strings.NewReader(doc), "Test")
	require.NoError(t, err)
	require.Empty(t, diags)
	return d
}

func TestMergeExtensionIntoSameSuite(t *testing.T) {
	d := parseDoc(t, `<dictionary><suite name="S">
		<class name="document">
			<property name="name" type="text"/>
		</class>
		<class-extension extends="document">
			<property name="modified" type="boolean"/>
			<element type="slide"/>
			<responds-to command="close"/>
		</class-extension>
	</suite></dictionary>`)

	diags := sdef.Merge(d)
	assert.Empty(t, diags)

	suite := d.Suites[0]
	assert.Nil(t, suite.Extensions, "extensions are consumed")
	require.Len(t, suite.Classes, 1)

	doc := suite.Classes[0]
	require.Len(t, doc.Properties, 2)
	assert.Equal(t, "name", doc.Properties[0].Name, "base members come first")
	assert.Equal(t, "modified", doc.Properties[1].Name)
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "slides", doc.Elements[0].Name)
	assert.Equal(t, []string{"close"}, doc.RespondsTo)
}

func TestMergeMultipleExtensionsKeepDocumentOrder(t *testing.T) {
	d := parseDoc(t, `<dictionary><suite name="S">
		<class name="window"><property name="a" type="text"/></class>
		<class-extension extends="window"><property name="b" type="text"/></class-extension>
		<class-extension extends="window"><property name="c" type="text"/></class-extension>
	</suite></dictionary>`)

	require.Empty(t, sdef.Merge(d))

	w := d.ClassByName("window")
	require.NotNil(t, w)
	var names []string
	for _, p := range w.Properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestMergePlaceholderReconciledAcrossSuites(t *testing.T) {
	d := parseDoc(t, `<dictionary>
		<suite name="Standard">
			<class name="document"><property name="name" type="text"/></class>
		</suite>
		<suite name="App">
			<class-extension extends="document"><property name="modified" type="boolean"/></class-extension>
		</suite>
	</dictionary>`)

	require.Empty(t, sdef.Merge(d))

	assert.Empty(t, d.Suites[1].Classes, "the placeholder is folded away")
	doc := d.ClassByName("document")
	require.NotNil(t, doc)
	require.Len(t, doc.Properties, 2)
	assert.Equal(t, "modified", doc.Properties[1].Name)
	assert.False(t, doc.Placeholder)
}

func TestMergeCrossDocumentExtensionSurvivesAsClass(t *testing.T) {
	d := parseDoc(t, `<dictionary><suite name="App">
		<class-extension extends="rich text"><property name="color" type="text"/></class-extension>
	</suite></dictionary>`)

	diags := sdef.Merge(d)
	require.Len(t, diags, 1)

	var ce *sdef.CrossDocumentExtensionError
	require.ErrorAs(t, diags[0], &ce)
	assert.Equal(t, "App", ce.Suite)
	assert.Equal(t, "rich_text", ce.Extends)

	rt := d.ClassByName("rich_text")
	require.NotNil(t, rt, "the contributions still become a class")
	assert.False(t, rt.Placeholder)
	require.Len(t, rt.Properties, 1)
	assert.Equal(t, "color", rt.Properties[0].Name)
}

func TestMergeDuplicateMembersGetNumericSuffixes(t *testing.T) {
	d := parseDoc(t, `<dictionary><suite name="S">
		<class name="item">
			<property name="name" type="text"/>
		</class>
		<class-extension extends="item">
			<property name="name" type="text"/>
			<property name="name" type="text"/>
		</class-extension>
	</suite></dictionary>`)

	diags := sdef.Merge(d)
	require.Len(t, diags, 2)
	for _, diag := range diags {
		var de *sdef.DuplicateIdentifierError
		require.ErrorAs(t, diag, &de)
		assert.Equal(t, "item", de.Class)
		assert.Equal(t, "name", de.Name)
	}

	item := d.ClassByName("item")
	require.Len(t, item.Properties, 3)
	assert.Equal(t, "name", item.Properties[0].Name)
	assert.Equal(t, "name_2", item.Properties[1].Name)
	assert.Equal(t, "name_3", item.Properties[2].Name)
}

func TestMergePropertiesAndElementsShareNamespace(t *testing.T) {
	d := parseDoc(t, `<dictionary><suite name="S">
		<class name="shelf">
			<property name="books" type="integer"/>
			<element type="book"/>
		</class>
	</suite></dictionary>`)

	diags := sdef.Merge(d)
	require.Len(t, diags, 1)

	var de *sdef.DuplicateIdentifierError
	require.ErrorAs(t, diags[0], &de)
	assert.Equal(t, "books", de.Name)
	assert.Equal(t, "books_2", de.Renamed)

	shelf := d.ClassByName("shelf")
	assert.Equal(t, "books_2", shelf.Elements[0].Name, "the element is renamed, the property keeps its name")
}
