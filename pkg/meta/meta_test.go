package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() *File {
	return &File{
		Filename: "sample.h",
		Includes: []string{`"a.h"`},
		Decls: []*Decl{
			{Kind: DeclMacro, Name: "TOKEN", Line: 1},
			{
				Kind: DeclNamespace, Name: "outer", Line: 3,
				Children: []*Decl{
					{
						Kind: DeclStruct, Name: "widget", Line: 4,
						Members: []Member{
							{Kind: MemberField, Name: "w", Type: "int"},
							{Kind: MemberMethod, Name: "resize", Params: []Param{{Type: "int", Name: "n"}}},
						},
						Children: []*Decl{
							{Kind: DeclEnum, Name: "mode", Line: 6, Enumerators: []Enumerator{
								{Name: "on"}, {Name: "off", Value: "2"},
							}},
						},
					},
					{Kind: DeclAlias, Name: "W", Target: "widget", Scope: "outer", Line: 10},
				},
			},
			{Kind: DeclNamespace, Name: "", Line: 12, Children: []*Decl{
				{Kind: DeclStruct, Name: "hidden", Line: 13},
			}},
		},
	}
}

func TestLookup(t *testing.T) {
	f := sampleFile()

	widget := f.Lookup("outer::widget")
	require.NotNil(t, widget)
	assert.Equal(t, DeclStruct, widget.Kind)

	mode := f.Lookup("outer::widget::mode")
	require.NotNil(t, mode)
	assert.Equal(t, DeclEnum, mode.Kind)

	assert.Nil(t, f.Lookup("outer::missing"))
	assert.Nil(t, f.Lookup("missing"))
	assert.Nil(t, f.Lookup("outer::widget::mode::on"))

	// Leading/trailing separators are tolerated.
	assert.NotNil(t, f.Lookup("::outer::widget"))
}

func TestLookupSkipsAnonymousNamespace(t *testing.T) {
	f := sampleFile()
	assert.Nil(t, f.Lookup("hidden"))
	assert.Nil(t, f.Lookup("::hidden"))
}

func TestWalkOrder(t *testing.T) {
	f := sampleFile()

	var names []string
	f.Walk(func(d *Decl) {
		names = append(names, d.Name)
	})

	assert.Equal(t, []string{"TOKEN", "outer", "widget", "mode", "W", "", "hidden"}, names)
}

func TestFind(t *testing.T) {
	f := sampleFile()
	outer := f.Lookup("outer")
	require.NotNil(t, outer)

	assert.NotNil(t, outer.Find("widget"))
	assert.NotNil(t, outer.Find("W"))
	assert.Nil(t, outer.Find("mode")) // not a direct child
}

func TestDeclsByKind(t *testing.T) {
	f := sampleFile()

	assert.Len(t, f.DeclsByKind(DeclStruct), 2)
	assert.Len(t, f.DeclsByKind(DeclNamespace), 2)
	assert.Len(t, f.DeclsByKind(DeclEnum), 1)
	assert.Len(t, f.DeclsByKind(DeclAlias), 1)
	assert.Len(t, f.DeclsByKind(DeclMacro), 1)
	assert.Empty(t, f.DeclsByKind(DeclClass))
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "namespace", DeclNamespace.String())
	assert.Equal(t, "struct", DeclStruct.String())
	assert.Equal(t, "class", DeclClass.String())
	assert.Equal(t, "enum", DeclEnum.String())
	assert.Equal(t, "alias", DeclAlias.String())
	assert.Equal(t, "macro", DeclMacro.String())
	assert.Equal(t, "unknown", DeclUnknown.String())

	assert.Equal(t, "field", MemberField.String())
	assert.Equal(t, "method", MemberMethod.String())
}
