// Package meta defines the declaration tree produced by scanning a header.
package meta

import (
	"strings"
)

// DeclKind represents the kind of an extracted declaration
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclNamespace
	DeclStruct
	DeclClass
	DeclEnum
	DeclAlias
	DeclMacro
)

func (k DeclKind) String() string {
	switch k {
	case DeclNamespace:
		return "namespace"
	case DeclStruct:
		return "struct"
	case DeclClass:
		return "class"
	case DeclEnum:
		return "enum"
	case DeclAlias:
		return "alias"
	case DeclMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// MemberKind distinguishes record members
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
)

func (k MemberKind) String() string {
	if k == MemberMethod {
		return "method"
	}
	return "field"
}

// Param is one parameter of a method declaration. Type is raw text.
type Param struct {
	Type string
	Name string
}

// Enumerator is one entry of an enum body. Value holds the raw initializer
// text (e.g. "1<<0") and is empty for implicitly valued entries.
type Enumerator struct {
	Name  string
	Value string
}

// Member is a field or method belonging to a record.
type Member struct {
	Kind          MemberKind
	Name          string
	Line          int
	Type          string   // field type text (array suffix folded in)
	Default       string   // raw default-value text, empty if none
	Attributes    []string // raw [[...]] texts attached to this member
	Params        []Param  // method parameters
	IsConst       bool
	HasInlineBody bool
}

// Decl is a single extracted declaration. Kind selects which fields are
// meaningful: Children for namespaces (and nested records), Members and
// Attributes for records, Enumerators for enums, Target/Scope for aliases,
// HasValue for macros. No parent back-references are stored; enclosing-scope
// lookups are by path.
type Decl struct {
	Kind        DeclKind
	Name        string
	Line        int
	Attributes  []string
	Children    []*Decl
	Members     []Member
	Enumerators []Enumerator
	Target      string // alias target, stored verbatim (may contain ::)
	Scope       string // enclosing namespace path of an alias
	HasValue    bool   // macro defined with a value
}

// Find returns the direct child with the given name, or nil.
func (d *Decl) Find(name string) *Decl {
	for _, c := range d.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits d and its children depth-first in insertion order.
func (d *Decl) Walk(fn func(*Decl)) {
	fn(d)
	for _, c := range d.Children {
		c.Walk(fn)
	}
}

// File is the result of scanning one buffer. It is built once per scan and
// must not be mutated afterwards.
type File struct {
	Filename string
	Decls    []*Decl
	Includes []string
}

// Walk visits every declaration depth-first in insertion order.
func (f *File) Walk(fn func(*Decl)) {
	for _, d := range f.Decls {
		d.Walk(fn)
	}
}

// Lookup resolves a "::"-joined path such as "scope::second". Anonymous
// namespaces cannot be addressed this way.
func (f *File) Lookup(path string) *Decl {
	parts := strings.Split(strings.Trim(path, ":"), "::")
	if len(parts) == 0 {
		return nil
	}

	var cur *Decl
	for _, d := range f.Decls {
		if d.Name == parts[0] {
			cur = d
			break
		}
	}

	for _, part := range parts[1:] {
		if cur == nil {
			return nil
		}
		cur = cur.Find(part)
	}
	return cur
}

// DeclsByKind returns all declarations of the given kind, depth-first.
func (f *File) DeclsByKind(kind DeclKind) []*Decl {
	var out []*Decl
	f.Walk(func(d *Decl) {
		if d.Kind == kind {
			out = append(out, d)
		}
	})
	return out
}
