package filter

import (
	"testing"

	"github.com/sbplx/sbplx/container"
)

func TestResolveBoolFilter(t *testing.T) {
	catalog := FilterCatalog{7: {Name: "no-sandbox", ArgumentType: ArgBool}}
	r := NewResolver(&container.Container{}, catalog, nil)

	res, warnings, err := r.Resolve(7, 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if res.FilterName != "no-sandbox" || len(res.Values) != 1 || res.Values[0] != "#t" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Quoted {
		t.Fatal("BOOL argument should not be quoted")
	}
}

func TestResolveIntegerFilterUsesNamedModifier(t *testing.T) {
	catalog := FilterCatalog{
		3: {Name: "iokit-user-client-class", ArgumentType: ArgInteger, Modifiers: map[string]string{"2": "RootDomainUserClient"}},
	}
	r := NewResolver(&container.Container{}, catalog, nil)

	res, _, err := r.Resolve(3, 2)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Values[0] != "RootDomainUserClient" {
		t.Fatalf("Values = %v, want named modifier substitution", res.Values)
	}
}

func TestResolveUnknownFilterIDWarns(t *testing.T) {
	r := NewResolver(&container.Container{}, FilterCatalog{}, nil)

	res, warnings, err := r.Resolve(99, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if res.FilterName != "unknown-filter-99" {
		t.Fatalf("FilterName = %q", res.FilterName)
	}
}

func TestResolveStringFilterReadsPool(t *testing.T) {
	pool := []byte{0x04, 0x00, 'e', 't', 'c', 0x00}
	c := &container.Container{Data: pool, Layout: container.Layout{Base: 0}}
	catalog := FilterCatalog{5: {Name: "extension-class", ArgumentType: ArgString}}
	r := NewResolver(c, catalog, nil)

	res, _, err := r.Resolve(5, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Quoted || res.Values[0] != "etc" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestResolveCachesByPair(t *testing.T) {
	catalog := FilterCatalog{7: {Name: "no-sandbox", ArgumentType: ArgBool}}
	r := NewResolver(&container.Container{}, catalog, nil)

	first, _, _ := r.Resolve(7, 1)
	second, warnings, err := r.Resolve(7, 1)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("cached resolution should carry no warnings, got %v", warnings)
	}
	if first.FilterName != second.FilterName || first.Values[0] != second.Values[0] {
		t.Fatalf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestMatchingModifiersFiltersByMask(t *testing.T) {
	mods := ModifierCatalog{
		1: {Name: "no-log", ActionMask: 0x01, ActionFlag: 0x01},
		2: {Name: "no-callout", ActionMask: 0x02, ActionFlag: 0x02},
	}
	r := NewResolver(&container.Container{}, nil, mods)

	got := r.MatchingModifiers(0x01)
	if len(got) != 1 || got[0].Name != "no-log" {
		t.Fatalf("unexpected matches: %+v", got)
	}
}

func TestResolveInlineModifierLiteralString(t *testing.T) {
	pool := []byte{0x04, 0x00, 'e', 't', 'c', 0x00}
	c := &container.Container{Data: pool, Layout: container.Layout{Base: 0}}
	mods := ModifierCatalog{9: {Name: "report"}}
	r := NewResolver(c, nil, mods)

	im, _, err := r.ResolveInlineModifier(9, 0, 0)
	if err != nil {
		t.Fatalf("ResolveInlineModifier: %v", err)
	}
	if im.IsReference || im.StringValue != "etc" {
		t.Fatalf("unexpected inline modifier: %+v", im)
	}
}

func TestResolveInlineModifierReference(t *testing.T) {
	c := &container.Container{Policies: []uint16{0, 42}}
	mods := ModifierCatalog{9: {Name: "report"}}
	r := NewResolver(c, nil, mods)

	im, _, err := r.ResolveInlineModifier(9, 1, 1)
	if err != nil {
		t.Fatalf("ResolveInlineModifier: %v", err)
	}
	if !im.IsReference || im.NodeOffset != 42 {
		t.Fatalf("unexpected inline modifier: %+v", im)
	}
}

func TestLoadFilterCatalogDecodesJSON(t *testing.T) {
	doc := []byte(`{"7": {"name": "no-sandbox", "argument_type": "BOOL"}}`)
	c, err := LoadFilterCatalog(doc)
	if err != nil {
		t.Fatalf("LoadFilterCatalog: %v", err)
	}
	if c[7].Name != "no-sandbox" || c[7].ArgumentType != ArgBool {
		t.Fatalf("unexpected catalog: %+v", c)
	}
}

func TestLoadModifierCatalogDecodesJSON(t *testing.T) {
	doc := []byte(`{"1": {"name": "no-log", "action_mask": 1, "action_flag": 1}}`)
	m, err := LoadModifierCatalog(doc)
	if err != nil {
		t.Fatalf("LoadModifierCatalog: %v", err)
	}
	if m[1].Name != "no-log" || m[1].ActionMask != 1 {
		t.Fatalf("unexpected catalog: %+v", m)
	}
}
