package semantic

import "testing"

func TestDefineAndResolveInSameScope(t *testing.T) {
	st := NewSymbolTable()
	if !st.Define("س") {
		t.Fatal("expected first definition to succeed")
	}
	if st.Define("س") {
		t.Fatal("expected redefinition in the same scope to fail")
	}
	if _, ok := st.Resolve("س"); !ok {
		t.Fatal("expected س to resolve")
	}
}

func TestResolveChainsThroughOuterScope(t *testing.T) {
	outer := NewSymbolTable()
	outer.Define("س")
	inner := NewEnclosedSymbolTable(outer)

	if _, ok := inner.Resolve("س"); !ok {
		t.Fatal("expected inner scope to resolve a name defined in the outer scope")
	}
	if _, ok := outer.Resolve("ص"); ok {
		t.Fatal("outer scope should not see names defined only in inner scope")
	}
}

func TestShadowingAcrossNestedScopes(t *testing.T) {
	outer := NewSymbolTable()
	outer.Define("س")
	inner := NewEnclosedSymbolTable(outer)

	if !inner.Define("س") {
		t.Fatal("expected shadowing redefinition in a nested scope to succeed")
	}
	if inner.IsDeclaredInCurrentScope("س") != true {
		t.Fatal("expected س to be reported as declared in the inner scope")
	}
}

func TestResolveUnknownNameFails(t *testing.T) {
	st := NewSymbolTable()
	if _, ok := st.Resolve("غير_موجود"); ok {
		t.Fatal("expected resolution of an undeclared name to fail")
	}
}
