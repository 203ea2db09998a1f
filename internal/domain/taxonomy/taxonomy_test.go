package taxonomy

import "testing"

func TestExpand_KnownDomain(t *testing.T) {
	kws := Expand("web")
	if len(kws) == 0 {
		t.Fatal("expected keywords for web")
	}

	set := make(map[string]struct{}, len(kws))
	for _, kw := range kws {
		set[kw] = struct{}{}
	}
	for _, want := range []string{"react", "css", "graphql", "backend"} {
		if _, ok := set[want]; !ok {
			t.Errorf("expected %q in web keywords", want)
		}
	}
}

func TestExpand_NormalizesInput(t *testing.T) {
	a := Expand("  Web ")
	b := Expand("web")
	if len(a) != len(b) {
		t.Errorf("expected identical expansion, got %d vs %d keywords", len(a), len(b))
	}
}

func TestExpand_UnknownDomain(t *testing.T) {
	if kws := Expand("underwater basket weaving"); kws != nil {
		t.Errorf("expected nil for unknown domain, got %v", kws)
	}
}

func TestExpand_ReturnsCopy(t *testing.T) {
	a := Expand("app")
	a[0] = "mutated"
	b := Expand("app")
	if b[0] == "mutated" {
		t.Error("Expand must not expose internal state")
	}
}

func TestDomainsContaining(t *testing.T) {
	domains := DomainsContaining("react")
	if len(domains) != 1 || domains[0] != "web" {
		t.Errorf("expected [web] for react, got %v", domains)
	}

	// "linux" is listed under both cloud and (as "kali linux") not cybersecurity;
	// only exact keyword membership counts.
	domains = DomainsContaining("linux")
	if len(domains) != 1 || domains[0] != "cloud" {
		t.Errorf("expected [cloud] for linux, got %v", domains)
	}

	if domains := DomainsContaining("cobol"); domains != nil {
		t.Errorf("expected nil for unknown keyword, got %v", domains)
	}
}

func TestDomainsContaining_MultipleParents(t *testing.T) {
	// "c++" appears under game only; "crypto" under cybersecurity only.
	// Verify the reverse index handles a keyword shared by several domains
	// if one ever appears by checking sorted, deduplicated output shape.
	domains := DomainsContaining("C++ ")
	if len(domains) != 1 || domains[0] != "game" {
		t.Errorf("expected [game] for c++, got %v", domains)
	}
}

func TestExpandQuery_DomainTerm(t *testing.T) {
	set := ExpandQuery([]string{"Web"})

	for _, want := range []string{"web", "react", "node", "frontend"} {
		if _, ok := set[want]; !ok {
			t.Errorf("expected %q in expanded query", want)
		}
	}
}

func TestExpandQuery_SkillTermActivatesParentDomain(t *testing.T) {
	set := ExpandQuery([]string{"React"})

	if _, ok := set["react"]; !ok {
		t.Error("expected literal term react")
	}
	if _, ok := set["web"]; !ok {
		t.Error("expected parent domain web")
	}
	// Forward expansion of "web" must NOT happen for a skill term:
	// searching react activates the domain, not every sibling skill.
	if _, ok := set["css"]; ok {
		t.Error("did not expect sibling keyword css")
	}
}

func TestExpandQuery_UnknownTermIsSingleton(t *testing.T) {
	set := ExpandQuery([]string{"  Quantum Basketry "})
	if len(set) != 1 {
		t.Fatalf("expected singleton set, got %v", set)
	}
	if _, ok := set["quantum basketry"]; !ok {
		t.Error("expected lower-cased trimmed literal term")
	}
}

func TestExpandQuery_Empty(t *testing.T) {
	if set := ExpandQuery(nil); len(set) != 0 {
		t.Errorf("expected empty set, got %v", set)
	}
	if set := ExpandQuery([]string{"", "   "}); len(set) != 0 {
		t.Errorf("expected blank terms to contribute nothing, got %v", set)
	}
}

func TestExpandDomains_ForwardOnly(t *testing.T) {
	set := ExpandDomains([]string{"react"})

	if _, ok := set["react"]; !ok {
		t.Error("expected literal term react")
	}
	// No reverse step for declared domains: react must not pull in "web".
	if _, ok := set["web"]; ok {
		t.Error("did not expect reverse-mapped domain web")
	}
}

func TestExpandDomains_KnownDomain(t *testing.T) {
	set := ExpandDomains([]string{"AI"})

	for _, want := range []string{"ai", "pytorch", "nlp", "machine learning"} {
		if _, ok := set[want]; !ok {
			t.Errorf("expected %q in expanded domains", want)
		}
	}
}

func TestIsDomain(t *testing.T) {
	if !IsDomain(" Web") {
		t.Error("expected web to be a domain")
	}
	if IsDomain("react") {
		t.Error("react is a keyword, not a domain")
	}
}

func TestDomains_SortedAndComplete(t *testing.T) {
	domains := Domains()
	want := []string{"ai", "app", "cloud", "cybersecurity", "dsa", "game", "web"}
	if len(domains) != len(want) {
		t.Fatalf("expected %d domains, got %d: %v", len(want), len(domains), domains)
	}
	for i, d := range want {
		if domains[i] != d {
			t.Errorf("expected domains[%d]=%q, got %q", i, d, domains[i])
		}
	}
}
