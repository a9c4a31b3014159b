package search

import (
	"reflect"
	"testing"
)

// apply classifies tokens and merges chosen, as the session does.
func apply(forest []*Filter, tokens []string, chosen string, multi bool) MergeResult {
	c := Classify(forest, tokens, multi)
	return ApplyNewValue(tokens, chosen, c, "keywords")
}

func TestApplyNewValue_DomainWalkthrough(t *testing.T) {
	forest := domainOnlyForest()

	var tokens []string
	r := apply(forest, tokens, "domain", false)
	if !reflect.DeepEqual(r.Tokens, []string{"domain"}) {
		t.Fatalf("after choosing domain: %v", r.Tokens)
	}
	if c := Classify(forest, r.Tokens, false); c.Mode != ModeOperators {
		t.Fatalf("after domain, mode = %v, want operators", c.Mode)
	}

	r = apply(forest, r.Tokens, "=", false)
	if !reflect.DeepEqual(r.Tokens, []string{"domain="}) {
		t.Fatalf("after choosing '=': %v", r.Tokens)
	}
	if c := Classify(forest, r.Tokens, false); c.Mode != ModeValues {
		t.Fatalf("after domain=, mode = %v, want values", c.Mode)
	}

	r = apply(forest, r.Tokens, "a", false)
	if !reflect.DeepEqual(r.Tokens, []string{"domain=a"}) {
		t.Fatalf("after choosing a: %v", r.Tokens)
	}

	got := ToValue(r.Tokens, forest)
	want := Value{
		Filters:         []Term{{FilterKey: "domain", OperatorKey: "=", Value: "a"}},
		GroupFilterKeys: []string{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("submit value = %+v, want %+v", got, want)
	}
}

func TestApplyNewValue_FreeTextMerges(t *testing.T) {
	forest := domainOnlyForest()

	r := apply(forest, nil, "hello", false)
	if !reflect.DeepEqual(r.Tokens, []string{"keywords=hello"}) {
		t.Fatalf("first free text: %v", r.Tokens)
	}
	r = apply(forest, r.Tokens, "world", false)
	if !reflect.DeepEqual(r.Tokens, []string{"keywords=hello world"}) {
		t.Errorf("second free text: %v", r.Tokens)
	}
}

func TestApplyNewValue_FreeTextMovesToEnd(t *testing.T) {
	forest := domainOnlyForest()
	tokens := []string{"keywords=hello", "domain=a"}

	r := apply(forest, tokens, "world", false)
	want := []string{"domain=a", "keywords=hello world"}
	if !reflect.DeepEqual(r.Tokens, want) {
		t.Errorf("tokens = %v, want %v", r.Tokens, want)
	}
}

func TestApplyNewValue_EmptyResets(t *testing.T) {
	r := apply(domainOnlyForest(), []string{"domain=a"}, "", false)
	if len(r.Tokens) != 0 || !r.Accepted {
		t.Errorf("empty chosen = %+v, want reset", r)
	}
}

func TestApplyNewValue_SingleOperatorAutoAttach(t *testing.T) {
	forest := groupedForest()

	r := apply(forest, nil, "author", false)
	if !reflect.DeepEqual(r.Tokens, []string{"author="}) {
		t.Fatalf("tokens = %v, want [author=]", r.Tokens)
	}
	if !r.ResetOptions {
		t.Error("choosing a filter should reset options")
	}
	if c := Classify(forest, r.Tokens, false); c.Mode != ModeValues {
		t.Errorf("after auto-attach mode = %v, want values", c.Mode)
	}
}

func TestApplyNewValue_GroupThenChild(t *testing.T) {
	forest := groupedForest()

	r := apply(forest, nil, "attributes", false)
	if !reflect.DeepEqual(r.Tokens, []string{"attributes"}) {
		t.Fatalf("group tokens = %v", r.Tokens)
	}
	r = apply(forest, r.Tokens, "domain", false)
	want := []string{"attributes", "domain"}
	if !reflect.DeepEqual(r.Tokens, want) {
		t.Errorf("tokens = %v, want %v", r.Tokens, want)
	}
}

func TestApplyNewValue_UsedKeyBecomesFreeText(t *testing.T) {
	forest := domainOnlyForest()
	r := apply(forest, []string{"domain=a"}, "domain", false)
	want := []string{"domain=a", "keywords=domain"}
	if !reflect.DeepEqual(r.Tokens, want) {
		t.Errorf("tokens = %v, want %v", r.Tokens, want)
	}
}

func TestApplyNewValue_BareKeyInsertsDefaultOperator(t *testing.T) {
	forest := domainOnlyForest()
	r := apply(forest, []string{"domain"}, "a", false)
	if !reflect.DeepEqual(r.Tokens, []string{"domain=a"}) {
		t.Errorf("tokens = %v, want [domain=a]", r.Tokens)
	}
}

func TestApplyNewValue_RejectsOperatorAfterOperator(t *testing.T) {
	forest := domainOnlyForest()
	tokens := []string{"domain="}

	r := apply(forest, tokens, "a!=b", false)
	if r.Accepted {
		t.Error("value containing an operator should be rejected")
	}
	if !reflect.DeepEqual(r.Tokens, tokens) {
		t.Errorf("rejected merge changed tokens: %v", r.Tokens)
	}
}

func TestApplyNewValue_RejectsFreeTextWithOperator(t *testing.T) {
	forest := domainOnlyForest()
	tokens := []string{"domain=a"}

	r := apply(forest, tokens, "x=y", false)
	if r.Accepted || !reflect.DeepEqual(r.Tokens, tokens) {
		t.Errorf("free text with operator = %+v, want rejected no-op", r)
	}
}

func TestApplyNewValue_MultiValueToggle(t *testing.T) {
	forest := groupedForest()

	tokens := []string{"attributes", "domain="}
	r := apply(forest, tokens, "x", false)
	if !reflect.DeepEqual(r.Tokens, []string{"attributes", "domain=x"}) {
		t.Fatalf("first value: %v", r.Tokens)
	}
	if !r.MultiValue || r.ResetOptions {
		t.Fatalf("multi-value filter should stay open: %+v", r)
	}

	r = apply(forest, r.Tokens, "y", r.MultiValue)
	if !reflect.DeepEqual(r.Tokens, []string{"attributes", "domain=x,y"}) {
		t.Fatalf("second value: %v", r.Tokens)
	}

	r = apply(forest, r.Tokens, "x", r.MultiValue)
	if !reflect.DeepEqual(r.Tokens, []string{"attributes", "domain=y"}) {
		t.Errorf("toggle off: %v", r.Tokens)
	}

	r = apply(forest, r.Tokens, "y", r.MultiValue)
	if !reflect.DeepEqual(r.Tokens, []string{"attributes", "domain="}) {
		t.Errorf("toggle last value off: %v", r.Tokens)
	}
}

func TestApplyNewValue_SingleValueClosesTag(t *testing.T) {
	forest := groupedForest()
	r := apply(forest, []string{"author="}, "bob", false)
	if !reflect.DeepEqual(r.Tokens, []string{"author=bob"}) {
		t.Fatalf("tokens = %v", r.Tokens)
	}
	if r.MultiValue || !r.ResetOptions {
		t.Errorf("single value filter should close: %+v", r)
	}
}

// A bare key is still an open tag: choosing another scope filter's key is
// taken as its value under the first operator, not as a new token.
func TestApplyNewValue_BareKeyTakesFilterKeyAsValue(t *testing.T) {
	forest := groupedForest()
	tokens := []string{"attributes", "domain"}

	r := apply(forest, tokens, "author", false)
	want := []string{"attributes", "domain=author"}
	if !r.Accepted || !reflect.DeepEqual(r.Tokens, want) {
		t.Fatalf("tokens = %v (accepted %v), want %v", r.Tokens, r.Accepted, want)
	}
	if c := Classify(forest, r.Tokens, r.MultiValue); c.InTag() {
		t.Errorf("domain=author should close the tag, got mode %v", c.Mode)
	}

	// once the tag is closed the same key starts a new token
	r = apply(forest, []string{"attributes", "domain=x"}, "author", false)
	want = []string{"attributes", "domain=x", "author="}
	if !reflect.DeepEqual(r.Tokens, want) {
		t.Errorf("tokens = %v, want %v", r.Tokens, want)
	}
}
