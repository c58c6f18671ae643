package plantuml_test

import (
	"strings"
	"testing"

	"github.com/stateflow/go-reducer"
	"github.com/stateflow/go-reducer/pkg/plantuml"
)

type noop struct{}

func (noop) Reduce(state *int, action string) reducer.Effect[string] {
	return reducer.None[string]()
}

func TestGenerate(t *testing.T) {
	tree := reducer.Named("app",
		reducer.Combine[int, string](
			reducer.Named("feature", noop{}),
			noop{},
		),
	)
	var builder strings.Builder
	if err := plantuml.Generate(&builder, tree); err != nil {
		t.Fatal(err)
	}
	out := builder.String()
	if !strings.HasPrefix(out, "@startuml\n") || !strings.HasSuffix(out, "@enduml\n") {
		t.Errorf("missing plantuml envelope:\n%s", out)
	}
	for _, want := range []string{`"app"`, `"Combine"`, `"feature"`, "<<composite>>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output:\n%s", want, out)
		}
	}
	if strings.Index(out, `"app"`) > strings.Index(out, `"Combine"`) {
		t.Errorf("expected the named root to enclose its body:\n%s", out)
	}
}

func TestGenerateLeaf(t *testing.T) {
	var builder strings.Builder
	if err := plantuml.Generate(&builder, noop{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(builder.String(), "rectangle") {
		t.Errorf("expected a leaf rectangle:\n%s", builder.String())
	}
}
