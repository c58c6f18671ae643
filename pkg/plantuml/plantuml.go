// Package plantuml renders the composition tree of a reducer definition as
// a PlantUML diagram. Combinators expose their structure through
// reducer.Component; leaves render as plain rectangles.
package plantuml

import (
	"fmt"
	"io"
	"strings"

	"github.com/stateflow/go-reducer"
	"github.com/stateflow/go-reducer/kinds"
)

// Generate writes the PlantUML source for the definition's composition tree.
func Generate(writer io.Writer, definition any) error {
	builder := &strings.Builder{}
	builder.WriteString("@startuml\n")
	counter := 0
	generateNode(builder, 0, definition, &counter)
	builder.WriteString("@enduml\n")
	_, err := io.WriteString(writer, builder.String())
	return err
}

func generateNode(builder *strings.Builder, depth int, node any, counter *int) {
	indent := strings.Repeat(" ", depth*2)
	id := fmt.Sprintf("n%d", *counter)
	*counter++

	name := nodeName(node)
	component, ok := node.(reducer.Component)
	var children []any
	if ok {
		children = component.Components()
	}
	if len(children) == 0 {
		fmt.Fprintf(builder, "%srectangle \"%s\" as %s%s\n", indent, name, id, tag(node))
		return
	}
	fmt.Fprintf(builder, "%srectangle \"%s\" as %s%s {\n", indent, name, id, tag(node))
	for _, child := range children {
		generateNode(builder, depth+1, child, counter)
	}
	fmt.Fprintf(builder, "%s}\n", indent)
}

func nodeName(node any) string {
	if component, ok := node.(reducer.Component); ok {
		return component.ComponentName()
	}
	return fmt.Sprintf("%T", node)
}

func tag(node any) string {
	kinded, ok := node.(reducer.Kinded)
	if !ok {
		return ""
	}
	switch {
	case kinds.IsKind(kinded.Kind(), kinds.Composite):
		return " <<composite>>"
	case kinds.IsKind(kinded.Kind(), kinds.Primitive):
		return " <<primitive>>"
	}
	return ""
}
