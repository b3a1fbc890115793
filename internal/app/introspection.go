package app

import (
	"context"
	"log"

	"github.com/cleitonmarx/symbiont/depend"
	"github.com/cleitonmarx/symbiont/introspection"
	"github.com/cleitonmarx/symbiont/introspection/mermaid"
)

// MermaidGraphIntrospector is an implementation of the Introspector interface that generates a Mermaid graph
// representation of the application's configuration and dependencies, and registers it in the dependency container.
type MermaidGraphIntrospector struct {
}

// Introspect generates a Mermaid graph from the provided introspection report and registers it as a named dependency.
func (i MermaidGraphIntrospector) Introspect(_ context.Context, r introspection.Report) error {
	mermaidGraph := mermaid.GenerateIntrospectionGraph(r)
	depend.RegisterNamed(mermaidGraph, "introspection-graph-mermaid")
	return nil
}

// ReportLoggerIntrospector logs the dependency graph as a Mermaid diagram at startup.
type ReportLoggerIntrospector struct {
}

// Introspect writes the generated graph to the registered logger, falling back
// to the standard logger before initialization completes.
func (i ReportLoggerIntrospector) Introspect(_ context.Context, r introspection.Report) error {
	mermaidGraph := mermaid.GenerateIntrospectionGraph(r)

	logger, err := depend.Resolve[*log.Logger]()
	if err != nil {
		log.Println(mermaidGraph)
		return nil
	}
	logger.Println(mermaidGraph)
	return nil
}
