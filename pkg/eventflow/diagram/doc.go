// Package diagram renders the emitter → listener graph of a Documentation
// as a Mermaid flowchart embedded in a standalone HTML page.
//
// Edges are derived from the mapping table alone: for every event a handler
// emits, every handler with a listen pattern matching that event receives
// an edge labelled with the event name.
//
//	edges := diagram.Edges(doc.EventMappings, pattern.New("."))
//	fmt.Println(diagram.Mermaid(edges))
//	// graph LR;
//	// H1 -- user.created --> H2;
//
// The page loads Mermaid from jsDelivr, so viewing it needs network access.
package diagram
