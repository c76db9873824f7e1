// Package render draws a wired field as a Graphviz diagram.
//
// Each string becomes a cluster of panel nodes joined in wiring order, so
// the diagram shows which modules share a circuit and the order the cable
// visits them. It is a schematic, not a plan view; geometry lives in the
// scene graph.
//
// # Usage
//
//	dot := render.ToDOT(res, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools. [RenderSVG] uses [github.com/goccy/go-graphviz] in process, so no
// Graphviz install is needed.
package render
