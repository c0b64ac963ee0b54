// Package render converts a resolved dependency tree into Graphviz DOT
// and rasterizes it to SVG.
//
// [ToDOT] produces a DOT digraph from a [manager.TreeNode]; [RenderSVG]
// feeds the DOT through the embedded Graphviz engine. The two steps are
// separate so callers can emit raw DOT for external tooling.
package render
