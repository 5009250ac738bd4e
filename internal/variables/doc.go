// Package variables implements named template variables for goldmark.
//
// A document defines a fragment once on its own line:
//
//	{{> greet Hello, **world** }}
//
// and references it inline anywhere after the definition:
//
//	Say {{ greet }} twice: {{greet}}.
//
// Definition content is parsed once as inline markdown and shared by every
// reference. A definition that is referenced renders nothing at its own
// position; an unreferenced definition renders its escaped source as a
// paragraph so the author can see it. The variable table lives on the
// parser.Context of a single parse, so documents never see each other's
// variables.
package variables
