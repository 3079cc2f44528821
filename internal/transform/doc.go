// Package transform rewrites registry source files for the target project.
//
// A transform is a chain of Stages run left to right over a file's content.
// Script files are parsed with tree-sitter (TypeScript and TSX grammars) and
// rewritten by byte-range edits, so formatting outside the edited nodes is
// kept as-is. Non-script files pass through every stage unchanged.
package transform
