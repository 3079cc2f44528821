// Package installer writes registry files into a project.
//
// For each file, in order, the Installer resolves the destination path,
// settles any conflict with an existing file, runs the transform pipeline and
// writes the result, recording the outcome in a Report. Files are processed
// one at a time so prompts and the summary appear in input order.
package installer
