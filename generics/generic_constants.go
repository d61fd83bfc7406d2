/*
 *
 * Module:    BIG Modelling Tools
 * Package:   Generics
 * Component: Constants
 *
 * Key constants shared by the model patches and lz compression tools.
 *
 * Author: Henderik A. Proper (e.proper@acm.org), TU Wien, Austria
 *
 * Version of: 18.10.2026
 *
 */

package generics

const (
	ToolsVersion = "tools-version-1.0" // The current version of the modelling tools.

	DefaultRowsField = "X" // Field of the last model snapshot whose length becomes maxRows.
	DefaultWorkers   = 1   // Number of pairs diffed concurrently.

	ProgressAuto   = "auto"  // Show the progress bar only on an interactive terminal.
	ProgressAlways = "true"  // Always show the progress bar.
	ProgressNever  = "false" // Never show the progress bar.
)
