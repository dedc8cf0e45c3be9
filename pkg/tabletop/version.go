// Package tabletop holds build metadata for the tabletop CLI.
package tabletop

// Version is the released version of the tabletop module.
const Version = "0.1.0"
