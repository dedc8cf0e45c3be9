// Package types defines the entity types shared by the quotation table and the
// shopping list, the validated runtime Config, money formatting helpers, and
// the standard errors returned by configuration and command parsing.
package types
