// Package assets embeds the decks that ship with decker.
package assets

import (
	_ "embed"
)

// UnitTestingDeck is the built-in demo deck on writing non-brittle
// unit tests, shown by `decker demo`.
//
//go:embed decks/unit-testing.md
var UnitTestingDeck []byte
