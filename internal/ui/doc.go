// Package ui provides semantic text formatting for CLI output.
//
// Formatters render colorized text when the terminal supports it. When
// NO_COLOR is set or colors are unavailable, text decorations are used
// instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("shhcrypt config init")  // Commands
//	ui.Path.Sprint("notes.txt.shh")          // File paths
//	ui.Kind.Sprint("DecryptionFailed")       // Failure kinds
//	ui.Muted.Sprint("none")                  // De-emphasized text
//
// Check, Cross, Arrow and Caution return the status glyphs that lead final
// command messages.
//
// # Color Behavior
//
// Without colors the formatters decorate instead:
//   - Code: `backticks`
//   - Kind: [brackets]
//   - Muted: (parentheses)
//   - Others: no decoration
package ui
