// Package bot holds the translation decision logic: normalizing Slack
// events, deciding skip/post/update per message, and dispatching the
// resulting platform calls.
package bot

import "strings"

// Marker prefixes every translation reply the bot posts. ShouldSkip uses it
// to refuse re-translating the bot's own output even if a bot-authored
// event slips past the upstream filter.
const Marker = "🌐"

// ShouldSkip reports whether text is exempt from translation: empty text,
// slash commands, bare links, and the bot's own replies. Pure function, no
// I/O.
func ShouldSkip(text string) bool {
	if text == "" {
		return true
	}
	if strings.HasPrefix(text, "/") {
		return true
	}
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return true
	}
	if strings.HasPrefix(text, Marker+" ") {
		return true
	}
	return false
}
