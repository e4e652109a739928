package command

import "strings"

// ParsePrefix extracts a command name and its arguments from a text message.
// The message must start with prefix or with one of mentions (the bot's
// mention forms); whitespace after either is allowed.
func ParsePrefix(content, prefix string, mentions ...string) (name string, args []string, ok bool) {
	rest, found := "", false
	for _, m := range mentions {
		if m != "" && strings.HasPrefix(content, m) {
			rest, found = content[len(m):], true
			break
		}
	}
	if !found && prefix != "" && strings.HasPrefix(content, prefix) {
		rest, found = content[len(prefix):], true
	}
	if !found {
		return "", nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
