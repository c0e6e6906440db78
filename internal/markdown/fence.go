package markdown

import "strings"

// BlockKind distinguishes prose from fenced code in a parsed message.
type BlockKind string

const (
	BlockText BlockKind = "text"
	BlockCode BlockKind = "code"
)

// Block is one segment of a chat message: prose, or the body of a fenced
// code block with its language tag.
type Block struct {
	Kind BlockKind
	Lang string
	Body string
}

// ParseBlocks splits text on triple-backtick fences. Segments alternate
// between prose and code. The opening fence's first line is treated as the
// language tag and stripped from the code body. An unterminated fence runs
// to the end of the text.
func ParseBlocks(text string) []Block {
	parts := strings.Split(text, "```")
	var blocks []Block
	for i, part := range parts {
		if i%2 == 0 {
			if strings.TrimSpace(part) == "" {
				continue
			}
			blocks = append(blocks, Block{Kind: BlockText, Body: part})
			continue
		}
		lang, body := splitInfoLine(part)
		blocks = append(blocks, Block{Kind: BlockCode, Lang: lang, Body: body})
	}
	return blocks
}

// splitInfoLine separates a fence's info line from the code that follows.
// A fence with no newline has no info line, only code.
func splitInfoLine(part string) (lang, body string) {
	nl := strings.IndexByte(part, '\n')
	if nl < 0 {
		return "", part
	}
	return strings.TrimSpace(part[:nl]), part[nl+1:]
}

// FirstFence returns the body of the first fenced block carrying the given
// language tag, and whether one was found.
func FirstFence(text, lang string) (string, bool) {
	for _, b := range ParseBlocks(text) {
		if b.Kind == BlockCode && strings.EqualFold(b.Lang, lang) {
			return b.Body, true
		}
	}
	return "", false
}
