package model

// Record is a single page inside a collection.
type Record struct {
	ID  string
	URL string
}

// BlockType identifies the kind of a content block appended to a record body.
type BlockType string

const (
	BlockTypeParagraph BlockType = "paragraph"
	BlockTypeBullet    BlockType = "bulleted_list_item"
)

// Block is a record body content block at the domain level. The notion
// adapter maps it to the wire block shape.
type Block struct {
	Type BlockType
	Text string
	Href string // Optional hyperlink on the block text.
}

// Paragraph builds a plain paragraph block.
func Paragraph(text string) Block {
	return Block{Type: BlockTypeParagraph, Text: text}
}

// Bullet builds a bulleted list item, optionally hyperlinked.
func Bullet(text, href string) Block {
	return Block{Type: BlockTypeBullet, Text: text, Href: href}
}

// TimestampNote is an ephemeral playback timestamp destined for a record
// body. Label is the human form ("12:04"); SourceURL points at the video
// position.
type TimestampNote struct {
	Label     string
	SourceURL string
}

// Bullet renders the note as the single content block the append path
// writes: "- <label>" hyperlinked to the source URL.
func (n TimestampNote) Bullet() Block {
	return Bullet("- "+n.Label, n.SourceURL)
}
