// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notion

// Block type names understood by the workspace API.
const (
	TypeParagraph    = "paragraph"
	TypeHeading1     = "heading_1"
	TypeHeading2     = "heading_2"
	TypeHeading3     = "heading_3"
	TypeBulletedItem = "bulleted_list_item"
	TypeNumberedItem = "numbered_list_item"
	TypeToDo         = "to_do"
	TypeQuote        = "quote"
	TypeCode         = "code"
	TypeDivider      = "divider"
	TypeImage        = "image"
	TypeChildPage    = "child_page"
)

// Link is an inline link target.
type Link struct {
	URL string `json:"url"`
}

// Annotations are the style flags on a rich text span.
type Annotations struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Code          bool `json:"code,omitempty"`
}

// None reports whether no style flag is set.
func (a Annotations) None() bool {
	return a == Annotations{}
}

// TextContent is the literal content of a rich text span.
type TextContent struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

// RichText is one styled inline span.
type RichText struct {
	Type        string       `json:"type"`
	Text        TextContent  `json:"text"`
	Annotations *Annotations `json:"annotations,omitempty"`
}

// Text builds a plain rich text span.
func Text(content string) RichText {
	return RichText{Type: "text", Text: TextContent{Content: content}}
}

// StyledText builds a rich text span with the given annotations.
func StyledText(content string, a Annotations) RichText {
	rt := Text(content)
	if !a.None() {
		rt.Annotations = &a
	}
	return rt
}

// LinkedText builds a rich text span that links to url.
func LinkedText(content, url string) RichText {
	rt := Text(content)
	rt.Text.Link = &Link{URL: url}
	return rt
}

// RichTextBlock is the payload shared by paragraph, heading, and quote blocks.
type RichTextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// ListItem is the payload of a bulleted or numbered list item.
type ListItem struct {
	RichText []RichText `json:"rich_text"`
	Children []Block    `json:"children,omitempty"`
}

// ToDoItem is the payload of a to_do block.
type ToDoItem struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
	Children []Block    `json:"children,omitempty"`
}

// CodeContent is the payload of a code block.
type CodeContent struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

// ImageContent is the payload of an image block. Only external images are
// supported; local image files are not uploaded.
type ImageContent struct {
	Type     string `json:"type"`
	External *Link  `json:"external,omitempty"`
}

// Block is one content block in a page body. Exactly one payload field is
// set, matching Type.
type Block struct {
	Object    string         `json:"object,omitempty"`
	Type      string         `json:"type"`
	Paragraph *RichTextBlock `json:"paragraph,omitempty"`
	Heading1  *RichTextBlock `json:"heading_1,omitempty"`
	Heading2  *RichTextBlock `json:"heading_2,omitempty"`
	Heading3  *RichTextBlock `json:"heading_3,omitempty"`
	Bulleted  *ListItem      `json:"bulleted_list_item,omitempty"`
	Numbered  *ListItem      `json:"numbered_list_item,omitempty"`
	ToDo      *ToDoItem      `json:"to_do,omitempty"`
	Quote     *RichTextBlock `json:"quote,omitempty"`
	Code      *CodeContent   `json:"code,omitempty"`
	Divider   *struct{}      `json:"divider,omitempty"`
	Image     *ImageContent  `json:"image,omitempty"`
}

func newBlock(typ string) Block {
	return Block{Object: "block", Type: typ}
}

// Paragraph builds a paragraph block.
func Paragraph(rt ...RichText) Block {
	b := newBlock(TypeParagraph)
	b.Paragraph = &RichTextBlock{RichText: rt}
	return b
}

// Heading builds a heading block. Levels deeper than 3 flatten to level 3,
// which is the deepest heading the API offers.
func Heading(level int, rt ...RichText) Block {
	switch {
	case level <= 1:
		b := newBlock(TypeHeading1)
		b.Heading1 = &RichTextBlock{RichText: rt}
		return b
	case level == 2:
		b := newBlock(TypeHeading2)
		b.Heading2 = &RichTextBlock{RichText: rt}
		return b
	default:
		b := newBlock(TypeHeading3)
		b.Heading3 = &RichTextBlock{RichText: rt}
		return b
	}
}

// BulletedItem builds a bulleted list item with optional nested blocks.
func BulletedItem(rt []RichText, children ...Block) Block {
	b := newBlock(TypeBulletedItem)
	b.Bulleted = &ListItem{RichText: rt, Children: children}
	return b
}

// NumberedItem builds a numbered list item with optional nested blocks.
func NumberedItem(rt []RichText, children ...Block) Block {
	b := newBlock(TypeNumberedItem)
	b.Numbered = &ListItem{RichText: rt, Children: children}
	return b
}

// ToDoBlock builds a to_do block with the given checked state.
func ToDoBlock(rt []RichText, checked bool, children ...Block) Block {
	b := newBlock(TypeToDo)
	b.ToDo = &ToDoItem{RichText: rt, Checked: checked, Children: children}
	return b
}

// QuoteBlock builds a quote block.
func QuoteBlock(rt ...RichText) Block {
	b := newBlock(TypeQuote)
	b.Quote = &RichTextBlock{RichText: rt}
	return b
}

// CodeBlock builds a code block. Languages the API does not know are sent
// as "plain text".
func CodeBlock(code, language string) Block {
	b := newBlock(TypeCode)
	b.Code = &CodeContent{
		RichText: []RichText{Text(code)},
		Language: codeLanguage(language),
	}
	return b
}

// Divider builds a divider block.
func Divider() Block {
	b := newBlock(TypeDivider)
	b.Divider = &struct{}{}
	return b
}

// ExternalImage builds an image block pointing at an absolute URL.
func ExternalImage(url string) Block {
	b := newBlock(TypeImage)
	b.Image = &ImageContent{Type: "external", External: &Link{URL: url}}
	return b
}

// knownLanguages are the code block language identifiers the API accepts.
// Anything else falls back to "plain text".
var knownLanguages = map[string]bool{
	"bash": true, "c": true, "c++": true, "c#": true, "css": true,
	"diff": true, "docker": true, "go": true, "graphql": true,
	"haskell": true, "html": true, "java": true, "javascript": true,
	"json": true, "kotlin": true, "latex": true, "lua": true,
	"makefile": true, "markdown": true, "objective-c": true, "perl": true,
	"php": true, "protobuf": true, "python": true, "r": true,
	"ruby": true, "rust": true, "scala": true, "shell": true,
	"sql": true, "swift": true, "toml": true, "typescript": true,
	"xml": true, "yaml": true,
}

// languageAliases maps common fence names onto API identifiers.
var languageAliases = map[string]string{
	"sh":         "shell",
	"zsh":        "shell",
	"golang":     "go",
	"js":         "javascript",
	"ts":         "typescript",
	"py":         "python",
	"rb":         "ruby",
	"cpp":        "c++",
	"cs":         "c#",
	"dockerfile": "docker",
	"yml":        "yaml",
	"text":       "plain text",
	"txt":        "plain text",
}

func codeLanguage(lang string) string {
	if lang == "" {
		return "plain text"
	}
	if alias, ok := languageAliases[lang]; ok {
		return alias
	}
	if knownLanguages[lang] {
		return lang
	}
	return "plain text"
}
