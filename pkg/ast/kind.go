package ast

// Kind identifies the type of a Pandoc element.
type Kind int

const (
	// KindUnknown is any tag this package does not recognize. Such nodes are
	// carried through opaquely.
	KindUnknown Kind = iota

	// Blocks
	KindPlain
	KindPara
	KindLineBlock
	KindCodeBlock
	KindRawBlock
	KindBlockQuote
	KindOrderedList
	KindBulletList
	KindDefinitionList
	KindHeader
	KindHorizontalRule
	KindTable
	KindFigure
	KindDiv
	KindNull

	// Inlines
	KindStr
	KindEmph
	KindUnderline
	KindStrong
	KindStrikeout
	KindSuperscript
	KindSubscript
	KindSmallCaps
	KindQuoted
	KindCite
	KindCode
	KindSpace
	KindSoftBreak
	KindLineBreak
	KindMath
	KindRawInline
	KindLink
	KindImage
	KindNote
	KindSpan

	// Meta values
	KindMetaMap
	KindMetaList
	KindMetaBool
	KindMetaString
	KindMetaInlines
	KindMetaBlocks
)

var kindNames = [...]string{
	KindUnknown:        "Unknown",
	KindPlain:          "Plain",
	KindPara:           "Para",
	KindLineBlock:      "LineBlock",
	KindCodeBlock:      "CodeBlock",
	KindRawBlock:       "RawBlock",
	KindBlockQuote:     "BlockQuote",
	KindOrderedList:    "OrderedList",
	KindBulletList:     "BulletList",
	KindDefinitionList: "DefinitionList",
	KindHeader:         "Header",
	KindHorizontalRule: "HorizontalRule",
	KindTable:          "Table",
	KindFigure:         "Figure",
	KindDiv:            "Div",
	KindNull:           "Null",
	KindStr:            "Str",
	KindEmph:           "Emph",
	KindUnderline:      "Underline",
	KindStrong:         "Strong",
	KindStrikeout:      "Strikeout",
	KindSuperscript:    "Superscript",
	KindSubscript:      "Subscript",
	KindSmallCaps:      "SmallCaps",
	KindQuoted:         "Quoted",
	KindCite:           "Cite",
	KindCode:           "Code",
	KindSpace:          "Space",
	KindSoftBreak:      "SoftBreak",
	KindLineBreak:      "LineBreak",
	KindMath:           "Math",
	KindRawInline:      "RawInline",
	KindLink:           "Link",
	KindImage:          "Image",
	KindNote:           "Note",
	KindSpan:           "Span",
	KindMetaMap:        "MetaMap",
	KindMetaList:       "MetaList",
	KindMetaBool:       "MetaBool",
	KindMetaString:     "MetaString",
	KindMetaInlines:    "MetaInlines",
	KindMetaBlocks:     "MetaBlocks",
}

var kindsByTag = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if Kind(k) == KindUnknown {
			continue
		}
		m[name] = Kind(k)
	}
	return m
}()

// KindOf returns the Kind for a wire tag, or KindUnknown.
func KindOf(tag string) Kind {
	return kindsByTag[tag]
}

// String returns the Pandoc tag for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// IsBlock reports whether k is a block-level element.
func (k Kind) IsBlock() bool {
	return k >= KindPlain && k <= KindNull
}

// IsInline reports whether k is an inline element.
func (k Kind) IsInline() bool {
	return k >= KindStr && k <= KindSpan
}

// IsMeta reports whether k is a metadata value.
func (k Kind) IsMeta() bool {
	return k >= KindMetaMap && k <= KindMetaBlocks
}
