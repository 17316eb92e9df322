package lesson

type BlockKind int

const (
	HeadingBlock BlockKind = iota
	MarkdownBlock
	FormulaBlock
	ChartBlock
	ResultBlock
	FormBlock
)

// Block is one element of the rendered page, in display order.
type Block struct {
	Kind  BlockKind
	Level int
	Text  string
	// Lines holds result lines; Failure marks a result that reports no solution.
	Lines   []string
	Failure bool
	// Anchor identifies the block for renderers that need stable ids.
	Anchor string
}

// FormState is the custom problem form, scoped to one request.
type FormState struct {
	NumVars     int    `json:"num_vars"`
	Objective   string `json:"objective"`
	Constraints string `json:"constraints"`
	Submitted   bool   `json:"-"`
}

type Page struct {
	PageTitle string
	Title     string
	Subtitle  string
	Blocks    []Block
	ChartSVG  []byte
	Form      FormState
	FormSpec  FormSection
	// FormMessages echoes the placeholder reply to a submitted form.
	FormMessages []string
	// ChartNote and FormNote replace the chart and the form where they
	// cannot be shown.
	ChartNote string
	FormNote  string
}

func (p *Page) add(b Block) {
	p.Blocks = append(p.Blocks, b)
}

func (p *Page) heading(level int, text string) {
	p.add(Block{Kind: HeadingBlock, Level: level, Text: text})
}

func (p *Page) markdown(text string) {
	if text == "" {
		return
	}
	p.add(Block{Kind: MarkdownBlock, Text: text})
}

func (p *Page) result(failure bool, lines ...string) {
	p.add(Block{Kind: ResultBlock, Lines: lines, Failure: failure})
}
