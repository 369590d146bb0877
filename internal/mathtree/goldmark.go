package mathtree

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/shg8/silverbullet/internal/log"
)

const (
	priorityMathInlineParser = 500
	priorityMathBlockParser  = 90
)

var doubleDollar = []byte("$$")

// spanListKey carries the per-parse collector through parser.Context.
var spanListKey = parser.NewContextKey()

// Parse scans the document text and returns a fresh tree snapshot of its
// math nodes.
func Parse(docText string) *Tree {
	var nodes []Node

	ctx := parser.NewContext()
	ctx.Set(spanListKey, &nodes)

	md.Parser().Parse(text.NewReader([]byte(docText)), parser.WithContext(ctx))

	tree := newTree(nodes)
	log.Debug(log.CatParse, "parsed math tree", "nodes", tree.Len(), "version", tree.Version())
	return tree
}

// md is the shared goldmark instance. Parsers are stateless; per-parse state
// lives in the context.
var md = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithInlineParsers(
			util.Prioritized(&inlineMathParser{}, priorityMathInlineParser),
		),
		parser.WithBlockParsers(
			util.Prioritized(&blockMathParser{}, priorityMathBlockParser),
		),
	),
)

func collect(pc parser.Context, n Node) {
	if list, ok := pc.Get(spanListKey).(*[]Node); ok {
		*list = append(*list, n)
	}
}

// AST node types. The preview engine never walks the goldmark AST; these
// exist so the parsers can claim their input.

type inlineMathNode struct {
	ast.BaseInline
}

type blockMathNode struct {
	ast.BaseBlock

	from   int
	to     int
	closed bool
}

var kindInlineMath = ast.NewNodeKind("InlineMath")
var kindBlockMath = ast.NewNodeKind("BlockMath")

func (n *inlineMathNode) Kind() ast.NodeKind {
	return kindInlineMath
}

func (n *inlineMathNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

func (n *blockMathNode) Kind() ast.NodeKind {
	return kindBlockMath
}

func (n *blockMathNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// inlineMathParser recognizes $...$ and single-line $$...$$ regions inside
// paragraphs.
type inlineMathParser struct{}

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if len(line) == 0 || line[0] != '$' {
		return nil
	}

	if bytes.HasPrefix(line, doubleDollar) {
		// Mid-paragraph display math, closed on the same line.
		stop := bytes.Index(line[2:], doubleDollar)
		if stop < 0 {
			return nil
		}
		collect(pc, Node{
			Type: NodeDisplayLatex,
			From: seg.Start,
			To:   seg.Start + 2 + stop + 2,
		})
		block.Advance(2 + stop + 2)
		return &inlineMathNode{}
	}

	// Inline math closes on the same line; a lone $ is plain text.
	stop := bytes.IndexByte(line[1:], '$')
	if stop < 0 {
		return nil
	}
	collect(pc, Node{
		Type: NodeInlineLatex,
		From: seg.Start,
		To:   seg.Start + 1 + stop + 1,
	})
	block.Advance(1 + stop + 1)
	return &inlineMathNode{}
}

// blockMathParser recognizes $$ fences at line start, spanning lines until
// the closing $$. Unclosed fences produce no node.
type blockMathParser struct{}

func (p *blockMathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *blockMathParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, seg := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || len(line) < pos+2 || line[pos] != '$' || line[pos+1] != '$' {
		return nil, parser.NoChildren
	}

	node := &blockMathNode{from: seg.Start + pos}

	// Closing $$ on the opening line makes this a one-line display block.
	if stop := bytes.Index(line[pos+2:], doubleDollar); stop >= 0 {
		node.to = seg.Start + pos + 2 + stop + 2
		node.closed = true
	}

	return node, parser.NoChildren
}

func (p *blockMathParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n, ok := node.(*blockMathNode)
	if !ok {
		return parser.Close
	}
	if n.closed {
		return parser.Close
	}

	line, seg := reader.PeekLine()
	if stop := bytes.Index(line, doubleDollar); stop >= 0 {
		n.to = seg.Start + stop + 2
		n.closed = true
		reader.Advance(stop + 2)
		return parser.Close | parser.NoChildren
	}

	return parser.Continue | parser.NoChildren
}

func (p *blockMathParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n, ok := node.(*blockMathNode)
	if !ok {
		return
	}
	if !n.closed {
		// Hit EOF before the closing $$; degrade to plain text.
		log.Debug(log.CatParse, "unclosed display fence", "from", n.from)
		return
	}
	collect(pc, Node{Type: NodeDisplayLatex, From: n.from, To: n.to})
}

func (p *blockMathParser) CanInterruptParagraph() bool { return true }

func (p *blockMathParser) CanAcceptIndentedLine() bool { return false }

var _ parser.InlineParser = (*inlineMathParser)(nil)
var _ parser.BlockParser = (*blockMathParser)(nil)
var _ NodeSource = (*Tree)(nil)
