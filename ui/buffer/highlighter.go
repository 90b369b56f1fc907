package buffer

import (
	"sort"

	"github.com/alecthomas/chroma/v2"
	"github.com/gdamore/tcell/v2"
)

type Colorscheme map[Syntax]tcell.Style

// Gets the tcell.Style from the Colorscheme map for the given Syntax.
// If the Syntax cannot be found in the map, either the `Default` Syntax
// is used, or `tcell.DefaultStyle` is returned if the Default is not assigned.
func (c *Colorscheme) GetStyle(s Syntax) tcell.Style {
	if c != nil {
		if val, ok := (*c)[s]; ok {
			return val // Try to return the requested value
		} else if s != Default {
			if val, ok := (*c)[Default]; ok {
				return val // Use default colorscheme value, instead
			}
		}
	}

	return tcell.StyleDefault // No value for Default; use default style.
}

// A Match colors the runes Col through EndCol, inclusive, of one line.
type Match struct {
	Col    int
	EndCol int // Inclusive
	Syntax Syntax
}

// ByCol implements sort.Interface for []Match based on the Col field.
type ByCol []Match

func (c ByCol) Len() int           { return len(c) }
func (c ByCol) Swap(i, j int)      { c[i], c[j] = c[j], c[i] }
func (c ByCol) Less(i, j int) bool { return c[i].Col < c[j].Col }

// A Highlighter can answer how to color any part of a provided Buffer. It
// tokenizes lines lazily and caches the result per line. Registered as an
// Observer of a Storage, it forgets only the lines a Change touched.
type Highlighter struct {
	Buffer      Buffer
	Language    *Language
	Colorscheme *Colorscheme

	lineMatches [][]Match // nil entries are invalidated lines
}

func NewHighlighter(buffer Buffer, lang *Language, colorscheme *Colorscheme) *Highlighter {
	if lang == nil {
		lang = PlainText
	}
	return &Highlighter{
		buffer,
		lang,
		colorscheme,
		make([][]Match, buffer.LineCount()),
	}
}

// TextChanged replaces the cached lines of the edited span with invalidated
// ones, and shifts the lines after it.
func (h *Highlighter) TextChanged(c Change) {
	oldLast := c.LastLine - c.LinesDelta()
	h.grow(oldLast + 1)
	fresh := make([][]Match, c.LastLine-c.FirstLine+1)
	h.lineMatches = append(h.lineMatches[:c.FirstLine], append(fresh, h.lineMatches[oldLast+1:]...)...)
	h.grow(c.LineCount)
	h.lineMatches = h.lineMatches[:c.LineCount]
}

func (h *Highlighter) grow(lines int) {
	if len(h.lineMatches) < lines {
		h.lineMatches = append(h.lineMatches, make([][]Match, lines-len(h.lineMatches))...)
	}
}

// UpdateLines forces the highlighting matches for lines between startLine to
// endLine, inclusively, to be updated. It is more efficient to mark lines as
// invalidated when changes occur and call UpdateInvalidatedLines(...).
func (h *Highlighter) UpdateLines(startLine, endLine int) {
	h.grow(h.Buffer.LineCount())
	endLine = min(endLine, h.Buffer.LineCount()-1)
	if startLine > endLine {
		return
	}
	for i := startLine; i <= endLine; i++ {
		h.lineMatches[i] = h.lineMatches[i][:0] // Shrink slice to zero (hopefully save allocs)
	}

	startPos := h.Buffer.LineStart(startLine)
	endPos := h.Buffer.LineEnd(endLine)
	text := h.Buffer.Slice(startPos, endPos)

	// EnsureLF would rewrite "\r\n", moving every token after it.
	tokens, err := chroma.Tokenise(h.Language.Lexer, &chroma.TokeniseOptions{State: "root"}, string(text))
	if err == nil {
		pos := startPos
		for _, tok := range tokens {
			if tok.Type == chroma.EOFType || pos >= endPos {
				break
			}
			end := min(pos+len(tok.Value), endPos)
			if syntax := syntaxOf(tok.Type); syntax != Default {
				h.addMatch(pos, end, syntax)
			}
			pos = end
		}
	}

	h.validateLines(startLine, endLine) // Marks any "unvalidated" or nil lines as valued
}

// addMatch records the byte span [start, end) as one Match per line it covers.
func (h *Highlighter) addMatch(start, end int, syntax Syntax) {
	startLine, _ := h.Buffer.PosToLineCol(start)
	endLine, _ := h.Buffer.PosToLineCol(end)
	for line := startLine; line <= endLine; line++ {
		segStart := max(start, h.Buffer.LineStart(line))
		segEnd := min(end, h.Buffer.LineEnd(line))
		if segEnd <= segStart {
			continue // Only a line terminator
		}
		_, col := h.Buffer.PosToLineCol(segStart)
		_, endCol := h.Buffer.PosToLineCol(segEnd)
		h.lineMatches[line] = append(h.lineMatches[line], Match{col, endCol - 1, syntax}) // Unsorted
	}
}

// UpdateInvalidatedLines only updates the highlighting for lines that are invalidated
// between lines startLine and endLine, inclusively.
func (h *Highlighter) UpdateInvalidatedLines(startLine, endLine int) {
	h.grow(h.Buffer.LineCount())
	endLine = min(endLine, len(h.lineMatches)-1)

	// Move startLine to first line with invalidated changes
	for startLine <= endLine && h.lineMatches[startLine] != nil {
		startLine++
	}

	// Move endLine back to first line at or before endLine with invalidated changes
	for endLine >= startLine && h.lineMatches[endLine] != nil {
		endLine--
	}

	if startLine > endLine {
		return // Do nothing; no invalidated lines
	}

	h.UpdateLines(startLine, endLine)
}

func (h *Highlighter) HasInvalidatedLines(startLine, endLine int) bool {
	for i := startLine; i <= endLine && i < len(h.lineMatches); i++ {
		if h.lineMatches[i] == nil {
			return true
		}
	}
	return false
}

func (h *Highlighter) validateLines(startLine, endLine int) {
	for i := startLine; i <= endLine && i < len(h.lineMatches); i++ {
		if h.lineMatches[i] == nil {
			h.lineMatches[i] = make([]Match, 0)
		}
	}
}

func (h *Highlighter) InvalidateLines(startLine, endLine int) {
	for i := startLine; i <= endLine && i < len(h.lineMatches); i++ {
		h.lineMatches[i] = nil
	}
}

func (h *Highlighter) GetLineMatches(line int) []Match {
	if line < 0 || line >= len(h.lineMatches) {
		return nil
	}
	data := h.lineMatches[line]
	sort.Sort(ByCol(data))
	return data
}

func (h *Highlighter) GetStyle(match Match) tcell.Style {
	return h.Colorscheme.GetStyle(match.Syntax)
}
