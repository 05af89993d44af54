package markdown

import (
	"asciid/glyph"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrInvalidBlock = errors.New("invalid block boundaries")
	ErrBlockChanged = errors.New("block content has been modified externally")
)

// DiagramBlock represents a diagram code block found in markdown
type DiagramBlock struct {
	Lang        string // Fence info string: text, ascii, ... or empty
	Content     string // The diagram, indentation removed
	StartLine   int    // Line of the opening fence (0-based)
	EndLine     int    // Line of the closing fence
	Indent      string // Indentation before the code fence
	ContentHash string // SHA256 of Content, to detect edits made behind our back
}

// Scanner finds and extracts diagram blocks from markdown content
type Scanner struct {
	content string
	lines   []string
}

// NewScanner creates a new markdown scanner
func NewScanner(content string) *Scanner {
	return &Scanner{
		content: content,
		lines:   strings.Split(content, "\n"),
	}
}

// Content returns the current markdown content
func (s *Scanner) Content() string {
	return s.content
}

// FindDiagramBlocks finds every fenced block holding a box-drawing diagram.
// Blocks tagged text, ascii, asciid or diagram always qualify; untagged
// blocks only when they contain a line glyph.
func (s *Scanner) FindDiagramBlocks() []DiagramBlock {
	var blocks []DiagramBlock
	var current *DiagramBlock
	var content []string
	inOther := false // inside a fence of some other language

	for i, line := range s.lines {
		trimmed := strings.TrimLeft(line, " \t")
		if current == nil {
			if !strings.HasPrefix(trimmed, "```") {
				continue
			}
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			switch {
			case inOther:
				inOther = false
			case lang != "" && !isDiagramLanguage(lang):
				inOther = true
			default:
				current = &DiagramBlock{
					Lang:      lang,
					StartLine: i,
					Indent:    line[:len(line)-len(trimmed)],
				}
				content = nil
			}
			continue
		}

		if strings.HasPrefix(trimmed, "```") {
			current.EndLine = i
			current.Content = strings.Join(content, "\n")
			current.ContentHash = Hash(current.Content)
			if current.Lang != "" || hasLineGlyph(current.Content) {
				blocks = append(blocks, *current)
			}
			current = nil
			continue
		}
		content = append(content, strings.TrimPrefix(line, current.Indent))
	}

	return blocks
}

// ValidateBlockUnchanged checks if a block's content matches its original hash
func (s *Scanner) ValidateBlockUnchanged(block DiagramBlock) error {
	if err := s.checkBounds(block); err != nil {
		return err
	}

	lines := make([]string, 0, block.EndLine-block.StartLine-1)
	for i := block.StartLine + 1; i < block.EndLine; i++ {
		lines = append(lines, strings.TrimPrefix(s.lines[i], block.Indent))
	}
	if Hash(strings.Join(lines, "\n")) != block.ContentHash {
		return fmt.Errorf("%w at line %d", ErrBlockChanged, block.StartLine+1)
	}
	return nil
}

// ReplaceBlock swaps a block's content, keeping its fences and indentation.
// It returns the new markdown and the block as it now stands; the scanner
// itself moves on to the new content.
func (s *Scanner) ReplaceBlock(block DiagramBlock, newContent string) (string, DiagramBlock, error) {
	if err := s.checkBounds(block); err != nil {
		return "", block, err
	}

	startFence := strings.TrimLeft(s.lines[block.StartLine], " \t")
	if strings.TrimSpace(strings.TrimPrefix(startFence, "```")) != block.Lang || !strings.HasPrefix(startFence, "```") {
		return "", block, fmt.Errorf("%w: block start marker has changed at line %d: found '%s'",
			ErrInvalidBlock, block.StartLine+1, startFence)
	}
	if endFence := strings.TrimLeft(s.lines[block.EndLine], " \t"); !strings.HasPrefix(endFence, "```") {
		return "", block, fmt.Errorf("%w: block end marker has changed at line %d: found '%s'",
			ErrInvalidBlock, block.EndLine+1, endFence)
	}

	contentLines := strings.Split(newContent, "\n")
	newLines := make([]string, 0, len(s.lines)-(block.EndLine-block.StartLine-1)+len(contentLines))
	newLines = append(newLines, s.lines[:block.StartLine+1]...)
	for _, line := range contentLines {
		if line == "" {
			newLines = append(newLines, "")
			continue
		}
		newLines = append(newLines, block.Indent+line)
	}
	newLines = append(newLines, s.lines[block.EndLine:]...)

	updated := block
	updated.Content = newContent
	updated.ContentHash = Hash(newContent)
	updated.EndLine = block.StartLine + 1 + len(contentLines)

	s.content = strings.Join(newLines, "\n")
	s.lines = newLines
	return s.content, updated, nil
}

func (s *Scanner) checkBounds(block DiagramBlock) error {
	if block.StartLine < 0 || block.EndLine >= len(s.lines) || block.StartLine >= block.EndLine {
		return fmt.Errorf("%w: start=%d, end=%d, total lines=%d",
			ErrInvalidBlock, block.StartLine, block.EndLine, len(s.lines))
	}
	return nil
}

// Hash returns the hex SHA256 of block content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// isDiagramLanguage checks if a language identifier marks a plain-text diagram
func isDiagramLanguage(lang string) bool {
	switch strings.ToLower(lang) {
	case "text", "txt", "ascii", "asciid", "diagram":
		return true
	default:
		return false
	}
}

func hasLineGlyph(content string) bool {
	for _, r := range content {
		if glyph.IsLine(r) {
			return true
		}
	}
	return false
}

// FormatBlockInfo returns a human-readable description of a block
func FormatBlockInfo(block DiagramBlock, index int) string {
	preview := ""
	for _, line := range strings.Split(block.Content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			preview = trimmed
			if len([]rune(preview)) > 50 {
				preview = string([]rune(preview)[:47]) + "..."
			}
			break
		}
	}

	lang := block.Lang
	if lang == "" {
		lang = "untagged"
	}
	return fmt.Sprintf("%d. %s (line %d): %s", index+1, lang, block.StartLine+1, preview)
}
