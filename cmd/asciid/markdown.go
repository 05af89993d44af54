package main

import (
	"asciid/editor"
	"asciid/markdown"
	"fmt"
	"io"
	"os"
	"strings"
)

// markdownTarget is a diagram block inside a markdown file being edited.
type markdownTarget struct {
	path  string
	block markdown.DiagramBlock
}

// openMarkdown finds the diagram blocks in path. With a single block, or a
// 1-based index, that block is chosen; otherwise the blocks are listed to w
// and an error asks for -block.
func openMarkdown(path string, index int, w io.Writer) (*markdownTarget, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markdown: %w", err)
	}

	blocks := markdown.NewScanner(string(content)).FindDiagramBlocks()
	switch {
	case len(blocks) == 0:
		return nil, fmt.Errorf("no diagram blocks found in %s", path)
	case index > 0:
		if index > len(blocks) {
			return nil, fmt.Errorf("block %d out of range (1-%d)", index, len(blocks))
		}
		return &markdownTarget{path: path, block: blocks[index-1]}, nil
	case len(blocks) == 1:
		return &markdownTarget{path: path, block: blocks[0]}, nil
	}

	fmt.Fprintf(w, "Found %d diagram blocks in %s:\n", len(blocks), path)
	for i, b := range blocks {
		fmt.Fprintln(w, markdown.FormatBlockInfo(b, i))
	}
	return nil, fmt.Errorf("choose a block with -block 1-%d", len(blocks))
}

// load fills the session with the block's diagram.
func (m *markdownTarget) load(s *editor.Session) error {
	if err := s.Open(strings.NewReader(m.block.Content)); err != nil {
		return fmt.Errorf("loading block at line %d: %w", m.block.StartLine+1, err)
	}
	return nil
}

// save writes the session back into the block. The file is re-read first and
// the save refused if the block changed since it was loaded.
func (m *markdownTarget) save(s *editor.Session) error {
	content, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("re-reading markdown: %w", err)
	}

	scanner := markdown.NewScanner(string(content))
	if err := scanner.ValidateBlockUnchanged(m.block); err != nil {
		return err
	}
	updated, block, err := scanner.ReplaceBlock(m.block, blockText(s))
	if err != nil {
		return err
	}

	if err := writeFileAtomic(m.path, []byte(updated)); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	m.block = block
	return nil
}

// blockText is the diagram without the trailing padding Text adds to each row.
func blockText(s *editor.Session) string {
	lines := strings.Split(strings.TrimSuffix(s.Grid().Text(), "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}
