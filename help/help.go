/*
 * rpl48 - Help browser.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package help implements an indexed (topic, offset) lookup into a markdown-
// like corpus, a linear-scan fallback when the index is absent, and a
// limited-markup soft-renderer with followable command links, plus the
// soft-key menu page composition that sits alongside the browser.
package help

import (
	"strings"
)

// Corpus is one large markdown-like text blob plus an index of
// (topic, offset) built at load time.
type Corpus struct {
	text  string
	index map[string]int
}

// NewCorpus builds an index by scanning text for "# Topic" headings, mirroring
// how a real build's help compiler emits the index alongside the shipped
// corpus; absent headings fall back to a linear scan at lookup time.
func NewCorpus(text string) *Corpus {
	c := &Corpus{text: text, index: make(map[string]int)}
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			topic := strings.ToUpper(strings.TrimSpace(strings.TrimLeft(trimmed, "# ")))
			if _, exists := c.index[topic]; !exists {
				c.index[topic] = offset
			}
		}
		offset += len(line)
	}
	return c
}

// Lookup returns the raw topic body: indexed lookup first, falling
// back to a case-insensitive linear scan of the corpus for the topic
// keyword if the index has no entry.
func (c *Corpus) Lookup(topic string) (string, bool) {
	key := strings.ToUpper(topic)
	if off, ok := c.index[key]; ok {
		return c.bodyAt(off), true
	}
	idx := strings.Index(strings.ToUpper(c.text), key)
	if idx < 0 {
		return "", false
	}
	start := strings.LastIndex(c.text[:idx], "\n# ")
	if start < 0 {
		start = 0
	} else {
		start++ // past the newline
	}
	return c.bodyAt(start), true
}

// bodyAt returns the text from offset up to (not including) the next
// top-level heading, or to the end of the corpus.
func (c *Corpus) bodyAt(offset int) string {
	rest := c.text[offset:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		next := strings.Index(rest[nl+1:], "\n# ")
		if next >= 0 {
			return rest[:nl+1+next+1]
		}
	}
	return rest
}

// Topics lists every indexed topic name, for a browser's table of
// contents view.
func (c *Corpus) Topics() []string {
	out := make([]string, 0, len(c.index))
	for t := range c.index {
		out = append(out, t)
	}
	return out
}

// Block is one rendered unit of the limited markdown-like subset names:
// headings, list items, code, bold/italic spans, image references, and local
// hyperlinks.
type Block struct {
	Kind BlockKind
	Text string
	// Href is set on BlockLink; Known reports whether it resolves to
	// a runnable command name, making it followable and highlightable.
	Href  string
	Known bool
}

type BlockKind int

const (
	BlockText BlockKind = iota
	BlockHeading
	BlockListItem
	BlockCode
	BlockLink
)

// KnownCommand reports whether name is a command the renderer should
// highlight links to; callers typically pass a closure over the
// directory/command registry.
type KnownCommand func(name string) bool

// Render parses body's limited markup into a flat list of Blocks,
// resolving "[name](name)"-style local links through isKnown.
func Render(body string, isKnown KnownCommand) []Block {
	var blocks []Block
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		switch {
		case strings.HasPrefix(trimmed, "# "):
			blocks = append(blocks, Block{Kind: BlockHeading, Text: strings.TrimPrefix(trimmed, "# ")})
		case strings.HasPrefix(trimmed, "- "):
			blocks = append(blocks, Block{Kind: BlockListItem, Text: strings.TrimPrefix(trimmed, "- ")})
		case strings.HasPrefix(trimmed, "```"):
			blocks = append(blocks, Block{Kind: BlockCode, Text: trimmed})
		default:
			blocks = append(blocks, renderInline(trimmed, isKnown)...)
		}
	}
	return blocks
}

// renderInline splits a plain line into text and link blocks, looking
// for "[label](target)" spans.
func renderInline(line string, isKnown KnownCommand) []Block {
	var out []Block
	for {
		open := strings.Index(line, "[")
		if open < 0 {
			if line != "" {
				out = append(out, Block{Kind: BlockText, Text: line})
			}
			return out
		}
		closeLabel := strings.Index(line[open:], "]")
		if closeLabel < 0 {
			out = append(out, Block{Kind: BlockText, Text: line})
			return out
		}
		closeLabel += open
		if closeLabel+1 >= len(line) || line[closeLabel+1] != '(' {
			out = append(out, Block{Kind: BlockText, Text: line[:closeLabel+1]})
			line = line[closeLabel+1:]
			continue
		}
		closeTarget := strings.Index(line[closeLabel+2:], ")")
		if closeTarget < 0 {
			out = append(out, Block{Kind: BlockText, Text: line})
			return out
		}
		closeTarget += closeLabel + 2

		if open > 0 {
			out = append(out, Block{Kind: BlockText, Text: line[:open]})
		}
		label := line[open+1 : closeLabel]
		target := line[closeLabel+2 : closeTarget]
		known := isKnown != nil && isKnown(target)
		out = append(out, Block{Kind: BlockLink, Text: label, Href: target, Known: known})
		line = line[closeTarget+1:]
	}
}
