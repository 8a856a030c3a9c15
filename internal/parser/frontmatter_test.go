package parser

import (
	"testing"
)

func TestSplitFrontmatter_FieldsAndBody(t *testing.T) {
	input := "---\ntitle: Hello\ndate: 2024-03-01\n---\n# Hello\nBody text.\n"
	fm, body := SplitFrontmatter(input)
	if fm["title"] != "Hello" {
		t.Errorf("title = %q, want %q", fm["title"], "Hello")
	}
	if fm["date"] != "2024-03-01" {
		t.Errorf("date = %q, want %q", fm["date"], "2024-03-01")
	}
	if body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_NoFrontmatter(t *testing.T) {
	input := "# Just a heading\nSome text.\n"
	fm, body := SplitFrontmatter(input)
	if len(fm) != 0 {
		t.Errorf("expected empty frontmatter, got %v", fm)
	}
	if body != input {
		t.Errorf("body = %q, want input unchanged", body)
	}
}

func TestSplitFrontmatter_LeadingWhitespaceNotTolerated(t *testing.T) {
	for _, input := range []string{
		"\n---\ntitle: x\n---\nbody",
		" ---\ntitle: x\n---\nbody",
	} {
		fm, body := SplitFrontmatter(input)
		if len(fm) != 0 {
			t.Errorf("%q: expected empty frontmatter, got %v", input, fm)
		}
		if body != input {
			t.Errorf("%q: body should be the whole input, got %q", input, body)
		}
	}
}

func TestSplitFrontmatter_UnclosedBlock(t *testing.T) {
	input := "---\ntitle: x\nno closing delimiter\n"
	fm, body := SplitFrontmatter(input)
	if len(fm) != 0 {
		t.Errorf("expected empty frontmatter, got %v", fm)
	}
	if body != input {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_ColonsInValuePreserved(t *testing.T) {
	fm, _ := SplitFrontmatter("---\ncoverImage: https://example.com/a.png\ntitle:  Part 1: Intro  \n---\n")
	if got := fm["coverImage"]; got != "https://example.com/a.png" {
		t.Errorf("coverImage = %q", got)
	}
	if got := fm["title"]; got != "Part 1: Intro" {
		t.Errorf("title = %q", got)
	}
}

func TestSplitFrontmatter_SkipsLinesWithoutColon(t *testing.T) {
	fm, _ := SplitFrontmatter("---\njust words\n: orphan value\ntitle: ok\n---\nbody")
	if len(fm) != 1 || fm["title"] != "ok" {
		t.Errorf("fm = %v, want only title", fm)
	}
}

func TestSplitFrontmatter_DuplicateKeyLastWins(t *testing.T) {
	fm, _ := SplitFrontmatter("---\ntitle: first\ntitle: second\n---\n")
	if fm["title"] != "second" {
		t.Errorf("title = %q, want %q", fm["title"], "second")
	}
}

func TestSplitFrontmatter_CRLF(t *testing.T) {
	fm, body := SplitFrontmatter("---\r\ntitle: Win\r\n---\r\nline one\r\n")
	if fm["title"] != "Win" {
		t.Errorf("title = %q", fm["title"])
	}
	if body != "line one\r\n" {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontmatter_BodyUntouched(t *testing.T) {
	_, body := SplitFrontmatter("---\ntitle: x\n---\n\n  indented\n\n")
	if body != "\n  indented\n\n" {
		t.Errorf("body = %q, parser must not trim", body)
	}
}

func TestSplitFrontmatter_ClosingAtEOF(t *testing.T) {
	fm, body := SplitFrontmatter("---\ntitle: x\n---")
	if fm["title"] != "x" {
		t.Errorf("title = %q", fm["title"])
	}
	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
}

func TestSplitFrontmatter_DelimiterRightAfterOpenerIsHeaderLine(t *testing.T) {
	input := "---\n---\nbody"
	fm, body := SplitFrontmatter(input)
	if len(fm) != 0 || body != input {
		t.Errorf("fm = %v, body = %q; an unclosed block must leave the input untouched", fm, body)
	}

	fm, body = SplitFrontmatter("---\n---\ntitle: x\n---\nrest")
	if fm["title"] != "x" || len(fm) != 1 {
		t.Errorf("fm = %v", fm)
	}
	if body != "rest" {
		t.Errorf("body = %q", body)
	}

	fm, body = SplitFrontmatter("---\n---\nhello\n---\n")
	if len(fm) != 0 || body != "" {
		t.Errorf("fm = %v, body = %q", fm, body)
	}
}

func TestSplitFrontmatter_ClosingLineMustBeExact(t *testing.T) {
	input := "---\ntitle: x\n--- trailing\nmore\n"
	fm, body := SplitFrontmatter(input)
	if len(fm) != 0 || body != input {
		t.Errorf("fm = %v, body = %q; closing line with extra text must not close the block", fm, body)
	}
}
