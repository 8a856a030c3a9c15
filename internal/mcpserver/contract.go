package mcpserver

// FrontmatterFormat describes the header block accepted at the top of an
// article file and how each field is interpreted.
const FrontmatterFormat = `# Folio Frontmatter Format

An article is a Markdown file (` + "`" + `.md` + "`" + ` or ` + "`" + `.markdown` + "`" + `) with an optional header block.

## Structure

` + "```" + `markdown
---
title: Heap exploitation 101
date: 2024-05-10
category: writeups
tags: [ctf, pwn]
description: A walk through a use-after-free
coverImage: /img/heap.png
slug: heap-101
---

Body text in standard Markdown.
` + "```" + `

## Rules

1. The opening ` + "`" + `---` + "`" + ` must be the very first line. Leading blank lines disable the header.
2. The closing line must be exactly ` + "`" + `---` + "`" + `. Without it the whole file is body.
3. Each header line is ` + "`" + `key: value` + "`" + `. Only the first colon separates, so values may contain colons (URLs, times).
4. Values are plain text. Quotes are kept literally and nested YAML is not interpreted.
5. A key given twice keeps its last value.

## Fields

| Key | Fallback when missing or empty |
|---|---|
| ` + "`" + `slug` + "`" + ` | file name without extension |
| ` + "`" + `title` + "`" + ` | file name without extension |
| ` + "`" + `date` + "`" + ` | ` + "`" + `1970-01-01` + "`" + ` (sorted as text, use YYYY-MM-DD) |
| ` + "`" + `category` + "`" + ` | ` + "`" + `writeups` + "`" + ` or ` + "`" + `research` + "`" + ` when the file sits in such a folder, else ` + "`" + `archives` + "`" + ` |
| ` + "`" + `tags` + "`" + ` | none; accepts ` + "`" + `[a, b]` + "`" + ` or ` + "`" + `a, b` + "`" + ` |
| ` + "`" + `description` + "`" + ` | empty |
| ` + "`" + `coverImage` + "`" + `, ` + "`" + `coverImageUrl` + "`" + `, ` + "`" + `cover_image_url` + "`" + ` | empty; first non-empty wins |

Categories are lower-cased. Two files with the same slug: the newer-sorted one wins lookups.
`
