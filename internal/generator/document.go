package generator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
)

// sectionHeaderPattern matches feature headers like "## 3. File Upload" or
// "## Logging". Deeper headers (###) stay inside the current section.
var sectionHeaderPattern = regexp.MustCompile(`^##\s+(?:\d+\.\s+)?(.+?)\s*$`)

// ParseDocument parses a boilerplate markdown document into feature sections
// and their fenced code fragments. Optional YAML frontmatter (name, framework)
// is stripped from the source and exposed as Meta.
//
// Extraction never fails on malformed content: a trailing unterminated fence
// is discarded and recorded as an unterminated-block warning.
func ParseDocument(raw string) (*Document, error) {
	var meta Meta
	body, err := frontmatter.Parse(strings.NewReader(raw), &meta)
	if err != nil {
		// Malformed frontmatter is not fatal; treat the whole text as body.
		body = []byte(raw)
	}

	doc := &Document{
		Source: string(body),
		Meta:   meta,
	}

	lines := strings.Split(doc.Source, "\n")

	// Fragments before the first ## header belong to an unnamed preamble
	// section, mirroring how the rest of the document is grouped.
	current := FeatureSection{Name: "Preamble", StartLine: 1}
	sawHeader := false

	i := 0
	for i < len(lines) {
		line := lines[i]

		if m := sectionHeaderPattern.FindStringSubmatch(line); m != nil && !strings.HasPrefix(line, "###") {
			if sawHeader || len(current.Fragments) > 0 {
				doc.Sections = append(doc.Sections, current)
			}
			current = FeatureSection{Name: m[1], StartLine: i + 1}
			sawHeader = true
			i++
			continue
		}

		if strings.HasPrefix(line, "```") {
			lang := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "```")))
			if lang == "" {
				lang = "text"
			}
			fenceLine := i + 1

			var code []string
			i++
			terminated := false
			for i < len(lines) {
				if strings.HasPrefix(lines[i], "```") {
					terminated = true
					break
				}
				code = append(code, lines[i])
				i++
			}

			if !terminated {
				doc.Warnings = append(doc.Warnings, Warning{
					Kind:    WarnUnterminatedBlock,
					Subject: current.Name,
					Detail:  fmt.Sprintf("code fence opened at line %d is never closed; block discarded", fenceLine),
				})
				break
			}

			if len(code) > 0 {
				current.Fragments = append(current.Fragments, Fragment{
					Section:   current.Name,
					Language:  lang,
					Text:      strings.Join(code, "\n"),
					StartLine: fenceLine,
					Index:     len(current.Fragments),
				})
			}
		}

		i++
	}

	if sawHeader || len(current.Fragments) > 0 {
		doc.Sections = append(doc.Sections, current)
	}

	return doc, nil
}
