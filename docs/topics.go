// Package docs embeds the wls user guide, one markdown file per topic.
//
// The code blocks of each topic are scenarios run against the wls binary by
// the package tests, so the guide stays true to the commands.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var guide embed.FS

// Readme is the topic shown when no topic is asked for.
const Readme = "readme"

// All expands to every topic.
const All = "*"

// Topics returns the topic names, the readme first then the others sorted.
func Topics() []string {
	// the pattern is valid so Glob cannot fail.
	files, _ := fs.Glob(guide, "*.md")
	topics := []string{Readme}
	for _, f := range files {
		if name := strings.TrimSuffix(f, ".md"); name != Readme {
			topics = append(topics, name)
		}
	}
	slices.Sort(topics[1:])
	return topics
}

// Read returns the markdown of topic.
func Read(topic string) (string, error) {
	content, err := guide.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown topic %q, want one of %s", topic, strings.Join(Topics(), ", "))
	}
	return string(content), nil
}

// Join returns the markdown of topics, separated by a blank line. All
// stands for every topic, in Topics order.
func Join(topics ...string) (string, error) {
	var parts []string
	for _, t := range topics {
		names := []string{t}
		if t == All {
			names = Topics()
		}
		for _, name := range names {
			content, err := Read(name)
			if err != nil {
				return "", err
			}
			parts = append(parts, strings.TrimRight(content, "\n"))
		}
	}
	return strings.Join(parts, "\n\n") + "\n", nil
}
