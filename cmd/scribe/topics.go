package scribe

import (
	"embed"
	"io/fs"
)

//go:embed topics
var embeddedTopics embed.FS

func topicsFS() fs.FS {
	sub, err := fs.Sub(embeddedTopics, "topics")
	if err != nil {
		return nil
	}
	return sub
}
