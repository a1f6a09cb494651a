package topics

// Renderer turns raw topic content into terminal output
type Renderer interface {
	// Render formats content; format is the topic's file extension
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// RendererFor picks glamour for terminals and plain text otherwise
func RendererFor(terminal bool, width int) Renderer {
	if !terminal {
		return &PlainRenderer{}
	}
	return &GlamourRenderer{Style: "auto", Width: width}
}
