package driven

// HTMLRenderer converts markdown to HTML for previews.
type HTMLRenderer interface {
	Render(markdown []byte) ([]byte, error)
}
