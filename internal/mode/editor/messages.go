package editor

// PreviewRebuiltMsg signals that the preview controller rebuilt its
// decoration set outside the update loop (the deferred post-drag rebuild).
type PreviewRebuiltMsg struct{}

// FileChangedMsg carries the new file content after an external change.
type FileChangedMsg struct {
	Text string
}

// statusMsg sets a transient status bar message.
type statusMsg struct {
	text string
}
