package tui

type sectionLoadedMsg struct {
	section section
	body    string
	err     error
}
