package tui

type View int

const (
	ViewPosts View = iota
	ViewReader
	ViewSearch
)
