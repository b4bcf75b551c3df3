package controller

// Message types.
type runInfoMsg struct {
	workers int
	model   string
	offline bool
	cached  int
}

type fileStartMsg struct {
	path string
}

type fileDoneMsg struct {
	path    string
	kept    int
	dropped int
}

type summaryMsg struct {
	files    int
	comments int
	kept     int
	cached   int
}

// List item types.
type fileItem struct {
	path    string
	kept    int
	dropped int
}

func (f fileItem) FilterValue() string {
	return f.path
}
