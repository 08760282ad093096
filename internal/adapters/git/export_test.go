package git

var (
	ParseWorktreeListExported = parseWorktreeList
	ClassifyExported          = classify
)
