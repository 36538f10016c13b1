package engine

type Options struct {
	// Hash is the transposition table size in megabytes.
	Hash    int
	Threads int
	// UseTransTable switches the transposition table off when false,
	// which makes the search a plain alpha-beta over the move tree.
	UseTransTable    bool
	ProgressMinNodes int
}

func NewOptions() Options {
	return Options{
		Hash:             16,
		Threads:          1,
		UseTransTable:    true,
		ProgressMinNodes: 1_000_000,
	}
}
