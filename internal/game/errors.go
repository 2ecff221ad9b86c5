package game

var (
	ErrGameNotFound     = errf("game not found or expired")
	ErrGameFinished     = errf("game already finished")
	ErrConcurrentUpdate = errf("game was updated concurrently")
	ErrInvalidMove      = errf("move notation not recognized")
	ErrStoreDisabled    = errf("game store not configured")
)

type staticErr string

func (e staticErr) Error() string { return string(e) }
func errf(s string) error         { return staticErr(s) }
