package driven

import "context"

// ChangedFilesSource lists the paths changed between baseRef and the current
// checkout. Implementations that do not need a ref may ignore it.
type ChangedFilesSource interface {
	ChangedFiles(ctx context.Context, baseRef string) ([]string, error)
}
