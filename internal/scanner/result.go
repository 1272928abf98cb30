package scanner

import "time"

// Result summarizes one scan pass.
type Result struct {
	JobID            string        `json:"jobId,omitempty"`
	Directories      int           `json:"directories"`
	Files            int           `json:"files"`
	Created          int           `json:"created"`
	Updated          int           `json:"updated"`
	Unchanged        int           `json:"unchanged"`
	TotalSize        int64         `json:"totalSize"`
	Errors           int           `json:"errors"`
	DeletedFiles     int           `json:"deletedFiles"`
	EmptyDirectories int           `json:"emptyDirectories"`
	StartedAt        time.Time     `json:"startedAt,omitempty"`
	Duration         time.Duration `json:"duration"`
}

// add folds the traversal counts of a subtree into r.
func (r *Result) add(other Result) {
	r.Directories += other.Directories
	r.Files += other.Files
	r.Created += other.Created
	r.Updated += other.Updated
	r.Unchanged += other.Unchanged
	r.TotalSize += other.TotalSize
	r.Errors += other.Errors
}
