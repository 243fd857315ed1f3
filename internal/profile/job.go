package profile

import (
	"slices"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

const (
	JobIDField         = "ID"
	JobDepartmentField = "Department"
	JobStatusField     = "Status"
)

type Jobs struct {
	Items []*Job
}

// Job is a job posting as stored by the persistence layer.
type Job struct {
	ID               string   `json:"id,omitempty"`
	Title            string   `json:"title,omitempty"`
	Department       string   `json:"department,omitempty"`
	Description      string   `json:"description,omitempty"`
	MinQualification string   `json:"minQualification" validate:"required"`
	MaxQualification string   `json:"maxQualification" validate:"required"`
	Salary           string   `json:"salary,omitempty"`
	Location         string   `json:"location,omitempty"`
	Requirements     []string `json:"requirements"`
	PostedBy         string   `json:"postedBy,omitempty"`
	PostedDate       string   `json:"postedDate,omitempty"`
	Status           string   `json:"status"`
}

// IsActive reports whether the posting is open for applications.
func (j *Job) IsActive() bool {
	return j.Status == StatusActive
}

// Clone returns a deep copy so callers can hand out jobs without sharing slices.
func (j *Job) Clone() Job {
	out := *j
	out.Requirements = slices.Clone(j.Requirements)
	return out
}

func (j *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return j.ID
	case JobDepartmentField:
		return j.Department
	case JobStatusField:
		return j.Status
	default:
		return ""
	}
}

func (v *Jobs) Len() int {
	return len(v.Items)
}

func (v *Jobs) FindByID(id string) *Job {
	for _, job := range v.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Titles returns "id title" labels in list order.
func (v *Jobs) Titles() []string {
	titles := make([]string, 0, len(v.Items))
	for _, job := range v.Items {
		titles = append(titles, job.ID+" "+job.Title)
	}
	return titles
}

// Active returns a new list holding only active postings.
func (v *Jobs) Active() *Jobs {
	active := &Jobs{Items: make([]*Job, 0, len(v.Items))}
	for _, job := range v.Items {
		if job.IsActive() {
			active.Items = append(active.Items, job)
		}
	}
	return active
}

// Copy returns a shallow copy of the list. Jobs themselves are shared.
func (v *Jobs) Copy() *Jobs {
	return &Jobs{Items: slices.Clone(v.Items)}
}

// Keep drops every job for which keep returns false and returns the IDs of the
// dropped jobs. Relative order of the remaining jobs is preserved.
func (v *Jobs) Keep(keep func(*Job) bool) []string {
	var dropped []string
	kept := v.Items[:0]
	for _, job := range v.Items {
		if keep(job) {
			kept = append(kept, job)
			continue
		}
		dropped = append(dropped, job.ID)
	}
	clear(v.Items[len(kept):])
	v.Items = kept
	return dropped
}

// Exclude removes jobs whose field matches one of targets.
func (v *Jobs) Exclude(name string, targets []string) []string {
	return v.Keep(func(job *Job) bool {
		return !slices.Contains(targets, job.GetStringField(name))
	})
}
