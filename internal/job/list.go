package job

import "sort"

// List is the shell's job table: an arena of stable-ID Jobs, grounded on
// original_source/src/executor/jobs.c's doubly-linked job list but
// implemented as a map keyed by the stable ID rather than pointer-chasing,
// since Go has no use-after-free class of bug for this to guard against.
//
// Job IDs are allocated as the lowest currently-unused positive integer
// (spec.md's Testable Properties require this; the original's monotonic
// counter does not and is superseded here, see DESIGN.md's job-ID
// allocation decision).
type List struct {
	jobs            map[int]*Job
	current, previous int
}

// NewList returns an empty job table.
func NewList() *List {
	return &List{jobs: make(map[int]*Job)}
}

// Add assigns j the lowest unused ID, inserts it, and makes it the current
// job.
func (l *List) Add(j *Job) {
	j.ID = l.nextID()
	l.jobs[j.ID] = j
	l.previous = l.current
	l.current = j.ID
}

func (l *List) nextID() int {
	for id := 1; ; id++ {
		if _, used := l.jobs[id]; !used {
			return id
		}
	}
}

// Remove deletes the job with the given ID, if present, and fixes up the
// current/previous pointers.
func (l *List) Remove(id int) {
	delete(l.jobs, id)
	if l.current == id {
		l.current = l.previous
		l.previous = l.lastIDExcept(l.current)
	} else if l.previous == id {
		l.previous = l.lastIDExcept(l.current)
	}
}

func (l *List) lastIDExcept(except int) int {
	best := 0
	for id := range l.jobs {
		if id != except && id > best {
			best = id
		}
	}
	return best
}

// Get returns the job with the given ID, or nil.
func (l *List) Get(id int) *Job { return l.jobs[id] }

// Current returns the "+"-marked job, or nil if the table is empty.
func (l *List) Current() *Job { return l.jobs[l.current] }

// FindByPGID returns the job owning the given process group, or nil.
func (l *List) FindByPGID(pgid int) *Job {
	for _, j := range l.jobs {
		if j.PGID == pgid {
			return j
		}
	}
	return nil
}

// FindByPID returns the job and process for the given pid, or (nil, nil).
func (l *List) FindByPID(pid int) (*Job, *Process) {
	for _, j := range l.jobs {
		for _, p := range j.Processes {
			if p.PID == pid {
				return j, p
			}
		}
	}
	return nil, nil
}

// All returns every job in the table, ordered by ID.
func (l *List) All() []*Job {
	out := make([]*Job, 0, len(l.jobs))
	for _, j := range l.jobs {
		out = append(out, j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	return out
}

// Markers returns the current/previous job IDs, for Job.Line.
func (l *List) Markers() (current, previous int) { return l.current, l.previous }

// Len reports how many jobs are tracked.
func (l *List) Len() int { return len(l.jobs) }

// Active reports how many tracked jobs have neither finished nor been
// killed, mirroring shell_state_t's running_jobs_count — the count
// shell_run checks before warning "you have running jobs" on EOF.
func (l *List) Active() int {
	n := 0
	for _, j := range l.jobs {
		if st := j.State(); st != Done && st != Killed {
			n++
		}
	}
	return n
}

// DrainFinishedBackground removes and returns every background job that has
// reached Done or Killed and has not yet been reported, marking each
// Notified and ordering the result by ID. It is the REPL-driven counterpart
// to waitForeground's synchronous reporting: a foreground job is reported
// and removed the moment its own wait completes, but a background job's
// completion is only ever observed asynchronously by the reaper, so the
// REPL calls this once per prompt loop to pick up what the reaper found.
func (l *List) DrainFinishedBackground() []*Job {
	var finished []*Job
	for _, j := range l.jobs {
		if !j.Background || j.Notified {
			continue
		}
		switch j.State() {
		case Done, Killed:
			j.Notified = true
			finished = append(finished, j)
		}
	}
	sort.Slice(finished, func(i, k int) bool { return finished[i].ID < finished[k].ID })
	for _, j := range finished {
		l.Remove(j.ID)
	}
	return finished
}
