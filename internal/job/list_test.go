package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListAllocatesLowestUnusedID(t *testing.T) {
	l := NewList()

	j1 := &Job{PGID: 100}
	j2 := &Job{PGID: 200}
	j3 := &Job{PGID: 300}
	l.Add(j1)
	l.Add(j2)
	l.Add(j3)
	assert.Equal(t, 1, j1.ID)
	assert.Equal(t, 2, j2.ID)
	assert.Equal(t, 3, j3.ID)

	l.Remove(j2.ID)

	j4 := &Job{PGID: 400}
	l.Add(j4)
	assert.Equal(t, 2, j4.ID, "the lowest unused id (2) must be reused before allocating 4")
}

func TestJobLineFormat(t *testing.T) {
	l := NewList()
	j := &Job{Raw: "sleep 10 &", Processes: []*Process{{PID: 1, State: Running}}}
	l.Add(j)

	current, previous := l.Markers()
	line := j.Line(current, previous)
	assert.Equal(t, "[1] + running sleep 10 &\n", line)
}

func TestDrainFinishedBackgroundOnlyReportsUnnotifiedBackgroundJobs(t *testing.T) {
	l := NewList()

	bg := &Job{Background: true, Processes: []*Process{{PID: 1, State: Done}}}
	fg := &Job{Background: false, Processes: []*Process{{PID: 2, State: Done}}}
	running := &Job{Background: true, Processes: []*Process{{PID: 3, State: Running}}}
	l.Add(bg)
	l.Add(fg)
	l.Add(running)

	finished := l.DrainFinishedBackground()
	assert.Len(t, finished, 1)
	assert.Same(t, bg, finished[0])
	assert.True(t, bg.Notified)
	assert.Nil(t, l.Get(bg.ID))
	assert.NotNil(t, l.Get(fg.ID))
	assert.NotNil(t, l.Get(running.ID))

	assert.Empty(t, l.DrainFinishedBackground(), "an already-notified job must not be reported twice")
}

func TestFindByPID(t *testing.T) {
	l := NewList()
	p := &Process{PID: 42}
	j := &Job{Processes: []*Process{p}}
	l.Add(j)

	found, foundProc := l.FindByPID(42)
	assert.Same(t, j, found)
	assert.Same(t, p, foundProc)

	missing, missingProc := l.FindByPID(9999)
	assert.Nil(t, missing)
	assert.Nil(t, missingProc)
}
