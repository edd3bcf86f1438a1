package game

import "sort"

// TaskTag identifies a deferred session action.
type TaskTag uint8

const (
	TaskLoadNextLevel TaskTag = iota
	TaskRestartGame
	TaskLoadFirstLevel
)

func (t TaskTag) String() string {
	switch t {
	case TaskLoadNextLevel:
		return "load_next_level"
	case TaskRestartGame:
		return "restart_game"
	case TaskLoadFirstLevel:
		return "load_first_level"
	default:
		return "unknown"
	}
}

type task struct {
	due float64
	tag TaskTag
}

// Scheduler is a queue of one-shot tasks keyed by simulated-time deadline.
// Tasks with equal deadlines fire in the order they were scheduled.
type Scheduler struct {
	now   float64
	tasks []task // sorted by due
	fired []TaskTag
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules tag to fire once delay seconds from now.
func (s *Scheduler) After(delay float64, tag TaskTag) {
	due := s.now + delay
	i := sort.Search(len(s.tasks), func(i int) bool { return s.tasks[i].due > due })
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = task{due: due, tag: tag}
}

// Advance moves the clock forward by dt and removes every task whose
// deadline has passed. The returned slice is reused by the next call.
func (s *Scheduler) Advance(dt float64) []TaskTag {
	s.now += dt
	s.fired = s.fired[:0]

	n := 0
	for n < len(s.tasks) && s.tasks[n].due <= s.now {
		s.fired = append(s.fired, s.tasks[n].tag)
		n++
	}
	s.tasks = append(s.tasks[:0], s.tasks[n:]...)
	return s.fired
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.tasks = s.tasks[:0]
}

// Pending returns the number of scheduled tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Now returns the scheduler's simulated time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}
