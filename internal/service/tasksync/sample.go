package tasksync

import (
	"time"

	"github.com/phrazzld/smarttask/internal/domain"
	"github.com/phrazzld/smarttask/internal/domain/priority"
)

type sampleTask struct {
	id         string
	title      string
	dueInDays  int
	importance int
	complexity int
}

var sampleTasks = []sampleTask{
	{id: "1", title: "Set up CI/CD pipeline", dueInDays: 5, importance: 10, complexity: 5},
	{id: "2", title: "MVP project presentation", dueInDays: 1, importance: 9, complexity: 2},
	{id: "3", title: "Refactor forms", dueInDays: 3, importance: 7, complexity: 3},
}

// FallbackSample returns the demo task set shown when the server cannot be
// reached. Deadlines are relative to asOf and scores are computed with engine.
func FallbackSample(asOf time.Time, engine *priority.Engine) []domain.Task {
	if engine == nil {
		engine = priority.NewDefaultEngine()
	}
	today := domain.DateOf(asOf)

	tasks := make([]domain.Task, 0, len(sampleTasks))
	for _, s := range sampleTasks {
		tasks = append(tasks, engine.Scored(domain.Task{
			ID:         s.id,
			Title:      s.title,
			Deadline:   today.AddDays(s.dueInDays),
			Importance: s.importance,
			Complexity: s.complexity,
		}, asOf))
	}
	return tasks
}
