package orchestration

import (
	"fmt"

	"github.com/edgeship/edgeship/internal/provisioning"
)

// Task is one named asynchronous operation.
type Task struct {
	Name string
	Func func() error
}

// RunParallel starts all tasks concurrently and waits for every one to
// finish. The first error encountered is returned after all tasks complete,
// so a failed phase never leaves a sibling running unobserved.
func RunParallel(observer provisioning.Observer, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}
	if len(tasks) == 1 {
		return tasks[0].Func()
	}

	type result struct {
		name string
		err  error
	}
	results := make(chan result, len(tasks))

	for _, task := range tasks {
		go func() {
			observer.Printf("[%s] started", task.Name)
			err := task.Func()
			if err == nil {
				observer.Printf("[%s] finished", task.Name)
			}
			results <- result{name: task.Name, err: err}
		}()
	}

	var firstErr error
	for range len(tasks) {
		res := <-results
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", res.name, res.err)
		}
	}
	return firstErr
}
