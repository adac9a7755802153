package calculator

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// 基于下标区间的任务分配
type executor struct {
	workers int
}

type task struct {
	start int
	end   int
}

func newExecutor(workers int) *executor {
	if workers < 1 {
		workers = 1
	}
	return &executor{workers: workers}
}

// 每个 worker 分得两段，余数逐个分配
func (e *executor) split(total int) []task {
	var tasks []task
	taskLen, remainder := total/e.workers, total%e.workers
	start := 0
	if taskLen > 0 {
		half1, half2 := taskLen/2, taskLen/2
		if taskLen%2 == 1 {
			half2++
		}
		for start < total-remainder {
			if half1 != 0 {
				tasks = append(tasks, task{start: start, end: start + half1})
				start += half1
			}
			tasks = append(tasks, task{start: start, end: start + half2})
			start += half2
		}
	}
	for i := 0; i < remainder; i++ {
		tasks = append(tasks, task{start: start, end: start + 1})
		start++
	}
	return tasks
}

// dispatch 对 [0, total) 的每个下标执行 f，任一出错即取消其余任务
func (e *executor) dispatch(ctx context.Context, total int, f func(i int) error) error {
	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan task)

	g.Go(func() error {
		defer close(tasks)
		for _, t := range e.split(total) {
			select {
			case tasks <- t:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < e.workers; w++ {
		g.Go(func() error {
			for t := range tasks {
				for i := t.start; i < t.end; i++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := f(i); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
