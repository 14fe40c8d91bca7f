// Package runner drives the external algorithm program over discovered
// instances and aggregates its timings.
//
// Each (algorithm, size) cell is the two-level mean of the elapsed times the
// program reports: first the mean over trials of one unit (an instance, or a
// pair of instances for pairwise algorithms), then the mean over units.
// Secondary metrics such as a color count are averaged the same way.
//
// Invocations never overlap. Each runs under the executor's timeout and a
// cancelled context kills the running child.
//
//	exec := runner.NewProcessExecutor("./tp.sh")
//	r, err := runner.New(exec, runner.WithTrials(3))
//	if err != nil {
//	    return err
//	}
//	res, err := r.Run(ctx, suite, inventory)
package runner
