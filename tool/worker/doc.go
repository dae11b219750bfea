// Package worker runs a graph tool as a long-lived Redis queue consumer.
//
// Run connects to Redis, registers the tool, and starts a pool of goroutines
// that pop WorkItems from the tool's queue, execute them, and publish
// Results on the job's pub/sub channel. The process keeps serving until it
// receives SIGTERM or SIGINT, then drains in-flight work and exits.
//
//	queryTool, err := tools.NewQueryGraph(deps)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = worker.Run(queryTool, worker.Options{
//		RedisURL:        "redis://localhost:6379",
//		Concurrency:     4,
//		ShutdownTimeout: 30 * time.Second,
//	})
//
// Concurrency sets how many items execute in parallel within one process.
// Retrieval tools are I/O-bound on the embedding provider and tolerate high
// concurrency; pure graph mutations rarely need more than a couple of
// goroutines. Running more processes with the same tool scales the same way,
// since every worker pops from the same queue.
//
// On shutdown no new items are popped; goroutines finish the item they hold,
// the tool is deregistered, and Run returns. ShutdownTimeout bounds the
// drain so a stuck tool cannot hold the process open forever.
//
// Failures are contained per item: a tool error becomes an error Result on
// the job channel and the loop moves on. Only losing the Redis connection
// ends the worker, which then surfaces the error from Run.
//
// The Redis keys involved are described in the queue package.
package worker
