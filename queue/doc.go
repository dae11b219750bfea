// Package queue moves graph tool work through Redis so execution can scale
// out horizontally.
//
// A dispatcher pushes WorkItems onto a per-tool list, any number of worker
// processes pop and execute them, and Results come back over a per-job
// pub/sub channel. The dispatcher never learns which worker served a job;
// Redis is the only coordination point.
//
// # Key layout
//
//	tool:<name>:queue    list of pending work items (LPUSH / BRPOP)
//	tool:<name>:meta     hash with the tool's registration metadata
//	tool:<name>:health   heartbeat string, 30s TTL
//	tool:<name>:workers  live worker counter
//	tools:available      set of registered tool names
//	job:<jobID>:results  pub/sub channel carrying the job's results
//
// Use QueueName and ResultChannel to build keys instead of formatting them
// inline.
//
// # Dispatching work
//
//	client, err := queue.NewRedisClient(queue.RedisOptions{
//		URL: "redis://localhost:6379",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	jobID := uuid.New().String()
//	err = client.Push(ctx, queue.QueueName("query-graph"), queue.WorkItem{
//		JobID:       jobID,
//		Index:       0,
//		Total:       1,
//		Tool:        "query-graph",
//		Input:       map[string]any{"query": "feline behavior", "namespace": "default"},
//		SubmittedAt: time.Now().UnixMilli(),
//	})
//
// Then collect the results:
//
//	results, err := client.Subscribe(ctx, queue.ResultChannel(jobID))
//	for result := range results {
//		if result.HasError() {
//			log.Printf("item %d failed: %s", result.Index, result.Error)
//			continue
//		}
//		// result.Output holds the tool's output map.
//	}
//
// # Serving work
//
// Workers normally go through the tool/worker package, which wraps the pop,
// execute, publish, heartbeat, and registration calls below into a managed
// loop:
//
//	item, err := client.Pop(ctx, queue.QueueName("query-graph")) // blocks
//	...
//	err = client.Publish(ctx, queue.ResultChannel(item.JobID), result)
//
// Pop honors context cancellation: it returns the context error once the
// deadline passes, even while blocked on an empty queue.
//
// # Discovery
//
// RegisterTool writes a ToolMeta hash and adds the tool to tools:available;
// ListTools reads the set back. Heartbeat refreshes the health key, and the
// worker counter tracks how many processes currently serve a tool.
//
// All Client methods are safe for concurrent use.
package queue
