// Package todoist is a small client for the Todoist REST API (v1).
//
// Every method performs exactly one HTTP request. There are no retries and no
// caching; callers always see the remote state at call time.
//
// Failures are typed:
//   - *ValidationError: an argument was rejected before any request was made
//   - *APIError: Todoist answered with a non-success status; the body is kept verbatim
//   - *TransientError: the request never got an answer (network failure, timeout)
//   - *ConfigurationError: the client could not be configured (missing token)
//
// # Example Usage
//
//	cfg, err := todoist.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := todoist.NewClient(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	task, err := client.AddTask(ctx, todoist.AddTaskRequest{Content: "Buy milk", Priority: 4})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := client.CloseTask(ctx, task.ID); err != nil {
//	    log.Fatal(err)
//	}
package todoist
