// Package common holds the dispatch boundary shared by every Todoist tool:
// the instrumented handler wrapper and the translation of typed errors into
// structured failure results.
package common
