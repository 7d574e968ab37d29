// Package lib holds infrastructure that does not belong to a single layer:
// the asynq job queue that records bookings and the dependency health
// checker with its periodic monitor.
package lib
