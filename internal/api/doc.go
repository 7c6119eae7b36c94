// Package api exposes the task and background-job operations over HTTP.
// Handlers decode and validate requests, delegate to the stores and the
// background runner, and render JSON responses, keeping transport concerns
// out of the domain packages.
package api
