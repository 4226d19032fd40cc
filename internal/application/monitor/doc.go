// Package monitor periodically checks that the datasets can be read and
// publishes the outcome to metrics and to health status listeners.
package monitor
