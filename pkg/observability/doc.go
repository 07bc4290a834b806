/*
Package observability provides tools for monitoring the deduce engine.

It turns lifecycle hooks into Prometheus metrics and structured log lines, and
merges several hook sets so a single run can feed all of them.
*/
package observability
