/*
Package workers sizes worker pools from GOMAXPROCS rather than
runtime.NumCPU, so a pod limited to 2 CPUs on a 64-core node gets 2-based
pools instead of 64-based ones.

The scanner uses [ForIO] to bound how many files of one directory are
inspected (header decode and subtitle lookup) at a time. Set SCAN_WORKERS to
pin the count, for example to 1 on slow network mounts.
*/
package workers
