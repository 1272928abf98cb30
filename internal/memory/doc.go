// Package memory configures the Go runtime memory limit for containers.
//
// Kubernetes does not set GOMEMLIMIT, so a pod with a 512Mi limit lets the
// heap grow until the kernel OOM-kills it. Passing the limit through the
// Downward API as MEMORY_LIMIT lets [ConfigureFromEnv] set a soft limit at
// MEMORY_RATIO of it, making the GC work harder before that point:
//
//	env:
//	  - name: MEMORY_LIMIT
//	    valueFrom:
//	      resourceFieldRef:
//	        resource: limits.memory
//
// An explicit GOMEMLIMIT always wins and is only reported.
package memory
