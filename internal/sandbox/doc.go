// Package sandbox drops filesystem access for the current process with
// Landlock once all inputs have been read.
//
// Landlock restrictions apply to the whole process and every goroutine and
// cannot be lifted again. UDP traffic is not governed by Landlock, so a
// restricted process can still send its report.
package sandbox
