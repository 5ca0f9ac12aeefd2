package main

import (
	"log"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// defaultThreadCount resolves the -threads platform hint (§6). It prefers
// gopsutil's logical core count and falls back to runtime.NumCPU if
// gopsutil can't read it (e.g. inside an unusual container).
func defaultThreadCount() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		log.Printf("[config] gopsutil CPU count unavailable (%v), falling back to runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return n
}
