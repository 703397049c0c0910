// Command gridview shows a virtualized grid of generated employee rows in
// the terminal or an OpenGL window, or prints the window a scroll position
// resolves to.
package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
