package main

import "testing"

func TestMainWiring(t *testing.T) {
	orig := executeCmd
	t.Cleanup(func() { executeCmd = orig })

	called := false
	executeCmd = func() { called = true }

	main()

	if !called {
		t.Fatalf("expected main to delegate to the root command")
	}
}
