package testutil

// TerminalOption configures a FakeTerminal.
type TerminalOption func(*FakeTerminal)

// Size sets the terminal dimensions.
func Size(rows, cols int) TerminalOption {
	return func(ft *FakeTerminal) {
		ft.rows, ft.cols = rows, cols
	}
}

// Input queues scripted input. Each chunk is returned by a separate read;
// an empty string produces one idle read.
func Input(chunks ...string) TerminalOption {
	return func(ft *FakeTerminal) {
		for _, c := range chunks {
			ft.chunks = append(ft.chunks, []byte(c))
		}
	}
}

// Keys queues one chunk per byte, the way a slow typist's input arrives.
func Keys(s string) TerminalOption {
	return func(ft *FakeTerminal) {
		for i := range len(s) {
			ft.chunks = append(ft.chunks, []byte{s[i]})
		}
	}
}
