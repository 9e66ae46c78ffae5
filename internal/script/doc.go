// Package script embeds a sandboxed Lua runtime that exposes TextBuffer to
// scripts.
//
// This package wraps the gopher-lua library to provide:
//   - A Lua state with only the base, table, string and math libraries
//   - A preloaded textbuf module (also set as the global "textbuf")
//   - Context-bound execution with a default timeout
//   - print output redirected to a configurable writer
//
// # State
//
//	state, err := script.NewState(script.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
//	err = state.DoString(ctx, `
//	    local b = textbuf.new("hello world")
//	    b:replace("world", "there"):upper()
//	    print(b)  -- HELLO THERE
//	`)
//
// # The textbuf module
//
// textbuf.new([s]) creates a buffer. Buffers are userdata with these methods,
// all using 0-based byte offsets:
//
//	len, str, at, index, find, replace, erase, erase_front,
//	upper, lower, concat, assign, equals, compare, clone, release
//
// Mutating methods return the buffer so calls can be chained. Buffers also
// support tostring, #, ==, <, <= and the .. operator, which produces a new
// buffer. Wherever a method takes text it accepts a Lua string or a buffer.
// The module functions textbuf.add, textbuf.equal, textbuf.less and
// textbuf.compare take two such values.
package script
