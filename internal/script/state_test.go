package script

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/textbuf/internal/logging"
)

func newTestState(t *testing.T, opts ...StateOption) (*State, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	state, err := NewState(append([]StateOption{WithOutput(&out)}, opts...)...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state, &out
}

func TestNewState(t *testing.T) {
	state, _ := newTestState(t)

	if state.IsClosed() {
		t.Error("NewState() returned closed state")
	}
	if state.LuaState() == nil {
		t.Error("LuaState() is nil")
	}
	if state.GetGlobal(ModuleName) == glua.LNil {
		t.Error("textbuf global not installed")
	}
}

func TestStateDoString(t *testing.T) {
	state, _ := newTestState(t)

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if num, ok := state.GetGlobal("x").(glua.LNumber); !ok || float64(num) != 2 {
		t.Errorf("x = %v, want 2", state.GetGlobal("x"))
	}
}

func TestStateSyntaxError(t *testing.T) {
	var logs bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &logs})
	state, _ := newTestState(t, WithLogger(logger))

	if err := state.DoString(context.Background(), `invalid lua code !!!`); err == nil {
		t.Fatal("DoString() should fail on syntax error")
	}
	if !strings.Contains(logs.String(), "component=script") {
		t.Errorf("failure not logged: %q", logs.String())
	}
}

func TestStatePrint(t *testing.T) {
	state, out := newTestState(t)

	err := state.DoString(context.Background(), `print("a", 1, textbuf.new("buf"))`)
	if err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got := out.String(); got != "a\t1\tbuf\n" {
		t.Errorf("print wrote %q", got)
	}
}

func TestStateSandbox(t *testing.T) {
	state, _ := newTestState(t)

	for _, name := range []string{"dofile", "loadfile", "load", "io", "os", "debug"} {
		if state.GetGlobal(name) != glua.LNil {
			t.Errorf("global %q should not be available", name)
		}
	}

	if err := state.DoString(context.Background(), `require("os")`); err == nil {
		t.Error("require of an unlisted module should fail")
	}
	if err := state.DoString(context.Background(), `local t = require("textbuf"); assert(t.new)`); err != nil {
		t.Errorf("require(textbuf) error = %v", err)
	}
}

func TestStateTimeout(t *testing.T) {
	state, _ := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := state.DoString(context.Background(), `y = 3`); err != nil {
		t.Errorf("DoString() after timeout error = %v", err)
	}
}

func TestStateCancelled(t *testing.T) {
	state, _ := newTestState(t, WithExecutionTimeout(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := state.DoString(ctx, `while true do end`)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("DoString() error = %v, want context.Canceled", err)
	}
}

func TestStateDoFile(t *testing.T) {
	state, out := newTestState(t)

	path := filepath.Join(t.TempDir(), "greet.lua")
	src := `local b = textbuf.new("hello world"); b:replace("world", "file"); print(b)`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := state.DoFile(context.Background(), path); err != nil {
		t.Fatalf("DoFile() error = %v", err)
	}
	if out.String() != "hello file\n" {
		t.Errorf("DoFile printed %q", out.String())
	}
}

func TestStateClose(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}

	if err := state.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
	if err := state.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close error = %v, want ErrStateClosed", err)
	}
	if state.GetGlobal("x") != glua.LNil {
		t.Error("GetGlobal() after Close should return nil")
	}
}
