package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textbuf/internal/textbuf"
)

// ModuleName is the name scripts require the module by.
const ModuleName = "textbuf"

// TypeName names the metatable registered for buffer userdata.
const TypeName = "textbuf.TextBuffer"

var moduleFuncs = map[string]lua.LGFunction{
	"new":     newBuffer,
	"add":     addBuffers,
	"equal":   equalSources,
	"less":    lessSources,
	"compare": compareSources,
}

var bufferMethods = map[string]lua.LGFunction{
	"len":         bufLen,
	"str":         bufStr,
	"at":          bufAt,
	"index":       bufIndex,
	"find":        bufFind,
	"replace":     bufReplace,
	"erase":       bufErase,
	"erase_front": bufEraseFront,
	"upper":       bufUpper,
	"lower":       bufLower,
	"concat":      bufConcat,
	"assign":      bufAssign,
	"equals":      bufEquals,
	"compare":     bufCompare,
	"clone":       bufClone,
	"release":     bufRelease,
}

// Loader is the lua.LGFunction that builds the textbuf module table.
// Register it with L.PreloadModule to make require("textbuf") work.
func Loader(L *lua.LState) int {
	registerType(L)
	mod := L.SetFuncs(L.NewTable(), moduleFuncs)
	L.Push(mod)
	return 1
}

func registerType(L *lua.LState) {
	mt := L.NewTypeMetatable(TypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), bufferMethods))
	L.SetField(mt, "__tostring", L.NewFunction(bufStr))
	L.SetField(mt, "__len", L.NewFunction(bufLen))
	L.SetField(mt, "__eq", L.NewFunction(equalSources))
	L.SetField(mt, "__lt", L.NewFunction(lessSources))
	L.SetField(mt, "__le", L.NewFunction(lessEqualSources))
	L.SetField(mt, "__concat", L.NewFunction(addBuffers))
}

// Buffer extracts the TextBuffer held by a Lua value.
func Buffer(v lua.LValue) (*textbuf.TextBuffer, bool) {
	ud, ok := v.(*lua.LUserData)
	if !ok {
		return nil, false
	}
	b, ok := ud.Value.(*textbuf.TextBuffer)
	return b, ok
}

func pushBuffer(L *lua.LState, b *textbuf.TextBuffer) {
	ud := L.NewUserData()
	ud.Value = b
	L.SetMetatable(ud, L.GetTypeMetatable(TypeName))
	L.Push(ud)
}

func checkBuffer(L *lua.LState, n int) *textbuf.TextBuffer {
	b, ok := Buffer(L.Get(n))
	if !ok {
		L.ArgError(n, "textbuf expected")
		return nil
	}
	return b
}

// checkSource accepts a string, a buffer, or nil (the absent sequence).
func checkSource(L *lua.LState, n int) textbuf.Source {
	v := L.Get(n)
	switch v.Type() {
	case lua.LTNil:
		return nil
	case lua.LTString, lua.LTNumber:
		return textbuf.Str(v.String())
	}
	if b, ok := Buffer(v); ok {
		return b
	}
	L.ArgError(n, "string or textbuf expected, got "+v.Type().String())
	return nil
}

// new([s]) -> textbuf
func newBuffer(L *lua.LState) int {
	pushBuffer(L, textbuf.Of(checkSource(L, 1)))
	return 1
}

// add(a, b) -> textbuf
// Also serves as __concat, so either operand may be a string.
func addBuffers(L *lua.LState) int {
	pushBuffer(L, textbuf.Add(checkSource(L, 1), checkSource(L, 2)))
	return 1
}

// equal(a, b) -> boolean
func equalSources(L *lua.LState) int {
	L.Push(lua.LBool(textbuf.Equal(checkSource(L, 1), checkSource(L, 2))))
	return 1
}

// less(a, b) -> boolean
func lessSources(L *lua.LState) int {
	L.Push(lua.LBool(textbuf.Less(checkSource(L, 1), checkSource(L, 2))))
	return 1
}

func lessEqualSources(L *lua.LState) int {
	L.Push(lua.LBool(textbuf.Compare(checkSource(L, 1), checkSource(L, 2)) <= 0))
	return 1
}

// compare(a, b) -> -1 | 0 | 1
func compareSources(L *lua.LState) int {
	L.Push(lua.LNumber(textbuf.Compare(checkSource(L, 1), checkSource(L, 2))))
	return 1
}

// b:len() -> number
func bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(checkBuffer(L, 1).Len()))
	return 1
}

// b:str() -> string
func bufStr(L *lua.LState) int {
	L.Push(lua.LString(checkBuffer(L, 1).String()))
	return 1
}

// b:at(i) -> number
// Byte value at 0-based offset i. Out of range raises an error.
func bufAt(L *lua.LState) int {
	b := checkBuffer(L, 1)
	c, err := b.ByteAt(L.CheckInt(2))
	if err != nil {
		L.RaiseError("at: %v", err)
		return 0
	}
	L.Push(lua.LNumber(c))
	return 1
}

// b:index(ch) -> number
// Offset of the first byte of ch, or -1.
func bufIndex(L *lua.LState) int {
	b := checkBuffer(L, 1)
	ch := L.CheckString(2)
	if len(ch) == 0 {
		L.ArgError(2, "non-empty string expected")
		return 0
	}
	L.Push(lua.LNumber(b.IndexByte(ch[0])))
	return 1
}

// b:find(needle) -> number
func bufFind(L *lua.LState) int {
	b := checkBuffer(L, 1)
	L.Push(lua.LNumber(b.Find(checkSource(L, 2))))
	return 1
}

// b:replace(target, replacement) -> b
func bufReplace(L *lua.LState) int {
	b := checkBuffer(L, 1)
	b.Replace(checkSource(L, 2), checkSource(L, 3))
	L.Push(L.Get(1))
	return 1
}

// b:erase(from [, to]) -> b
func bufErase(L *lua.LState) int {
	b := checkBuffer(L, 1)
	from := L.CheckInt(2)
	if L.GetTop() >= 3 && L.Get(3) != lua.LNil {
		b.EraseRange(from, L.CheckInt(3))
	} else {
		b.Erase(from)
	}
	L.Push(L.Get(1))
	return 1
}

// b:erase_front(to) -> b
func bufEraseFront(L *lua.LState) int {
	checkBuffer(L, 1).EraseFront(L.CheckInt(2))
	L.Push(L.Get(1))
	return 1
}

// b:upper() -> b
func bufUpper(L *lua.LState) int {
	checkBuffer(L, 1).ToUpper()
	L.Push(L.Get(1))
	return 1
}

// b:lower() -> b
func bufLower(L *lua.LState) int {
	checkBuffer(L, 1).ToLower()
	L.Push(L.Get(1))
	return 1
}

// b:concat(other) -> b
func bufConcat(L *lua.LState) int {
	b := checkBuffer(L, 1)
	b.Concat(checkSource(L, 2))
	L.Push(L.Get(1))
	return 1
}

// b:assign(other) -> b
func bufAssign(L *lua.LState) int {
	b := checkBuffer(L, 1)
	b.Assign(checkSource(L, 2))
	L.Push(L.Get(1))
	return 1
}

// b:equals(other) -> boolean
func bufEquals(L *lua.LState) int {
	b := checkBuffer(L, 1)
	L.Push(lua.LBool(b.Equals(checkSource(L, 2))))
	return 1
}

// b:compare(other) -> -1 | 0 | 1
func bufCompare(L *lua.LState) int {
	b := checkBuffer(L, 1)
	L.Push(lua.LNumber(b.Compare(checkSource(L, 2))))
	return 1
}

// b:clone() -> textbuf
func bufClone(L *lua.LState) int {
	pushBuffer(L, checkBuffer(L, 1).Clone())
	return 1
}

// b:release()
func bufRelease(L *lua.LState) int {
	checkBuffer(L, 1).Release()
	return 0
}
