package control

import (
	"errors"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var (
	ErrScriptFunction = errors.New(f("function missing"))
	ErrScriptValue    = errors.New(f("not an int"))
)

// ErrScript locates an error raised by a controller script.
type ErrScript struct {
	Name string
	Func string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("script %v %v() %v", err.Name, err.Func, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}

// Script is a Controller written in Starlark. The script defines
//
//	def sense(state): ...           # returns the next input, or None to stop
//	def act(state, values): ...     # applies a list of outputs
//
// where state is a dict that persists from call to call.
type Script struct {
	Name  string         // Script file name.
	State *starlark.Dict // State shared by every call.

	thread *starlark.Thread
	sense  starlark.Callable
	act    starlark.Callable
}

var _ Controller = (*Script)(nil)

// LoadScript compiles and runs a controller script. src may be anything
// accepted by starlark.ExecFile, or nil to read the file name.
func LoadScript(name string, src any) (script *Script, err error) {
	script = &Script{
		Name:  name,
		State: starlark.NewDict(16),
		thread: &starlark.Thread{
			Name: name,
			Print: func(_ *starlark.Thread, msg string) {
				log.Printf("%v: %v", name, msg)
			},
		},
	}

	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, script.thread, name, src, nil)
	if err != nil {
		err = &ErrScript{Name: name, Err: err}
		return
	}

	for fn, dst := range map[string]*starlark.Callable{
		"sense": &script.sense,
		"act":   &script.act,
	} {
		callable, ok := globals[fn].(starlark.Callable)
		if !ok {
			err = &ErrScript{Name: name, Func: fn, Err: ErrScriptFunction}
			return
		}
		*dst = callable
	}

	return
}

// Get returns a value stored in the script state.
func (script *Script) Get(key string) (value starlark.Value, ok bool) {
	value, ok, _ = script.State.Get(starlark.String(key))
	return
}

// Sense calls the script's sense(state).
func (script *Script) Sense() (input int64, err error) {
	rc, err := starlark.Call(script.thread, script.sense, starlark.Tuple{script.State}, nil)
	if err != nil {
		err = &ErrScript{Name: script.Name, Func: "sense", Err: err}
		return
	}

	if rc == starlark.None {
		err = ErrStop
		return
	}

	st_int, ok := rc.(starlark.Int)
	if !ok {
		err = &ErrScript{Name: script.Name, Func: "sense", Err: ErrScriptValue}
		return
	}

	input, ok = st_int.Int64()
	if !ok {
		err = &ErrScript{Name: script.Name, Func: "sense", Err: ErrScriptValue}
		return
	}

	return
}

// Act calls the script's act(state, values).
func (script *Script) Act(outputs []int64) (err error) {
	values := make([]starlark.Value, len(outputs))
	for n, output := range outputs {
		values[n] = starlark.MakeInt64(output)
	}

	_, err = starlark.Call(script.thread, script.act, starlark.Tuple{script.State, starlark.NewList(values)}, nil)
	if err != nil {
		err = &ErrScript{Name: script.Name, Func: "act", Err: err}
		return
	}

	return
}
