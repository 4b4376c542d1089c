package shell

import (
	"errors"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
)

// scriptCommands are the shell commands a script can call, each as a Lua
// global named wordlerank_<command> taking the rest of the command line.
var scriptCommands = []string{
	"load", "set", "info", "rank", "top", "hist", "eval", "sim", "save",
}

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("wordlerank_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// scriptCommand runs name with the line passed as the first Lua argument
// and returns the command's output, or "ERROR: ..." on failure.
func scriptCommand(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		sc := getShell(L)
		cmd, err := extractFields(name + " " + L.OptString(1, ""))
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := sc.dispatch(cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
		} else {
			L.Push(lua.LString(r.message))
		}
		// return number of results pushed to stack.
		return 1
	}
}

// Results returns the best n rows of the last ranking as an array of
// tables with rank, guess, worst and target fields. n <= 0 returns all.
func Results(L *lua.LState) int {
	sc := getShell(L)
	r, err := sc.lastRanking()
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	rows := sc.engine.Rows(r, L.OptInt(1, 0))
	tbl := L.CreateTable(len(rows), 0)
	for _, row := range rows {
		t := L.CreateTable(0, 4)
		t.RawSetString("rank", lua.LNumber(row.Rank))
		t.RawSetString("guess", lua.LString(row.Guess))
		t.RawSetString("worst", lua.LNumber(row.Worst))
		t.RawSetString("target", lua.LString(row.WorstTarget))
		tbl.Append(t)
	}
	L.Push(tbl)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("wordlerank_shell", lsc)
	for _, name := range scriptCommands {
		L.SetGlobal("wordlerank_"+name, L.NewFunction(scriptCommand(name)))
	}
	L.SetGlobal("wordlerank_results", L.NewFunction(Results))

	args := L.CreateTable(len(cmd.args)-1, 0)
	for _, a := range cmd.args[1:] {
		args.Append(lua.LString(a))
	}
	L.SetGlobal("arg", args)

	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Str("script", filepath).Msg("script-failed")
		return nil, err
	}
	return nil, nil
}
