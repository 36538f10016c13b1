package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CommandArgs splits a command line into the command name, positional
// arguments and "-name value" parameters.
type CommandArgs struct {
	commandName string
	args        []string
	params      map[string]string
}

func NewCommandArgs(args []string) *CommandArgs {
	var cmdName = ""
	var positional []string
	var flags = make(map[string]string)
	for i := 1; i < len(args); i++ {
		var arg = args[i]
		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			if i < len(args)-1 {
				var k = strings.TrimPrefix(arg, "-")
				flags[k] = args[i+1]
				i++
			}
		} else if cmdName == "" {
			cmdName = arg
		} else {
			positional = append(positional, arg)
		}
	}
	return &CommandArgs{
		commandName: cmdName,
		args:        positional,
		params:      flags,
	}
}

func (ca *CommandArgs) CommandName() string {
	return ca.commandName
}

// Arg returns the i-th positional argument after the command name.
func (ca *CommandArgs) Arg(i int) (string, bool) {
	if i < 0 || i >= len(ca.args) {
		return "", false
	}
	return ca.args[i], true
}

func (ca *CommandArgs) GetString(name string, defaultVal string) string {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal
	}
	return val
}

func (ca *CommandArgs) GetInt(name string, defaultVal int) (int, error) {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal, nil
	}
	var v, err = strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("parameter -%v: %w", name, err)
	}
	return v, nil
}

func (ca *CommandArgs) GetBool(name string, defaultVal bool) (bool, error) {
	var val, ok = ca.params[name]
	if !ok {
		return defaultVal, nil
	}
	var v, err = strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("parameter -%v: %w", name, err)
	}
	return v, nil
}

type CommandHandler struct {
	items map[string]func() error
}

func NewCommandHandler() *CommandHandler {
	return &CommandHandler{
		items: make(map[string]func() error),
	}
}

func (ch *CommandHandler) Add(name string, handler func() error) {
	ch.items[name] = handler
}

func (ch *CommandHandler) Names() []string {
	var result []string
	for name := range ch.items {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (ch *CommandHandler) Execute(commandName string) error {
	handler, found := ch.items[commandName]
	if !found {
		return fmt.Errorf("command not found %q, want one of %v", commandName, ch.Names())
	}
	return handler()
}
