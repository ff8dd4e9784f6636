// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package extension lets launcher extensions register commands and run
// initialisation hooks. Extensions implement no protocol or resolution logic
// themselves.
package extension

import "fmt"

// CommandHandler runs one launcher command.
type CommandHandler func(args []string) error

// CommandRegister collects the launcher's command table.
type CommandRegister struct {
	commands map[string]CommandHandler
}

func NewCommandRegister() *CommandRegister {
	return &CommandRegister{commands: make(map[string]CommandHandler)}
}

// Register adds one command. Re-registering a name is an error so extensions
// cannot silently shadow built-ins.
func (register *CommandRegister) Register(name string, handler CommandHandler) error {
	if _, exists := register.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	register.commands[name] = handler
	return nil
}

// Lookup resolves a command by name.
func (register *CommandRegister) Lookup(name string) (CommandHandler, bool) {
	handler, ok := register.commands[name]
	return handler, ok
}

// Names lists all registered command names.
func (register *CommandRegister) Names() []string {
	names := make([]string, 0, len(register.commands))
	for name := range register.commands {
		names = append(names, name)
	}
	return names
}

// LauncherExtension is the hook surface offered to extensions.
type LauncherExtension interface {
	RegisterCommands(register *CommandRegister) error
	Init() error
}
