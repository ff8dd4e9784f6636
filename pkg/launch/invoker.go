// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package launch

import (
	"os"
	"os/exec"

	log "github.com/sirupsen/logrus"
)

// Invoker starts the external runtime with an assembled launch
// configuration. The invocation mechanics are outside the core; this is the
// "start a process with these arguments" collaborator.
type Invoker interface {
	Start(mainClass string, invocation Invocation) error
}

// ExecInvoker starts a Java runtime binary as a child process.
type ExecInvoker struct {
	JavaBin string
}

func (invoker ExecInvoker) Start(mainClass string, invocation Invocation) error {
	argv := make([]string, 0, len(invocation.JvmOptions)+1+len(invocation.Args))
	argv = append(argv, invocation.JvmOptions...)
	argv = append(argv, mainClass)
	argv = append(argv, invocation.Args...)

	log.WithFields(log.Fields{
		"bin":  invoker.JavaBin,
		"main": mainClass,
	}).Info("Starting runtime")

	cmd := exec.Command(invoker.JavaBin, argv...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
