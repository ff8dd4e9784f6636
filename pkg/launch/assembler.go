// SPDX-FileCopyrightText: 2026 The nsl-go Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package launch assembles the concrete command line for the external
// runtime: classpath, native library path and the ordered argument vector.
//
// All embedded paths are normalised to forward-slash form regardless of the
// host path-separator convention.
package launch

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nsl-launcher/nsl-go/pkg/optional"
	"github.com/nsl-launcher/nsl-go/pkg/profile"
)

// Identity is the auth-derived part of the argument vector.
type Identity struct {
	UUID        string
	AccessToken string
	Username    string
}

func toSlash(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}

// ClientDir returns the per-profile client directory under the local root.
func ClientDir(prof profile.Profile, root string) string {
	return toSlash(filepath.Join(root, "profiles", prof.Name))
}

// classpathOption builds the classpath option for an explicit path-list
// separator, keeping assembly a pure function of its inputs.
func classpathOption(prof profile.Profile, root, separator string) string {
	elements := make([]string, 0, len(prof.Libraries)+len(prof.ClassPath))
	for _, library := range prof.Libraries {
		elements = append(elements, toSlash(filepath.Join(root, "libraries", library)))
	}
	for _, entry := range prof.ClassPath {
		elements = append(elements, toSlash(filepath.Join(root, "profiles", prof.Name, entry)))
	}
	return "-Djava.class.path=" + strings.Join(elements, separator)
}

// ClasspathOption builds the classpath option with the host's path-list
// separator (":" on Unix-like systems, ";" on Windows).
func ClasspathOption(prof profile.Profile, root string) string {
	return classpathOption(prof, root, string(os.PathListSeparator))
}

// NativesOption builds the native-library-path option.
func NativesOption(prof profile.Profile, root string) string {
	return "-Djava.library.path=" + toSlash(filepath.Join(root, "natives", prof.Version))
}

// Args builds the ordered argument vector: the profile's declared client
// arguments, the fixed identity/directory pairs, then the optional-engine
// arguments, in exactly that order.
func Args(prof profile.Profile, root string, identity Identity, extraArgs []string) []string {
	args := make([]string, 0, len(prof.ClientArgs)+16+len(extraArgs))
	args = append(args, prof.ClientArgs...)
	args = append(args,
		"--gameDir", ClientDir(prof, root),
		"--assetsDir", toSlash(filepath.Join(root, prof.AssetsDir)),
		"--assetIndex", prof.Assets,
		"--uuid", identity.UUID,
		"--accessToken", identity.AccessToken,
		"--username", identity.Username,
		"--server", prof.ServerName,
		"--port", strconv.Itoa(int(prof.ServerPort)),
	)
	args = append(args, extraArgs...)
	return args
}

// Invocation is the fully assembled launch configuration handed to the
// runtime invoker.
type Invocation struct {
	JvmOptions []string
	Args       []string
	Files      map[optional.Location]optional.OptionalFiles
}

// Assemble resolves the profile's optionals for the given environment and
// selection and produces the complete launch configuration.
func Assemble(prof profile.Profile, root string, identity Identity, info optional.ClientInfo, selected []string) Invocation {
	extraArgs, files := optional.Resolve(prof.Optionals, info, selected)
	return Invocation{
		JvmOptions: []string{
			ClasspathOption(prof, root),
			NativesOption(prof, root),
		},
		Args:  Args(prof, root, identity, extraArgs),
		Files: files,
	}
}
