package main

import (
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/term"

	log "github.com/sirupsen/logrus"

	"github.com/nsl-launcher/nsl-go/pkg/client"
	"github.com/nsl-launcher/nsl-go/pkg/extension"
	"github.com/nsl-launcher/nsl-go/pkg/launch"
	"github.com/nsl-launcher/nsl-go/pkg/message"
	"github.com/nsl-launcher/nsl-go/pkg/optional"
	"github.com/nsl-launcher/nsl-go/pkg/profile"
	"github.com/nsl-launcher/nsl-go/pkg/security"
)

// extensions holds compiled-in launcher extensions. The loading mechanism is
// outside this program; extensions only contribute commands and init hooks.
var extensions []extension.LauncherExtension

func localOsType() optional.OsType {
	switch runtime.GOOS {
	case "windows":
		return optional.OsWindows
	case "darwin":
		return optional.OsMacOS
	default:
		return optional.OsLinux
	}
}

func main() {
	if len(os.Args) < 3 {
		log.Fatalf("Usage: %s configuration.json <command> [args...]", os.Args[0])
	}

	conf, err := parse(os.Args[1])
	if err != nil {
		log.WithField("error", err).Fatal("Config error")
	}

	register := extension.NewCommandRegister()
	registerBuiltins(register, conf)
	for _, ext := range extensions {
		if err := ext.RegisterCommands(register); err != nil {
			log.WithField("error", err).Fatal("Extension command registration failed")
		}
		if err := ext.Init(); err != nil {
			log.WithField("error", err).Fatal("Extension init failed")
		}
	}

	command := os.Args[2]
	handler, ok := register.Lookup(command)
	if !ok {
		names := register.Names()
		sort.Strings(names)
		log.Fatalf("Unknown command %q, available: %s", command, strings.Join(names, ", "))
	}

	if err := handler(os.Args[3:]); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func registerBuiltins(register *extension.CommandRegister, conf config) {
	_ = register.Register("profiles", func(args []string) error {
		session, err := connectAndAuth(conf)
		if err != nil {
			return err
		}
		defer session.client.Close()

		profiles, err := session.client.Profiles()
		if err != nil {
			return err
		}
		for _, summary := range profiles {
			fmt.Printf("%s (%s)\n", summary.Name, summary.Version)
			for _, opt := range summary.Optionals {
				fmt.Printf("  [optional] %s: %s\n", opt.Name, opt.Description)
			}
		}
		return nil
	})

	_ = register.Register("resources", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: resources <profile>")
		}
		session, err := connectAndAuth(conf)
		if err != nil {
			return err
		}
		defer session.client.Close()

		list, err := session.client.ProfileResources(args[0])
		if err != nil {
			return err
		}
		for _, path := range list {
			fmt.Println(path)
		}
		return nil
	})

	_ = register.Register("launch", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: launch <profile.json>")
		}
		prof, err := profile.Load(args[0])
		if err != nil {
			return err
		}

		session, err := connectAndAuth(conf)
		if err != nil {
			return err
		}
		defer session.client.Close()

		identity := launch.Identity{
			UUID:        session.auth.UUID,
			AccessToken: session.auth.AccessToken,
			Username:    conf.Login,
		}
		info := optional.ClientInfo{OsType: localOsType()}
		invocation := session.client.Resolve(prof, conf.GameDir, identity, info, conf.Selected)

		invoker := launch.ExecInvoker{JavaBin: conf.JavaBin}
		return invoker.Start(conf.MainClass, invocation)
	})
}

type session struct {
	client *client.Client
	auth   message.AuthResponse
}

func connectAndAuth(conf config) (*session, error) {
	var bridge security.Bridge = security.PassthroughBridge{}
	if conf.SecretKey != "" {
		aesBridge, err := security.NewAESBridge(conf.SecretKey)
		if err != nil {
			return nil, err
		}
		bridge = aesBridge
	}

	c, err := client.Connect(conf.ServerURL, bridge)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", conf.Login)
	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	authResponse, err := c.Auth(conf.Login, string(passwordBytes))
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	log.WithField("uuid", authResponse.UUID).Info("Authenticated")

	return &session{client: c, auth: authResponse}, nil
}
