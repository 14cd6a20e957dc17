package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the SSR progress CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	_ = a.Login(ctx)

	for {
		fmt.Printf("ssr %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: projects, progress [code], files <code>, export [pending], cached, logout, exit")
			} else {
				fmt.Println("Available commands: login, cached, exit")
			}

		case "login":
			_ = a.Login(ctx)
		case "projects":
			_ = a.Projects(ctx)
		case "progress":
			_ = a.Progress(ctx, args)
		case "files":
			_ = a.Files(ctx, args)
		case "export":
			_ = a.Export(ctx, args)
		case "cached":
			_ = a.Cached(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
