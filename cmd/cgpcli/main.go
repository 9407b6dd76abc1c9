package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pior/cgpcli"
	"github.com/pior/cgpcli/protocol"
)

func main() {
	configPath := flag.String("config", "cgpcli.toml", "path to the TOML connection config")
	verbose := flag.Bool("verbose", false, "log wire traffic")
	flag.Parse()

	cfg, err := cgpcli.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		cfg.Observer = cgpcli.NewSlogObserver(logger)
	}

	session := cgpcli.NewSession(cfg)
	if err := session.Connect(); err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer session.Disconnect()

	fmt.Printf("connected to %s, type commands (quit to exit)\n", cfg.Addr())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "quit") {
			break
		}

		body, err := session.Execute(cgpcli.Raw(line))
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		printBody(body)
	}
}

func printBody(body protocol.Body) {
	if body.Kind == protocol.Scalar {
		fmt.Println(body.Value)
		return
	}
	if len(body.Items) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, item := range body.Items {
		fmt.Println(item)
	}
}
