package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	eyerestmcp "github.com/claude/eyerest/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", os.Getenv("EYEREST_URL"), "eyerest server URL (e.g. https://eyerest.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("EYEREST_AUTH_API_KEY"), "API key for control routes")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("eyerest-mcp", Version)
		return
	}

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: eyerest-mcp -server <URL> [-api-key KEY]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("eyerest-mcp starting", "version", Version, "server", *serverURL)

	client := eyerestmcp.NewHTTPClient(*serverURL, *apiKey)
	s := eyerestmcp.New(client, Version, log)

	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
