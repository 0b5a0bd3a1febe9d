package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-algoviz/pkg/config"
	"github.com/dd0wney/cluso-algoviz/pkg/logging"
	"github.com/dd0wney/cluso-algoviz/pkg/session"
)

func main() {
	configPath := flag.String("config", "", "config file (YAML)")
	kind := flag.String("kind", "array", "structure to start with")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// The terminal belongs to the UI; logs are discarded.
	sess, err := session.New(
		session.CreateRequest{Kind: *kind, Sample: true, Speed: cfg.Player.Speed},
		session.WithLogger(logging.NewNopLogger()),
		session.WithLayout(cfg.LayoutSettings()),
	)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	defer sess.Close()

	p := tea.NewProgram(initialModel(sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
