// Package main provides a tool to seed the database with tag suggestions
// and sample messages.
//
// Everything goes through the services, so seeded data follows the same
// resolution and validation rules as API writes.
//
// Usage:
//
//	DB_PATH=./data/chat.db go run ./cmd/seed
//	DB_PATH=./data/chat.db go run ./cmd/seed --messages 50
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/samber/do/v2"

	"github.com/chatlabs/chat-api/internal/config"
	"github.com/chatlabs/chat-api/internal/di"
	"github.com/chatlabs/chat-api/internal/domain"
	"github.com/chatlabs/chat-api/internal/service"
)

var topics = []string{
	"general", "random", "release", "backend", "frontend",
	"design", "incident", "standup", "hiring", "docs",
}

var users = []string{
	"alice", "bob", "carol", "dave", "erin", "frank",
}

var lines = []string{
	"Shipping the new build today",
	"Can someone review my pull request?",
	"Lunch at noon?",
	"The staging deploy is green again",
	"Updated the onboarding guide",
	"Retro notes are in the usual place",
	"Who owns the flaky test in CI?",
	"Moving the sync to Thursday",
}

func main() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	messageCount := fs.Int("messages", 20, "Number of sample messages to create")
	suggestionsOnly := fs.Bool("suggestions-only", false, "Only seed tag suggestions")
	_ = fs.Parse(os.Args[1:])

	// Database settings come from the environment and .env.
	cfg, err := config.Load(nil)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	injector := di.NewServiceContainer(cfg)
	defer func() { _ = injector.Shutdown() }()

	tags := do.MustInvoke[*service.TagService](injector)
	messages := do.MustInvoke[*service.MessageService](injector)

	ctx := context.Background()

	fmt.Printf("Seeding %s database\n", cfg.Database.Driver)

	seeded := 0
	for _, topic := range topics {
		if _, err := tags.Create(ctx, service.CreateTagRequest{Tag: topic, Type: domain.TagTypeTopic, Trigger: "#"}); err != nil {
			log.Fatalf("Failed to seed topic %q: %v", topic, err)
		}
		seeded++
	}
	for _, user := range users {
		if _, err := tags.Create(ctx, service.CreateTagRequest{Tag: user, Type: domain.TagTypeUser, Trigger: "@"}); err != nil {
			log.Fatalf("Failed to seed user %q: %v", user, err)
		}
		seeded++
	}
	fmt.Printf("  Suggestions: %d\n", seeded)

	if *suggestionsOnly {
		return
	}

	for i := range *messageCount {
		req := service.CreateMessageRequest{
			SenderID: users[rand.IntN(len(users))],
			Text:     lines[rand.IntN(len(lines))],
			Status:   domain.MessageStatusSent,
			Tags: []service.TagInput{
				{Tag: topics[rand.IntN(len(topics))], Type: domain.TagTypeTopic},
			},
		}
		if rand.IntN(2) == 0 {
			req.Tags = append(req.Tags, service.TagInput{Tag: users[rand.IntN(len(users))], Type: domain.TagTypeUser})
		}

		if _, err := messages.Create(ctx, req); err != nil {
			log.Fatalf("Failed to create message %d: %v", i+1, err)
		}
	}
	fmt.Printf("  Messages: %d\n", *messageCount)
	fmt.Println("Done")
}
