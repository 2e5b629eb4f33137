package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	chatkit "github.com/goliatone/go-chatkit"
	"github.com/goliatone/go-chatkit/audit"
	chatkitcommands "github.com/goliatone/go-chatkit/commands"
	"github.com/goliatone/go-chatkit/delivery"
	"github.com/goliatone/go-chatkit/internal/di"
	"github.com/goliatone/go-chatkit/message"
	"github.com/goliatone/go-chatkit/styles"
	"github.com/goliatone/go-chatkit/templates"
)

const welcomeTemplate = `---
title: Welcome {{user}}
category: info
---
Thanks for joining **{{guild}}**.

---

Use the help command to get started.
`

func main() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "chatkit-example")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	if err := os.WriteFile(filepath.Join(dir, "welcome.md"), []byte(welcomeTemplate), 0o644); err != nil {
		log.Fatalf("write template: %v", err)
	}

	cfg := chatkit.DefaultConfig()
	cfg.Features.Templates = true
	cfg.Templates.Dir = dir

	transport := delivery.NewMemoryTransport()
	module, err := chatkit.New(cfg, di.WithTransport(transport))
	if err != nil {
		log.Fatalf("chatkit: %v", err)
	}

	// Styled sends for every category.
	for _, category := range styles.Categories() {
		style := styles.MustLookup(category)
		msg, err := message.NewCategory(category, fmt.Sprintf("%s example", category)).
			Textf("This message uses the #%06X accent.", int(style.Tone)).
			Build()
		if err != nil {
			log.Fatalf("build %s: %v", category, err)
		}
		if _, err := module.Delivery().Send(ctx, delivery.SendInput{ChannelID: "demo", Message: msg}); err != nil {
			log.Fatalf("send %s: %v", category, err)
		}
	}

	// Template-driven send.
	if _, err := module.Templates().LoadDirectory(ctx, dir); err != nil {
		log.Fatalf("load templates: %v", err)
	}
	welcome, err := module.Templates().Render(ctx, templates.RenderInput{
		Slug: "welcome",
		Vars: map[string]string{"user": "river", "guild": "Gopher Guild"},
	})
	if err != nil {
		log.Fatalf("render welcome: %v", err)
	}
	if _, err := module.Delivery().Send(ctx, delivery.SendInput{ChannelID: "demo", Message: welcome}); err != nil {
		log.Fatalf("send welcome: %v", err)
	}

	// Ephemeral interaction reply.
	if err := module.Delivery().Reply(ctx, delivery.ReplyInput{
		Interaction: delivery.InteractionRef{ID: "interaction-1", Token: "token"},
		Builder: message.NewCategory(styles.CategoryPermissionDenied, "Permission denied").
			Text("Only moderators can run this command."),
		Ephemeral: true,
	}); err != nil {
		log.Fatalf("reply: %v", err)
	}

	// Command handlers over the same container.
	handlers, err := chatkitcommands.RegisterContainerCommands(module.Container(), chatkitcommands.RegistrationOptions{})
	if err != nil {
		log.Fatalf("register commands: %v", err)
	}
	fmt.Printf("registered %d command handlers\n", len(handlers.Handlers))

	records, err := module.Audit().List(ctx, audit.ListInput{})
	if err != nil {
		log.Fatalf("list audit: %v", err)
	}
	fmt.Printf("recorded %d deliveries\n", len(records))

	for _, dispatch := range transport.Dispatches() {
		payload, err := json.Marshal(dispatch.Message)
		if err != nil {
			log.Fatalf("marshal dispatch: %v", err)
		}
		fmt.Printf("%-10s channel=%-6s ephemeral=%-5v %s\n",
			dispatch.Kind, dispatch.ChannelID, dispatch.Message.Ephemeral(), truncate(string(payload), 120))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
