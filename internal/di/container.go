// Package di provides dependency injection configuration for the chat API.
package di

import (
	"github.com/samber/do/v2"

	"github.com/chatlabs/chat-api/internal/config"
	"github.com/chatlabs/chat-api/internal/di/providers"
	"github.com/chatlabs/chat-api/internal/logger"
	"github.com/chatlabs/chat-api/internal/service"
	"github.com/chatlabs/chat-api/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideMessageService)
	do.Provide(injector, providers.ProvideTagService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// NewServiceContainer wires the services around an already loaded config,
// without the HTTP server. Used by tools that drive the services directly.
func NewServiceContainer(cfg *config.Config) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideMessageService)
	do.Provide(injector, providers.ProvideTagService)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of every provider.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}

	// Business services
	_ = do.MustInvoke[*service.MessageService](injector)
	_ = do.MustInvoke[*service.TagService](injector)

	// Server
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}

	return nil
}
