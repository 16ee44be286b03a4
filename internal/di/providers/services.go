package providers

import (
	"github.com/samber/do/v2"

	"github.com/chatlabs/chat-api/internal/logger"
	"github.com/chatlabs/chat-api/internal/service"
	"github.com/chatlabs/chat-api/internal/validation"
)

// ProvideMessageService provides the message service.
func ProvideMessageService(i do.Injector) (*service.MessageService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMessageService(storeHandle.Store, validator, log.Logger), nil
}

// ProvideTagService provides the tag suggestion service.
func ProvideTagService(i do.Injector) (*service.TagService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTagService(storeHandle.Store, validator, log.Logger), nil
}
