package commands

import (
	"strings"

	"github.com/goliatone/go-wpimport/internal/logging"
	"github.com/goliatone/go-wpimport/pkg/interfaces"
)

const commandModuleRoot = "wpimport.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriching it with
// consistent structured fields so command executions stay traceable.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
