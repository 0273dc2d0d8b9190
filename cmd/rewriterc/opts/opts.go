package opts

import (
	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	BaseDir    string
	UserLogger *status.UserLogger
}
