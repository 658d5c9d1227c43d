package hooker

import (
	"github.com/wnxd/hookhelper/handler"
	"go.uber.org/zap"
)

// HookSyms installs every entry and reports whether at least one of them
// was hooked. The entries are meant to be alternative names of the same
// target; when none can be hooked a single error naming the first entry's
// symbol is logged.
func HookSyms(h handler.Handler, first Entry, rest ...Entry) bool {
	return hookSyms(Logger(), DefaultTag, h, first, rest...)
}

func hookSyms(log *zap.Logger, tag string, h handler.Handler, first Entry, rest ...Entry) bool {
	ok := first.Install(h)
	for _, e := range rest {
		if e.Install(h) {
			ok = true
		}
	}
	if !ok {
		log.Error("Hook Fails", zap.String("tag", tag), zap.String("symbol", string(first.Symbol())))
	}
	return ok
}
