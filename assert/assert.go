package assert

import (
	"github.com/bloeys/nrend/logging"
)

// T panics with the formatted message if check is false
func T(check bool, msg string, args ...any) {
	if !check {
		logging.ErrLog.Panicf("Assert failed: "+msg, args...)
	}
}
