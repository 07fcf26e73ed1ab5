package assert

import (
	"io"
	"os"
	"testing"

	"github.com/bloeys/nrend/logging"
	testifyassert "github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {

	logging.SetOutput(io.Discard)
	defer logging.SetOutput(os.Stderr)

	testifyassert.NotPanics(t, func() { T(true, "never shown") })
	testifyassert.PanicsWithValue(t, "Assert failed: bad value 5", func() { T(false, "bad value %d", 5) })
}
