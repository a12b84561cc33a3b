package translate

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("line 3 'x' bad", From("line %d '%v' %v", 3, "x", "bad"))
}

func TestFprintln(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	err := Fprintln(&buf, "%v: %v", "dual", "ok")
	assert.NoError(err)
	assert.Equal("dual: ok\n", buf.String())
}
