package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSystemUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := NewSystem(loc).Now()
	assert.Equal(t, loc, now.Location())
}

func TestSystemDefaultsToLocal(t *testing.T) {
	assert.Equal(t, time.Local, NewSystem(nil).Location)
}

func TestFixed(t *testing.T) {
	at := time.Date(2024, time.March, 6, 9, 0, 0, 0, time.UTC)
	assert.True(t, Fixed(at).Now().Equal(at))
}
