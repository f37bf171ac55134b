package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peterkuimelis/sinkisle/internal/game"
)

func TestTileCode(t *testing.T) {
	assert.Equal(t, "FL", tileCode("Fools' Landing"))
	assert.Equal(t, "TM", tileCode("Temple of the Moon"))
	assert.Equal(t, "Wa", tileCode("Watchtower"))
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	printLayout(&buf, game.ClassicLayout())
	out := buf.String()

	assert.Contains(t, out, "Classic Island (6x6, 24 tiles)")
	assert.Contains(t, out, "Rescue: Fools' Landing [FL]")
	assert.Contains(t, out, "Treasure fire:  Cave of Embers, Cave of Shadows")
	assert.Contains(t, out, "Diver      starts on Iron Gate")
	assert.Equal(t, 6, strings.Count(out, "starts on"))
}
